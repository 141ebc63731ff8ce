package service

import (
	"pinboard/database/model"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) AllCategories() ([]model.Category, error) {
	var categories []model.Category
	err := s.db.Order("name").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) GetCategory(id int) (*model.Category, error) {
	category := &model.Category{}
	err := s.db.First(category, id).Error
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(name, description string) (*model.Category, error) {
	category := &model.Category{Name: name, Description: description}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(id int, name, description string) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.db.Model(&model.Category{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description}).Error
}

func (s *CategoryService) DeleteCategory(id int) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.db.Delete(&model.Category{}, id).Error
}

func (s *CategoryService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.Category{}).Count(&count).Error
	return count, err
}
