package service

import (
	"pinboard/database/model"

	"gorm.io/gorm"
)

type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

func (s *NewsService) AllNews() ([]model.News, error) {
	var news []model.News
	err := s.db.Preload("Author").Order("created_at DESC").Find(&news).Error
	return news, err
}

func (s *NewsService) GetNews(id int) (*model.News, error) {
	news := &model.News{}
	err := s.db.Preload("Author").First(news, id).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) CreateNews(authorId int, title, content, subject string) (*model.News, error) {
	news := &model.News{
		Title:    title,
		Content:  content,
		Subject:  subject,
		AuthorId: authorId,
	}
	if err := s.db.Create(news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) UpdateNews(id int, title, content, subject string) error {
	if _, err := s.GetNews(id); err != nil {
		return err
	}
	return s.db.Model(&model.News{}).Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content, "subject": subject}).Error
}

func (s *NewsService) DeleteNews(id int) error {
	if _, err := s.GetNews(id); err != nil {
		return err
	}
	return s.db.Delete(&model.News{}, id).Error
}

func (s *NewsService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.News{}).Count(&count).Error
	return count, err
}
