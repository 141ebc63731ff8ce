package service

import (
	"pinboard/database/model"

	"gorm.io/gorm"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) AllPosts() ([]model.Post, error) {
	var posts []model.Post
	err := s.db.Preload("Author").Preload("Category").
		Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (s *PostService) GetPost(id int) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.Preload("Author").Preload("Category").First(post, id).Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost stores a new post. The author is fixed here and never
// reassigned afterwards.
func (s *PostService) CreatePost(authorId int, title, content string, categoryId *int, imageRef string) (*model.Post, error) {
	post := &model.Post{
		Title:      title,
		Content:    content,
		ImageRef:   imageRef,
		AuthorId:   authorId,
		CategoryId: categoryId,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost changes title, content, category and optionally the image
// reference. AuthorId is deliberately not updatable.
func (s *PostService) UpdatePost(id int, title, content string, categoryId *int, imageRef string) error {
	updates := map[string]any{
		"title":       title,
		"content":     content,
		"category_id": categoryId,
	}
	if imageRef != "" {
		updates["image_ref"] = imageRef
	}
	return s.db.Model(&model.Post{}).Where("id = ?", id).Updates(updates).Error
}

// DeletePost removes the post and all its comments in one transaction and
// returns the image reference for filestore cleanup.
func (s *PostService) DeletePost(id int) (string, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return "", err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
	if err != nil {
		return "", err
	}
	return post.ImageRef, nil
}

// AddComment attaches a comment to an existing post.
func (s *PostService) AddComment(authorId, postId int, content string) (*model.Comment, error) {
	if _, err := s.GetPost(postId); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		Content:  content,
		AuthorId: authorId,
		PostId:   postId,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) GetComment(id int) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.Preload("Author").First(comment, id).Error
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) DeleteComment(id int) error {
	if _, err := s.GetComment(id); err != nil {
		return err
	}
	return s.db.Delete(&model.Comment{}, id).Error
}

func (s *PostService) Comments(postId int) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.Preload("Author").Where("post_id = ?", postId).
		Order("created_at").Find(&comments).Error
	return comments, err
}

func (s *PostService) CommentCount(postId int) (int64, error) {
	var count int64
	err := s.db.Model(&model.Comment{}).Where("post_id = ?", postId).Count(&count).Error
	return count, err
}

func (s *PostService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.Post{}).Count(&count).Error
	return count, err
}

func (s *PostService) TotalComments() (int64, error) {
	var count int64
	err := s.db.Model(&model.Comment{}).Count(&count).Error
	return count, err
}
