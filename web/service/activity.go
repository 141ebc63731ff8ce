package service

import (
	"time"

	"pinboard/database/model"

	"gorm.io/gorm"
)

// ActivityService appends audit records for administrative actions. Records
// are append-only; nothing in this service edits or deletes them.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Log appends an audit record on tx. Callers pass the transaction of the
// primary mutation so the record commits or rolls back together with it.
func (s *ActivityService) Log(tx *gorm.DB, actorId int, action, details string) error {
	return tx.Create(&model.Activity{
		ActorId:   actorId,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}).Error
}

// Recent returns the newest audit records, most recent first.
func (s *ActivityService) Recent(limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := s.db.Order("timestamp DESC").Limit(limit).Find(&activities).Error
	return activities, err
}
