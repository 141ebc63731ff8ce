package service

import (
	"errors"
	"fmt"

	"pinboard/database/model"

	"gorm.io/gorm"
)

// ErrRoleInUse is returned when deleting a role that still has accounts
// assigned to it.
var ErrRoleInUse = errors.New("cannot delete role with assigned users")

// RoleService manages the role registry. Default roles are seeded by the
// database package at startup; this service handles administrator-defined
// roles on top of them.
type RoleService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db, activity: NewActivityService(db)}
}

func (s *RoleService) AllRoles() ([]model.Role, error) {
	var roles []model.Role
	err := s.db.Order("id").Find(&roles).Error
	return roles, err
}

func (s *RoleService) GetRole(id int) (*model.Role, error) {
	role := &model.Role{}
	err := s.db.First(role, id).Error
	if err != nil {
		return nil, err
	}
	return role, nil
}

// CreateRole adds a role. A zero-permission bitmask is legal.
func (s *RoleService) CreateRole(actorId int, name string, perms model.Permission) (*model.Role, error) {
	role := &model.Role{Name: name, Permissions: perms}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return s.activity.Log(tx, actorId, "Create role", fmt.Sprintf("Created role: %s", name))
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) UpdateRole(actorId, id int, name string, perms model.Permission) error {
	if _, err := s.GetRole(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Role{}).Where("id = ?", id).
			Updates(map[string]any{"name": name, "permissions": perms}).Error
		if err != nil {
			return err
		}
		return s.activity.Log(tx, actorId, "Edit role", fmt.Sprintf("Updated role: %s", name))
	})
}

// DeleteRole removes a role unless any account still references it.
func (s *RoleService) DeleteRole(actorId, id int) error {
	role, err := s.GetRole(id)
	if err != nil {
		return err
	}

	var count int64
	err = s.db.Model(&model.Account{}).Where("role_id = ?", id).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleInUse
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Role{}, id).Error; err != nil {
			return err
		}
		return s.activity.Log(tx, actorId, "Delete role", fmt.Sprintf("Deleted role: %s", role.Name))
	})
}
