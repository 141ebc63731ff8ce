package service

import (
	"errors"
	"fmt"

	"pinboard/database"
	"pinboard/database/model"
	"pinboard/logger"
	"pinboard/util/common"
	"pinboard/util/crypto"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateAccount is returned when the username or email is taken.
	ErrDuplicateAccount = errors.New("an account with this username or email already exists")
	// ErrInvalidCredentials is returned for any login failure. It is a single
	// generic error so callers cannot tell an unknown username from a wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService is the credential store and account registry.
type UserService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, activity: NewActivityService(db)}
}

// Register creates a new account with no role, active, non-admin. Username
// and email collisions both surface as ErrDuplicateAccount; the email check
// is explicit rather than a raw unique-constraint violation.
func (s *UserService) Register(username, email, password string) (*model.Account, error) {
	if username == "" || email == "" || password == "" {
		return nil, common.NewError("username, email and password are required")
	}

	var count int64
	err := s.db.Model(&model.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateAccount
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, err
	}
	logger.Infof("account %q registered", username)
	return account, nil
}

// Authenticate verifies credentials at login time. Unknown username, wrong
// password and deactivated account all fail identically.
func (s *UserService) Authenticate(username, password string) (*model.Account, error) {
	account := &model.Account{}
	err := s.db.Preload("Role").
		Where("username = ?", username).
		First(account).Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if !crypto.CheckPasswordHash(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !account.Active {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// GetAccount loads an account with its role.
func (s *UserService) GetAccount(id int) (*model.Account, error) {
	account := &model.Account{}
	err := s.db.Preload("Role").First(account, id).Error
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *UserService) GetAccountByUsername(username string) (*model.Account, error) {
	account := &model.Account{}
	err := s.db.Preload("Role").Where("username = ?", username).First(account).Error
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *UserService) AllAccounts() ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.Preload("Role").Find(&accounts).Error
	return accounts, err
}

func (s *UserService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.Account{}).Count(&count).Error
	return count, err
}

// SetPassword replaces the stored hash with a fresh one. The plaintext is
// never written anywhere.
func (s *UserService) SetPassword(id int, password string) error {
	if password == "" {
		return common.NewError("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	return s.db.Model(&model.Account{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// UpdateProfile updates self-service profile fields. An empty avatarRef
// keeps the current avatar.
func (s *UserService) UpdateProfile(id int, bio, location, website string, newsletter bool, avatarRef string) error {
	updates := map[string]any{
		"bio":        bio,
		"location":   location,
		"website":    website,
		"newsletter": newsletter,
	}
	if avatarRef != "" {
		updates["avatar"] = avatarRef
	}
	return s.db.Model(&model.Account{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateAccount is the admin edit of username, email and assigned role. A
// username change is re-checked for duplicates.
func (s *UserService) UpdateAccount(actorId, id int, username, email string, roleId *int) error {
	account, err := s.GetAccount(id)
	if err != nil {
		return err
	}

	if username != account.Username {
		var count int64
		err := s.db.Model(&model.Account{}).Where("username = ?", username).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateAccount
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Account{}).Where("id = ?", id).
			Updates(map[string]any{"username": username, "email": email, "role_id": roleId}).Error
		if err != nil {
			return err
		}
		return s.activity.Log(tx, actorId, "Edit user", fmt.Sprintf("Updated user: %s", username))
	})
}

// AssignRole sets or clears the target's role. A nil roleId unassigns.
func (s *UserService) AssignRole(actorId, id int, roleId *int) error {
	account, err := s.GetAccount(id)
	if err != nil {
		return err
	}
	if roleId != nil {
		var count int64
		if err := s.db.Model(&model.Role{}).Where("id = ?", *roleId).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Account{}).Where("id = ?", id).
			Update("role_id", roleId).Error
		if err != nil {
			return err
		}
		return s.activity.Log(tx, actorId, "Assign role",
			fmt.Sprintf("Changed role of user: %s", account.Username))
	})
}

// ToggleActive flips the target's active flag and records the change in the
// same transaction. Self-toggle is rejected here as well as in the guard.
func (s *UserService) ToggleActive(actorId, targetId int) (bool, error) {
	if actorId == targetId {
		return false, common.NewError("cannot toggle own account status")
	}

	target, err := s.GetAccount(targetId)
	if err != nil {
		return false, err
	}
	newStatus := !target.Active
	status := "deactivated"
	if newStatus {
		status = "activated"
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Account{}).Where("id = ?", targetId).
			Update("active", newStatus).Error
		if err != nil {
			return err
		}
		return s.activity.Log(tx, actorId, "Toggle user status",
			fmt.Sprintf("Changed %s status to %s", target.Username, status))
	})
	if err != nil {
		return false, err
	}
	return newStatus, nil
}

// DeleteAccount is the self-service account deletion. Owned content goes
// with it: posts with their comments, comments on other posts, and news.
// Activity records are retained.
func (s *UserService) DeleteAccount(id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var postIds []int
		err := tx.Model(&model.Post{}).Where("author_id = ?", id).Pluck("id", &postIds).Error
		if err != nil {
			return err
		}
		if len(postIds) > 0 {
			if err := tx.Where("post_id IN ?", postIds).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&model.Post{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.News{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Account{}, id).Error
	})
}
