package service

import (
	"os"
	"path/filepath"
	"testing"

	"pinboard/database"
	"pinboard/database/model"
	"pinboard/logger"

	"github.com/op/go-logging"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("BOARD_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

// newTestDB opens a throwaway database with the full schema, seeded roles
// and the bootstrap admin.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB(db)
	})
	return db
}

// registerWithRole creates an account and assigns it the named seeded role.
func registerWithRole(t *testing.T, db *gorm.DB, users *UserService, username, roleName string) *model.Account {
	t.Helper()
	account, err := users.Register(username, username+"@example.com", "secret123")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	role := &model.Role{}
	if err := db.Where("name = ?", roleName).First(role).Error; err != nil {
		t.Fatalf("load role %s: %v", roleName, err)
	}
	if err := db.Model(account).Update("role_id", role.Id).Error; err != nil {
		t.Fatalf("assign role: %v", err)
	}
	account, err = users.GetAccount(account.Id)
	if err != nil {
		t.Fatalf("reload account: %v", err)
	}
	return account
}
