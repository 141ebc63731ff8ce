// Package database handles the sqlite database lifecycle: opening, schema
// migration and seeding of default roles and the initial admin account.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"pinboard/config"
	"pinboard/database/model"
	"pinboard/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@localhost"
	defaultAdminPassword = "admin"
)

// defaultRoles are (re)seeded by name on every startup. Seeding is
// idempotent: an existing role gets its bitmask reset, a missing one is
// created, nothing is ever duplicated.
var defaultRoles = []model.Role{
	{Name: "User", Permissions: model.PermRead | model.PermComment},
	{Name: "Moderator", Permissions: model.PermRead | model.PermComment | model.PermWrite | model.PermModerate},
	{Name: "Admin", Permissions: model.PermRead | model.PermComment | model.PermWrite | model.PermModerate | model.PermAdmin},
}

func initModels(db *gorm.DB) error {
	models := []any{
		&model.Account{},
		&model.Role{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.News{},
		&model.Activity{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func seedRoles(db *gorm.DB) error {
	for _, def := range defaultRoles {
		role := model.Role{}
		err := db.Where("name = ?", def.Name).First(&role).Error
		if IsNotFound(err) {
			role.Name = def.Name
		} else if err != nil {
			return err
		}
		role.Permissions = def.Permissions
		if err := db.Save(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// initAdmin creates the bootstrap administrator only when no account exists
// yet.
func initAdmin(db *gorm.DB) error {
	empty, err := isTableEmpty(db, "accounts")
	if err != nil {
		log.Printf("Error checking if accounts table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	hash, err := crypto.HashPasswordAsBcrypt(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &model.Account{
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
		Active:       true,
	}
	return db.Create(admin).Error
}

func isTableEmpty(db *gorm.DB, tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// InitDB opens the database at dbPath, migrates the schema and seeds default
// roles and the initial admin. The returned handle is the single shared
// dependency passed to services; there is no package-level instance.
func InitDB(dbPath string) (*gorm.DB, error) {
	dir := path.Dir(dbPath)
	if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
		return nil, err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err := gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, err
	}

	if err := initModels(db); err != nil {
		return nil, err
	}
	if err := seedRoles(db); err != nil {
		return nil, err
	}
	if err := initAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// CloseDB checkpoints the WAL and closes the underlying connection.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(db); err != nil {
		log.Printf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

// Checkpoint flushes the sqlite WAL into the main database file.
func Checkpoint(db *gorm.DB) error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
