package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("BOARD_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BOARD_DEBUG") == "true"
}

func GetListenAddr() string {
	addr := os.Getenv("BOARD_LISTEN")
	if addr == "" {
		addr = ":8080"
	}
	return addr
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("BOARD_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/pinboard"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("BOARD_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetUploadFolder() string {
	uploadFolderPath := os.Getenv("BOARD_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "/etc/pinboard/uploads"
	}
	return uploadFolderPath
}

// GetSessionSecret returns the cookie signing secret. Empty means a random
// secret is generated at startup, which invalidates sessions on restart.
func GetSessionSecret() string {
	return os.Getenv("BOARD_SESSION_SECRET")
}
