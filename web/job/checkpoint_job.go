package job

import (
	"pinboard/database"
	"pinboard/logger"

	"gorm.io/gorm"
)

// CheckpointJob periodically flushes the write-ahead log back into the main
// database file so the WAL does not grow without bound.
type CheckpointJob struct {
	db *gorm.DB
}

func NewCheckpointJob(db *gorm.DB) *CheckpointJob {
	return &CheckpointJob{db: db}
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(j.db); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
