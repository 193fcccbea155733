package repository

import (
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewSQLiteDB(dataDir string) (*gorm.DB, error) {
	dsn := ":memory:"
	if dataDir != "" {
		dsn = filepath.Join(dataDir, "pipewatch.db")
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&Project{},
		&PipelineRun{},
		&PipelineLogEntry{},
		&WebhookDelivery{},
		&AnalysisReport{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
