package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/domain/school"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := school.Configure(db); err != nil {
		return fmt.Errorf("configure schema: %w", err)
	}
	if err := db.AutoMigrate(school.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
