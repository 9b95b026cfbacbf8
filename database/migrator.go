package database

import (
	"github.com/evandrarf/gnrs-ai-tutor/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.TutorInteraction{},
	)
	return err
}
