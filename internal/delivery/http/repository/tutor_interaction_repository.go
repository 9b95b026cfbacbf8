package repository

import (
	"github.com/evandrarf/gnrs-ai-tutor/internal/entity"
	"gorm.io/gorm"
)

type (
	TutorInteractionRepository interface {
		Create(db *gorm.DB, interaction *entity.TutorInteraction) error
		FindBySessionID(db *gorm.DB, sessionID string, limit int) ([]entity.TutorInteraction, error)
	}

	tutorInteractionRepository struct {
		db *gorm.DB
	}
)

func NewTutorInteractionRepository(db *gorm.DB) TutorInteractionRepository {
	return &tutorInteractionRepository{db: db}
}

func (r *tutorInteractionRepository) Create(db *gorm.DB, interaction *entity.TutorInteraction) error {
	if db == nil {
		db = r.db
	}
	return db.Create(interaction).Error
}

// FindBySessionID returns the newest interactions first.
func (r *tutorInteractionRepository) FindBySessionID(db *gorm.DB, sessionID string, limit int) ([]entity.TutorInteraction, error) {
	if db == nil {
		db = r.db
	}
	var interactions []entity.TutorInteraction
	query := db.Where("session_id = ?", sessionID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&interactions).Error
	return interactions, err
}
