package entity

import (
	"time"
)

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// TutorInteraction - one dispatched tutor request
type TutorInteraction struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	RequestID  string    `gorm:"size:64;index" json:"request_id"`
	SessionID  string    `gorm:"size:100;index" json:"session_id"` // caller passthrough, may be empty
	Action     string    `gorm:"size:40;not null;index" json:"action"`
	Outcome    string    `gorm:"size:20;not null" json:"outcome"` // ok, fallback, error
	DurationMs int64     `gorm:"not null" json:"duration_ms"`
	Error      string    `gorm:"type:text" json:"error"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TutorInteraction) TableName() string {
	return "tutor_interactions"
}
