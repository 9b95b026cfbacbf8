package mapper

import (
	"time"

	httpEntity "github.com/evandrarf/gnrs-ai-tutor/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/gnrs-ai-tutor/internal/entity"
)

// ConvertToInteractionLog - Convert DB entity to response entity
func ConvertToInteractionLog(row dbEntity.TutorInteraction) httpEntity.InteractionLog {
	return httpEntity.InteractionLog{
		ID:         row.ID,
		RequestID:  row.RequestID,
		SessionID:  row.SessionID,
		Action:     row.Action,
		Outcome:    row.Outcome,
		DurationMs: row.DurationMs,
		Error:      row.Error,
		CreatedAt:  row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ConvertToInteractionLogs(rows []dbEntity.TutorInteraction) []httpEntity.InteractionLog {
	logs := make([]httpEntity.InteractionLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, ConvertToInteractionLog(row))
	}
	return logs
}
