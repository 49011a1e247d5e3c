package suggestions

import (
	"database/sql"
	"time"

	"pantry-backend/internal/platform/db"
)

const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusImplemented = "implemented"
	StatusRejected    = "rejected"
)

type Suggestion struct {
	ID         string
	Suggestion string
	Name       sql.NullString
	Email      sql.NullString
	Status     string
	CreatedAt  time.Time
}

func (s Suggestion) ToDTO() SuggestionResponse {
	return SuggestionResponse{
		ID:         s.ID,
		Suggestion: s.Suggestion,
		Name:       db.StringPtr(s.Name),
		Email:      db.StringPtr(s.Email),
		Status:     s.Status,
		Tone:       ToneFor(s.Status),
		CreatedAt:  s.CreatedAt,
	}
}

func ToDTOs(rows []Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDTO())
	}
	return out
}

// ToneFor はステータスの表示色。未知の値は neutral
func ToneFor(status string) string {
	switch status {
	case StatusPending:
		return "warn"
	case StatusReviewed:
		return "info"
	case StatusImplemented:
		return "success"
	case StatusRejected:
		return "danger"
	default:
		return "neutral"
	}
}

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusImplemented, StatusRejected:
		return true
	}
	return false
}
