package volunteers

import (
	"database/sql"
	"time"

	"pantry-backend/internal/platform/db"
)

type Task struct {
	ID          string
	TaskName    string
	Description sql.NullString
	AssignedTo  sql.NullString
	DueDate     sql.NullString // DATE → "YYYY-MM-DD"
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Task) ToDTO() TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		TaskName:    t.TaskName,
		Description: db.StringPtr(t.Description),
		AssignedTo:  db.StringPtr(t.AssignedTo),
		DueDate:     db.StringPtr(t.DueDate),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToDTOs(ts []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ToDTO())
	}
	return out
}
