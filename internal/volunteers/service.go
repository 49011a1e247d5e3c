package volunteers

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"pantry-backend/internal/platform/apierr"
	"pantry-backend/internal/platform/ident"
	"pantry-backend/internal/platform/logging"
)

type Service struct {
	store  TaskStore
	clock  ident.Clock
	ids    ident.IDGen
	logger *zap.Logger
}

func NewService(conn *sql.DB, logger *zap.Logger) *Service {
	return NewServiceWithStore(NewStore(conn), logger)
}

func NewServiceWithStore(store TaskStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		clock:  ident.RealClock{},
		ids:    ident.NewULIDGen(),
		logger: logger.Named("volunteers"),
	}
}

func (s *Service) List(ctx context.Context) (ListResponse, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Error("list tasks", zap.Error(err))
		return ListResponse{}, apierr.ErrInternal("Failed to load tasks", err)
	}
	out := ToDTOs(tasks)
	return ListResponse{Tasks: out, Total: len(out)}, nil
}

func (s *Service) Create(ctx context.Context, in CreateTaskRequest) (MutationResponse, error) {
	name := strings.TrimSpace(in.TaskName)
	if name == "" {
		return MutationResponse{}, apierr.ErrInvalid("task_name is required")
	}

	due := optional(in.DueDate)
	if due.Valid {
		if _, err := time.Parse(DateLayout, due.String); err != nil {
			return MutationResponse{}, apierr.ErrInvalid("due_date must be YYYY-MM-DD")
		}
	}

	now := s.clock.Now()
	t := &Task{
		ID:          s.ids.New(),
		TaskName:    name,
		Description: optional(in.Description),
		AssignedTo:  optional(in.AssignedTo),
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, t); err != nil {
		s.log(ctx).Error("insert task", zap.Error(err))
		return MutationResponse{}, apierr.ErrInternal("Failed to add task", err)
	}

	created := t.ToDTO()
	return MutationResponse{Message: "Task added successfully!", Task: &created, Tasks: s.reload(ctx)}, nil
}

// Toggle: 完了/未完了の切り替え
func (s *Service) Toggle(ctx context.Context, id string) (MutationResponse, error) {
	completed, err := s.store.Toggle(ctx, id, s.clock.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MutationResponse{}, apierr.ErrNotFound("task not found")
		}
		s.log(ctx).Error("toggle task", zap.String("id", id), zap.Error(err))
		return MutationResponse{}, apierr.ErrInternal("Failed to update task", err)
	}

	msg := "Task marked as incomplete"
	if completed {
		msg = "Task completed!"
	}

	tasks := s.reload(ctx)
	var task *TaskResponse
	for i := range tasks {
		if tasks[i].ID == id {
			task = &tasks[i]
			break
		}
	}
	return MutationResponse{Message: msg, Task: task, Tasks: tasks}, nil
}

func (s *Service) reload(ctx context.Context) []TaskResponse {
	tasks, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Warn("reload tasks after mutation", zap.Error(err))
		return nil
	}
	return ToDTOs(tasks)
}

// 空文字は NULL
func optional(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (s *Service) log(ctx context.Context) *zap.Logger { return logging.For(ctx, s.logger) }
