package suggestions

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"pantry-backend/internal/platform/apierr"
	"pantry-backend/internal/platform/ident"
	"pantry-backend/internal/platform/logging"
)

const redirectAfterMS = 2000

type Service struct {
	store  SuggestionStore
	clock  ident.Clock
	ids    ident.IDGen
	logger *zap.Logger
}

func NewService(conn *sql.DB, logger *zap.Logger) *Service {
	return NewServiceWithStore(NewStore(conn), logger)
}

func NewServiceWithStore(store SuggestionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		clock:  ident.RealClock{},
		ids:    ident.NewULIDGen(),
		logger: logger.Named("suggestions"),
	}
}

func (s *Service) List(ctx context.Context) (ListResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Error("list suggestions", zap.Error(err))
		return ListResponse{}, apierr.ErrInternal("Failed to load suggestions", err)
	}
	out := ToDTOs(rows)
	return ListResponse{Suggestions: out, Total: len(out)}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (MutationResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validStatus(status) {
		return MutationResponse{}, apierr.ErrInvalid("status must be one of pending, reviewed, implemented, rejected")
	}

	n, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		s.log(ctx).Error("update suggestion status", zap.String("id", id), zap.Error(err))
		return MutationResponse{}, apierr.ErrInternal("Failed to update status", err)
	}
	if n == 0 {
		return MutationResponse{}, apierr.ErrNotFound("suggestion not found")
	}

	list := s.reload(ctx)
	var updated *SuggestionResponse
	for i := range list {
		if list[i].ID == id {
			updated = &list[i]
			break
		}
	}
	return MutationResponse{Message: "Status updated!", Suggestion: updated, Suggestions: list}, nil
}

// Submit は公開フォームからの投稿。検証に通らなければ insert しない
func (s *Service) Submit(ctx context.Context, in SubmitRequest) (SubmitResponse, error) {
	// 長さは入力そのままで数える
	if msg, bad := firstViolation(in); bad {
		return SubmitResponse{}, apierr.ErrInvalid(msg)
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	row := &Suggestion{
		ID:         s.ids.New(),
		Suggestion: in.Suggestion,
		Name:       sql.NullString{String: name, Valid: name != ""},
		Email:      sql.NullString{String: email, Valid: email != ""},
		Status:     StatusPending,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.store.Insert(ctx, row); err != nil {
		s.log(ctx).Error("insert suggestion", zap.Error(err))
		return SubmitResponse{}, apierr.ErrInternal("Failed to submit suggestion", err)
	}

	return SubmitResponse{
		Message:         "Thank you for your suggestion!",
		RedirectTo:      "/",
		RedirectAfterMS: redirectAfterMS,
	}, nil
}

func (s *Service) reload(ctx context.Context) []SuggestionResponse {
	rows, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Warn("reload suggestions after mutation", zap.Error(err))
		return nil
	}
	return ToDTOs(rows)
}

func (s *Service) log(ctx context.Context) *zap.Logger { return logging.For(ctx, s.logger) }
