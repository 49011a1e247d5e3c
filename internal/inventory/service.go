package inventory

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"pantry-backend/internal/platform/apierr"
	"pantry-backend/internal/platform/db"
	"pantry-backend/internal/platform/ident"
	"pantry-backend/internal/platform/logging"
)

type Service struct {
	store  ItemStore
	clock  ident.Clock
	ids    ident.IDGen
	logger *zap.Logger
}

func NewService(conn *sql.DB, logger *zap.Logger) *Service {
	return NewServiceWithStore(NewStore(conn), logger)
}

func NewServiceWithStore(store ItemStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		clock:  ident.RealClock{},
		ids:    ident.NewULIDGen(),
		logger: logger.Named("inventory"),
	}
}

// List: 全件を新しい順に取得し、term で絞り込む
func (s *Service) List(ctx context.Context, term string) (ListResponse, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Error("list items", zap.Error(err))
		return ListResponse{}, apierr.ErrInternal("Failed to load inventory", err)
	}
	filtered := FilterItems(ToDTOs(items), term)
	return ListResponse{Items: filtered, Total: len(filtered)}, nil
}

func (s *Service) Get(ctx context.Context, id string) (ItemResponse, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ItemResponse{}, apierr.ErrNotFound("item not found")
		}
		return ItemResponse{}, apierr.ErrInternal("Failed to load item", err)
	}
	return it.ToDTO(), nil
}

// ItemsOnShelf はスキャン画面用（棚に載っている品目）
func (s *Service) ItemsOnShelf(ctx context.Context, shelfID string) ([]ItemResponse, error) {
	items, err := s.store.ListByShelf(ctx, shelfID)
	if err != nil {
		s.log(ctx).Error("list items by shelf", zap.String("shelf_id", shelfID), zap.Error(err))
		return nil, apierr.ErrInternal("Failed to load items", err)
	}
	return ToDTOs(items), nil
}

func (s *Service) Create(ctx context.Context, in CreateItemRequest) (MutationResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return MutationResponse{}, apierr.ErrInvalid("name and category are required")
	}

	qty := 0
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 0 {
		return MutationResponse{}, apierr.ErrInvalid("quantity must be >= 0")
	}

	expiry, err := normalizeDate(in.ExpiryDate)
	if err != nil {
		return MutationResponse{}, err
	}

	now := s.clock.Now()
	it := &Item{
		ID:         s.ids.New(),
		Name:       name,
		Category:   category,
		Quantity:   qty,
		ExpiryDate: expiry,
		Notes:      nullString(in.Notes),
		ShelfID:    nullString(in.ShelfID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Insert(ctx, it); err != nil {
		if db.IsForeignKeyViolation(err) {
			return MutationResponse{}, apierr.ErrInvalid("shelf_id does not exist")
		}
		s.log(ctx).Error("insert item", zap.Error(err))
		return MutationResponse{}, apierr.ErrInternal("Failed to add item", err)
	}

	created := it.ToDTO()
	return MutationResponse{
		Message: "Item added successfully!",
		Item:    &created,
		Items:   s.reload(ctx),
	}, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateItemRequest) (MutationResponse, error) {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return MutationResponse{}, apierr.ErrInvalid("name must not be empty")
		}
		in.Name = &v
	}
	if in.Category != nil {
		v := strings.TrimSpace(*in.Category)
		if v == "" {
			return MutationResponse{}, apierr.ErrInvalid("category must not be empty")
		}
		in.Category = &v
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return MutationResponse{}, apierr.ErrInvalid("quantity must be >= 0")
	}
	if in.ExpiryDate != nil && *in.ExpiryDate != "" {
		if _, err := time.Parse(DateLayout, *in.ExpiryDate); err != nil {
			return MutationResponse{}, apierr.ErrInvalid("expiry_date must be YYYY-MM-DD")
		}
	}

	n, err := s.store.Update(ctx, id, in, s.clock.Now())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return MutationResponse{}, apierr.ErrInvalid("shelf_id does not exist")
		}
		s.log(ctx).Error("update item", zap.String("id", id), zap.Error(err))
		return MutationResponse{}, apierr.ErrInternal("Failed to update item", err)
	}
	if n == 0 {
		return MutationResponse{}, apierr.ErrNotFound("item not found")
	}

	items := s.reload(ctx)
	var updated *ItemResponse
	for i := range items {
		if items[i].ID == id {
			updated = &items[i]
			break
		}
	}
	return MutationResponse{Message: "Item updated successfully!", Item: updated, Items: items}, nil
}

// Delete は confirmed=true のときだけ削除を発行する
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) (MutationResponse, error) {
	if !confirmed {
		return MutationResponse{}, apierr.ErrConfirmationRequired("deleting an item cannot be undone; resend with confirm=true")
	}

	n, err := s.store.Delete(ctx, id)
	if err != nil {
		s.log(ctx).Error("delete item", zap.String("id", id), zap.Error(err))
		return MutationResponse{}, apierr.ErrInternal("Failed to delete item", err)
	}
	if n == 0 {
		return MutationResponse{}, apierr.ErrNotFound("item not found")
	}
	return MutationResponse{Message: "Item deleted successfully!", Items: s.reload(ctx)}, nil
}

// reload: 変更後の一覧取り直し。失敗しても変更自体は成功しているので nil を返すだけ
func (s *Service) reload(ctx context.Context) []ItemResponse {
	items, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Warn("reload items after mutation", zap.Error(err))
		return nil
	}
	return ToDTOs(items)
}

func normalizeDate(v *string) (sql.NullString, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return sql.NullString{}, nil
	}
	d := strings.TrimSpace(*v)
	if _, err := time.Parse(DateLayout, d); err != nil {
		return sql.NullString{}, apierr.ErrInvalid("expiry_date must be YYYY-MM-DD")
	}
	return sql.NullString{String: d, Valid: true}, nil
}

func nullString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func (s *Service) log(ctx context.Context) *zap.Logger { return logging.For(ctx, s.logger) }
