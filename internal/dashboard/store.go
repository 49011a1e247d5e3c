package dashboard

import (
	"context"

	"pantry-backend/internal/platform/db"
)

// CountStore: ダッシュボード用の件数だけを返すクエリ群
type CountStore interface {
	CountItems(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
	CountIncompleteTasks(ctx context.Context) (int, error)
	CountPendingSuggestions(ctx context.Context) (int, error)
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

func (st *Store) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	err := st.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

func (st *Store) CountItems(ctx context.Context) (int, error) {
	return st.count(ctx, `SELECT COUNT(*) FROM inventory_items`)
}

func (st *Store) CountLowStock(ctx context.Context, threshold int) (int, error) {
	return st.count(ctx, `SELECT COUNT(*) FROM inventory_items WHERE quantity < ?`, threshold)
}

func (st *Store) CountIncompleteTasks(ctx context.Context) (int, error) {
	return st.count(ctx, `SELECT COUNT(*) FROM volunteer_tasks WHERE completed = 0`)
}

func (st *Store) CountPendingSuggestions(ctx context.Context) (int, error) {
	return st.count(ctx, `SELECT COUNT(*) FROM suggestions WHERE status = 'pending'`)
}
