package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pantry-backend/internal/platform/db"
)

type ItemStore interface {
	List(ctx context.Context) ([]Item, error)
	ListByShelf(ctx context.Context, shelfID string) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Insert(ctx context.Context, it *Item) error
	Update(ctx context.Context, id string, in UpdateItemRequest, now time.Time) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

const itemColumns = `id, name, category, quantity, DATE_FORMAT(expiry_date, '%Y-%m-%d'), notes, shelf_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (Item, error) {
	var it Item
	err := r.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.ExpiryDate, &it.Notes, &it.ShelfID, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (s *Store) queryItems(ctx context.Context, q string, args ...any) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// 新しい順
func (s *Store) List(ctx context.Context) ([]Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at DESC, id DESC`)
}

func (s *Store) ListByShelf(ctx context.Context, shelfID string) ([]Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE shelf_id = ? ORDER BY name ASC, id ASC`, shelfID)
}

func (s *Store) Get(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Store) Insert(ctx context.Context, it *Item) error {
	const q = `
	INSERT INTO inventory_items
	(id, name, category, quantity, expiry_date, notes, shelf_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		it.ID, it.Name, it.Category, it.Quantity,
		nullable(it.ExpiryDate), nullable(it.Notes), nullable(it.ShelfID),
		it.CreatedAt, it.UpdatedAt,
	)
	return err
}

// 動的アップデート。対象行が無ければ 0 を返す
func (s *Store) Update(ctx context.Context, id string, in UpdateItemRequest, now time.Time) (int64, error) {
	sets := []string{}
	args := []any{}
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *in.Category)
	}
	if in.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *in.Quantity)
	}
	if in.ExpiryDate != nil {
		sets = append(sets, "expiry_date = ?")
		args = append(args, db.NullIfEmpty(in.ExpiryDate))
	}
	if in.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, db.NullIfEmpty(in.Notes))
	}
	if in.ShelfID != nil {
		sets = append(sets, "shelf_id = ?")
		args = append(args, db.NullIfEmpty(in.ShelfID))
	}
	// updated_at は常に更新するので、変更なしでも行の存在確認になる
	sets = append(sets, "updated_at = ?")
	args = append(args, now)
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE inventory_items SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
