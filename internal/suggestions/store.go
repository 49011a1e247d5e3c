package suggestions

import (
	"context"

	"pantry-backend/internal/platform/db"
)

type SuggestionStore interface {
	List(ctx context.Context) ([]Suggestion, error)
	Insert(ctx context.Context, s *Suggestion) error
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

func (st *Store) List(ctx context.Context) ([]Suggestion, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT id, suggestion, name, email, status, created_at FROM suggestions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Suggestion{}
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.Suggestion, &s.Name, &s.Email, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (st *Store) Insert(ctx context.Context, s *Suggestion) error {
	_, err := st.db.ExecContext(ctx,
		`INSERT INTO suggestions (id, suggestion, name, email, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Suggestion, s.Name, s.Email, s.Status, s.CreatedAt,
	)
	return err
}

// 同じ値への更新でも 1 を返す（DSN の clientFoundRows）
func (st *Store) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	res, err := st.db.ExecContext(ctx, `UPDATE suggestions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
