package shelves

import (
	"context"

	"pantry-backend/internal/platform/db"
)

type ShelfStore interface {
	List(ctx context.Context) ([]Shelf, error)
	Get(ctx context.Context, id string) (*Shelf, error)
	// FindByQRCode は最大2件まで返す（2件なら一意性違反）
	FindByQRCode(ctx context.Context, code string) ([]Shelf, error)
	ListCodes(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, s *Shelf) error
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

const shelfColumns = `id, location, qr_code, description, created_at`

func (st *Store) query(ctx context.Context, q string, args ...any) ([]Shelf, error) {
	rows, err := st.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Shelf{}
	for rows.Next() {
		var s Shelf
		if err := rows.Scan(&s.ID, &s.Location, &s.QRCode, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (st *Store) List(ctx context.Context) ([]Shelf, error) {
	return st.query(ctx, `SELECT `+shelfColumns+` FROM shelves ORDER BY location ASC, qr_code ASC`)
}

func (st *Store) Get(ctx context.Context, id string) (*Shelf, error) {
	var s Shelf
	err := st.db.QueryRowContext(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE id = ?`, id).
		Scan(&s.ID, &s.Location, &s.QRCode, &s.Description, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *Store) FindByQRCode(ctx context.Context, code string) ([]Shelf, error) {
	return st.query(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE qr_code = ? LIMIT 2`, code)
}

func (st *Store) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT qr_code FROM shelves`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (st *Store) Insert(ctx context.Context, s *Shelf) error {
	var desc any
	if s.Description.Valid {
		desc = s.Description.String
	}
	_, err := st.db.ExecContext(ctx,
		`INSERT INTO shelves (id, location, qr_code, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Location, s.QRCode, desc, s.CreatedAt,
	)
	return err
}

var _ ShelfStore = (*Store)(nil)
