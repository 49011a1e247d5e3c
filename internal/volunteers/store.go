package volunteers

import (
	"context"
	"database/sql"
	"time"

	"pantry-backend/internal/platform/db"
)

type TaskStore interface {
	List(ctx context.Context) ([]Task, error)
	Insert(ctx context.Context, t *Task) error
	// Toggle は completed を反転して新しい値を返す。行が無ければ sql.ErrNoRows
	Toggle(ctx context.Context, id string, now time.Time) (bool, error)
}

type Store struct{ conn *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{conn: conn} }

// 未完了が先、期限の近い順、期限なしは最後
func (st *Store) List(ctx context.Context) ([]Task, error) {
	const q = `
	SELECT id, task_name, description, assigned_to, DATE_FORMAT(due_date, '%Y-%m-%d'), completed, created_at, updated_at
	FROM volunteer_tasks
	ORDER BY completed ASC, due_date IS NULL, due_date ASC, created_at ASC`

	rows, err := st.conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.TaskName, &t.Description, &t.AssignedTo, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (st *Store) Insert(ctx context.Context, t *Task) error {
	const q = `
	INSERT INTO volunteer_tasks
	(id, task_name, description, assigned_to, due_date, completed, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := st.conn.ExecContext(ctx, q,
		t.ID, t.TaskName, nullable(t.Description), nullable(t.AssignedTo), nullable(t.DueDate),
		t.Completed, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (st *Store) Toggle(ctx context.Context, id string, now time.Time) (bool, error) {
	var completed bool
	err := db.RunInTx(ctx, st.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE volunteer_tasks SET completed = NOT completed, updated_at = ? WHERE id = ?`, now, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return tx.QueryRowContext(ctx, `SELECT completed FROM volunteer_tasks WHERE id = ?`, id).Scan(&completed)
	})
	return completed, err
}

func nullable(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
