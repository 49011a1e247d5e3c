package volunteers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ToggleRunsInOneTx(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE volunteer_tasks SET completed = NOT completed`).
		WithArgs(now, "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT completed FROM volunteer_tasks WHERE id = \?`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"completed"}).AddRow(true))
	mock.ExpectCommit()

	done, err := NewStore(conn).Toggle(context.Background(), "t1", now)
	require.NoError(t, err)
	assert.True(t, done)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ToggleMissingRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE volunteer_tasks`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = NewStore(conn).Toggle(context.Background(), "nope", time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListOrdering(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`ORDER BY completed ASC, due_date IS NULL, due_date ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_name", "description", "assigned_to", "due_date", "completed", "created_at", "updated_at"}).
			AddRow("t1", "Sort", nil, "Kim", "2026-05-01", false, now, now))

	tasks, err := NewStore(conn).List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Kim", tasks[0].AssignedTo.String)
	require.NoError(t, mock.ExpectationsWereMet())
}
