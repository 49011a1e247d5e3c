package dashboard

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CountLowStock(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM inventory_items WHERE quantity < \?`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))

	n, err := NewStore(conn).CountLowStock(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountPendingSuggestions(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`FROM suggestions WHERE status = 'pending'`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	n, err := NewStore(conn).CountPendingSuggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
