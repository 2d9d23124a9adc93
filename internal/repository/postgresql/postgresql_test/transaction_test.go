package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/repository/postgresql"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_CommitsAndJoins(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM settings").WithArgs(1).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	repo := postgresql.NewSettingsRepository(db)
	err := postgresql.WithTransaction(context.Background(), db, func(txCtx context.Context) error {
		// nested calls join the outer transaction instead of beginning another
		return postgresql.WithTransaction(txCtx, db, func(inner context.Context) error {
			return repo.Delete(inner)
		})
	})
	require.NoError(t, err)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := postgresql.WithTransaction(context.Background(), db, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
