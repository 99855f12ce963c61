package resource

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/pkg/ptr"
)

func TestBuildListQuery(t *testing.T) {
	t.Run("all active", func(t *testing.T) {
		query, args, err := buildListQuery(nil)
		require.NoError(t, err)

		assert.Equal(t, "SELECT id, name, kind, is_active FROM resources WHERE is_active = $1 ORDER BY name ASC, id ASC", query)
		assert.Equal(t, []interface{}{true}, args)
	})

	t.Run("rooms only", func(t *testing.T) {
		query, args, err := buildListQuery(ptr.Ptr(domain.KindRoom))
		require.NoError(t, err)

		assert.Contains(t, query, "kind = $2")
		assert.Equal(t, []interface{}{true, "room"}, args)
	})
}

type failingExecutor struct{}

func (failingExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errors.New("connection refused")
}

func (failingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("connection refused")
}

func (failingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestRepository_WrapsExecutionErrors(t *testing.T) {
	repo := NewRepository(failingExecutor{})

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExecQuery)

	_, err = repo.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorContains(t, err, "connection refused")
}
