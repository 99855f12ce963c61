package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalSchedule/pkg/psqlbuilder"
)

var columns = []string{"id", "name", "kind", "is_active"}

// Repository репозиторий комнат и единиц инвентаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	resources, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, ErrResourceNotFound
	}
	return resources[0], nil
}

// GetByIDs получает ресурсы по списку ID в порядке возрастания ID
// Отсутствующие ID просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Resource, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("resources").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByIDs", query, args)
}

// List получает активные ресурсы, опционально только указанного вида
func (r *Repository) List(ctx context.Context, kind *domain.ResourceKind) ([]*domain.Resource, error) {
	query, args, err := buildListQuery(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

func buildListQuery(kind *domain.ResourceKind) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("resources").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC", "id ASC")

	if kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": string(*kind)})
	}

	return selectBuilder.ToSql()
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanResources(rows)
}

func scanResources(rows *sql.Rows) ([]*domain.Resource, error) {
	resources := make([]*domain.Resource, 0)

	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.Name, &res.Kind, &res.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanResources - scan row: %w", ErrScanRow, err)
		}
		resources = append(resources, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanResources - rows error: %w", ErrScanRow, err)
	}

	return resources, nil
}
