package courtblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

var (
	// ErrBlockNotFound возвращается, когда блокировка корта не найдена
	ErrBlockNotFound = errors.New("courtblock.repository: block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("courtblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("courtblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("courtblock.repository: failed to scan row")
)

// Repository репозиторий ручных блокировок кортов
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку
func (r *Repository) Create(ctx context.Context, block *domain.CourtBlock) (*domain.CourtBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("court_blocks").
		Columns("court_id", "date", "start_time", "end_time", "reason").
		Values(block.CourtID, block.Date.Format(domain.DateFormat), block.StartTime, block.EndTime, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// ListByCourtAndDate получает блокировки корта на дату, отсортированные по времени начала
func (r *Repository) ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*domain.CourtBlock, error) {
	return r.list(ctx, squirrel.Eq{
		"court_id": courtID,
		"date":     date.Format(domain.DateFormat),
	})
}

// ListByCourtAndPeriod получает блокировки корта за период [from, to] включительно
func (r *Repository) ListByCourtAndPeriod(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]*domain.CourtBlock, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"court_id": courtID},
		squirrel.GtOrEq{"date": from.Format(domain.DateFormat)},
		squirrel.LtOrEq{"date": to.Format(domain.DateFormat)},
	})
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("court_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.CourtBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "court_id", "date", "start_time", "end_time", "reason", "created_at").
		From("court_blocks").
		Where(where).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.CourtBlock, 0)
	for rows.Next() {
		var (
			b         domain.CourtBlock
			reason    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.CourtID, &b.Date, &b.StartTime, &b.EndTime, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		if reason.Valid {
			b.Reason = &reason.String
		}
		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - iterate rows: %v", ErrExecQuery, err)
	}

	return blocks, nil
}
