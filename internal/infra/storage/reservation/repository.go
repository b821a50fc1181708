package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"venue_id",
	"court_id",
	"date",
	"start_time",
	"end_time",
	"customer_name",
	"phone",
	"email",
	"status",
	"payment_mode",
	"payment_provider",
	"payment_ref",
	"hold_expires_at",
	"amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями кортов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Проверка занятости слота здесь не выполняется: два одновременных запроса
// на один и тот же слот создадут две строки
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"venue_id",
			"court_id",
			"date",
			"start_time",
			"end_time",
			"customer_name",
			"phone",
			"email",
			"status",
			"payment_mode",
			"payment_provider",
			"payment_ref",
			"hold_expires_at",
			"amount",
		).
		Values(
			res.VenueID,
			res.CourtID,
			res.Date.Format(domain.DateFormat),
			res.StartTime,
			res.EndTime,
			res.CustomerName,
			res.Phone,
			res.Email,
			res.Status,
			res.PaymentMode,
			res.PaymentProvider,
			res.PaymentRef,
			res.HoldExpiresAt,
			res.Amount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID вместе с названиями площадки и корта
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectWithNames().Where(squirrel.Eq{"r.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру
// Сортировка: дата, затем время начала
//
// Примеры:
//
//	// все бронирования корта на дату (для расчета слотов)
//	filter := domain.ReservationsFilter{CourtID: &courtID, Date: &date, Statuses: domain.ActiveStatuses}
//
//	// ожидающие оплаты бронирования площадки (для панели администратора)
//	status := domain.StatusPending
//	filter := domain.ReservationsFilter{VenueID: &venueID, Status: &status, WithNames: true}
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var builder squirrel.SelectBuilder
	if filter.WithNames {
		builder = selectWithNames()
	} else {
		builder = psqlbuilder.Select(prefixed("r.", columns)...).From(table + " r")
	}

	if filter.VenueID != nil {
		builder = builder.Where(squirrel.Eq{"r.venue_id": *filter.VenueID})
	}
	if filter.CourtID != nil {
		builder = builder.Where(squirrel.Eq{"r.court_id": *filter.CourtID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"r.date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"r.date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"r.date": filter.DateTo.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"r.status": statusStrings(filter.Statuses)})
	}

	query, args, err := builder.OrderBy("r.date ASC", "r.start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows, filter.WithNames)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan reservation: %v", ErrScanRow, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}

	return result, nil
}

// UpdateStatus меняет статус бронирования
// Допустимость перехода проверяется на уровне сервиса
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ExpireHolds отменяет бронирования в статусе status, у которых истек срок удержания
// При withoutProofOnly не трогает бронирования с приложенным подтверждением оплаты
func (r *Repository) ExpireHolds(ctx context.Context, status domain.ReservationStatus, now time.Time, withoutProofOnly bool) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.LtOrEq{"hold_expires_at": now})

	if withoutProofOnly {
		builder = builder.Where("NOT EXISTS (SELECT 1 FROM payment_proofs p WHERE p.reservation_id = reservations.id)")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHolds - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHolds - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// Stats считает сводку для панели администратора
// Оплаченные за месяц считаются по дате бронирования в диапазоне [monthStart, nextMonthStart)
func (r *Repository) Stats(ctx context.Context, monthStart, nextMonthStart time.Time) (*domain.ReservationStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from := monthStart.Format(domain.DateFormat)
	to := nextMonthStart.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusPending)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ? AND date >= ? AND date < ?)", domain.StatusPaid, from, to)).
		Column(squirrel.Expr("COALESCE(SUM(amount) FILTER (WHERE status = ? AND date >= ? AND date < ?), 0)", domain.StatusPaid, from, to)).
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.ReservationStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.PendingPayments,
		&stats.PaidThisMonth,
		&stats.RevenueThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func selectWithNames() squirrel.SelectBuilder {
	cols := append(prefixed("r.", columns), "v.name", "c.name")
	return psqlbuilder.Select(cols...).
		From(table + " r").
		LeftJoin("venues v ON v.id = r.venue_id").
		LeftJoin("courts c ON c.id = r.court_id")
}

func scanReservation(row rowScanner, withNames bool) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		paymentRef           sql.NullString
		holdExpiresAt        sql.NullTime
		createdAt, updatedAt sql.NullTime
		venueName, courtName sql.NullString
	)

	dest := []interface{}{
		&res.ID,
		&res.VenueID,
		&res.CourtID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.CustomerName,
		&res.Phone,
		&res.Email,
		&res.Status,
		&res.PaymentMode,
		&res.PaymentProvider,
		&paymentRef,
		&holdExpiresAt,
		&res.Amount,
		&createdAt,
		&updatedAt,
	}
	if withNames {
		dest = append(dest, &venueName, &courtName)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if paymentRef.Valid {
		res.PaymentRef = &paymentRef.String
	}
	if holdExpiresAt.Valid {
		res.HoldExpiresAt = &holdExpiresAt.Time
	}
	if venueName.Valid {
		res.VenueName = &venueName.String
	}
	if courtName.Valid {
		res.CourtName = &courtName.String
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func prefixed(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + c
	}
	return out
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
