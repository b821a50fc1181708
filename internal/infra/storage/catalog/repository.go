package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

// Repository репозиторий каталога: площадки, корты, расписание и цены
// Каталог меняется вне сервиса (миграции, админка БД), здесь только чтение
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var venueColumns = []string{
	"id", "name", "address", "comuna", "lat", "lng", "whatsapp",
	"photos", "description", "active", "created_at", "updated_at",
}

// ListVenues получает площадки, отсортированные по названию
func (r *Repository) ListVenues(ctx context.Context, activeOnly bool) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(venueColumns...).From("venues").OrderBy("name ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVenues - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVenues - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListVenues - scan venue: %v", ErrScanRow, err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVenues - iterate rows: %v", ErrExecQuery, err)
	}

	return venues, nil
}

// GetVenue получает площадку по ID
func (r *Repository) GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - build select query: %v", ErrBuildQuery, err)
	}

	v, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - scan venue: %v", ErrScanRow, err)
	}

	return v, nil
}

var courtColumns = []string{"id", "venue_id", "name", "court_type", "active", "created_at"}

// ListCourts получает корты по фильтру, отсортированные по названию
func (r *Repository) ListCourts(ctx context.Context, filter domain.CourtsFilter) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(courtColumns...).From("courts").OrderBy("name ASC")
	if filter.VenueID != nil {
		builder = builder.Where(squirrel.Eq{"venue_id": *filter.VenueID})
	}
	if filter.CourtType != nil {
		builder = builder.Where(squirrel.Eq{"court_type": *filter.CourtType})
	}
	if filter.ActiveOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCourts - scan court: %v", ErrScanRow, err)
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCourts - iterate rows: %v", ErrExecQuery, err)
	}

	return courts, nil
}

// GetCourt получает корт по ID
func (r *Repository) GetCourt(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCourt(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - scan court: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListOperatingHours получает расписание площадки по дням недели
func (r *Repository) ListOperatingHours(ctx context.Context, venueID uuid.UUID) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "venue_id", "day_of_week", "open_time", "close_time", "is_closed").
		From("operating_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.OperatingHours, 0)
	for rows.Next() {
		var h domain.OperatingHours
		if err := rows.Scan(&h.ID, &h.VenueID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.IsClosed); err != nil {
			return nil, fmt.Errorf("%w: ListOperatingHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOperatingHours - iterate rows: %v", ErrExecQuery, err)
	}

	return hours, nil
}

// ListPriceRules получает правила цен площадки
// Сортировка: день недели, затем время начала диапазона
func (r *Repository) ListPriceRules(ctx context.Context, venueID uuid.UUID) ([]*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "venue_id", "court_type", "day_of_week", "start_time", "end_time",
		"amount_total", "amount_deposit", "is_peak",
	).
		From("price_rules").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPriceRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPriceRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.PriceRule, 0)
	for rows.Next() {
		var p domain.PriceRule
		err := rows.Scan(&p.ID, &p.VenueID, &p.CourtType, &p.DayOfWeek, &p.StartTime, &p.EndTime,
			&p.AmountTotal, &p.AmountDeposit, &p.IsPeak)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPriceRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPriceRules - iterate rows: %v", ErrExecQuery, err)
	}

	return rules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var (
		v                    domain.Venue
		lat, lng             sql.NullFloat64
		whatsapp, desc       sql.NullString
		photos               pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.Comuna, &lat, &lng, &whatsapp,
		&photos, &desc, &v.Active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		v.Lat = &lat.Float64
	}
	if lng.Valid {
		v.Lng = &lng.Float64
	}
	if whatsapp.Valid {
		v.WhatsApp = &whatsapp.String
	}
	if desc.Valid {
		v.Description = &desc.String
	}
	v.Photos = []string(photos)
	if v.Photos == nil {
		v.Photos = []string{}
	}
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	return &v, nil
}

func scanCourt(row rowScanner) (*domain.Court, error) {
	var (
		c         domain.Court
		createdAt sql.NullTime
	)

	if err := row.Scan(&c.ID, &c.VenueID, &c.Name, &c.CourtType, &c.Active, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}
