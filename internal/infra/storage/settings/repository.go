package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const table = "business_settings"

var columns = []string{
	"id",
	"business_name",
	"whatsapp",
	"webpay_link_deposit",
	"webpay_link_full",
	"webpay_plus_commerce_code",
	"webpay_plus_api_key",
	"webpay_plus_environment",
	"cancellation_policy",
	"updated_at",
}

// Repository репозиторий настроек бизнеса (одна строка на инсталляцию)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы upsert не создал дубликат
func (r *Repository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("updated_at DESC").
		Limit(1)
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	return s, nil
}

// Create вставляет настройки
func (r *Repository) Create(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[1:9]...).
		Values(values(s)...).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// Update перезаписывает настройки по ID
func (r *Repository) Update(ctx context.Context, id uuid.UUID, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table)
	for i, col := range columns[1:9] {
		builder = builder.Set(col, values(s)[i])
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// values значения изменяемых колонок в порядке columns[1:9]
func values(s *domain.BusinessSettings) []interface{} {
	return []interface{}{
		s.BusinessName,
		s.WhatsApp,
		s.WebpayLinkDeposit,
		s.WebpayLinkFull,
		s.WebpayPlusCommerceCode,
		s.WebpayPlusAPIKey,
		s.WebpayPlusEnvironment,
		s.CancellationPolicy,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.BusinessSettings, error) {
	var (
		s                                     domain.BusinessSettings
		whatsapp, linkDeposit, linkFull       sql.NullString
		commerceCode, apiKey, env, cancelText sql.NullString
		updatedAt                             sql.NullTime
	)

	err := row.Scan(&s.ID, &s.BusinessName, &whatsapp, &linkDeposit, &linkFull,
		&commerceCode, &apiKey, &env, &cancelText, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.WhatsApp = nullable(whatsapp)
	s.WebpayLinkDeposit = nullable(linkDeposit)
	s.WebpayLinkFull = nullable(linkFull)
	s.WebpayPlusCommerceCode = nullable(commerceCode)
	s.WebpayPlusAPIKey = nullable(apiKey)
	s.WebpayPlusEnvironment = nullable(env)
	s.CancellationPolicy = nullable(cancelText)
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
