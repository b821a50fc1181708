package paymentproof

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("paymentproof.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("paymentproof.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("paymentproof.repository: failed to scan row")
)

// Repository репозиторий подтверждений оплаты
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтверждение оплаты
func (r *Repository) Create(ctx context.Context, proof *domain.PaymentProof) (*domain.PaymentProof, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_proofs").
		Columns("reservation_id", "proof_type", "value").
		Values(proof.ReservationID, proof.ProofType, proof.Value).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&proof.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	proof.CreatedAt = createdAt.Time

	return proof, nil
}

// ListByReservation получает подтверждения бронирования, новые первыми
func (r *Repository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*domain.PaymentProof, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "proof_type", "value", "created_at").
		From("payment_proofs").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	proofs := make([]*domain.PaymentProof, 0)
	for rows.Next() {
		var p domain.PaymentProof
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.ProofType, &p.Value, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByReservation - scan row: %v", ErrScanRow, err)
		}
		proofs = append(proofs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - iterate rows: %v", ErrExecQuery, err)
	}

	return proofs, nil
}
