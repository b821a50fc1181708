package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/cache"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
)

var (
	testVenueID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testCourtID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	monday      = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

type fakeCatalog struct {
	court *domain.Court
	hours []*domain.OperatingHours
	rules []*domain.PriceRule
}

func (f *fakeCatalog) Court(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	if f.court == nil || f.court.ID != id {
		return nil, catalogService.ErrCourtNotFound
	}
	return f.court, nil
}

func (f *fakeCatalog) OperatingHours(ctx context.Context, venueID uuid.UUID) ([]*domain.OperatingHours, error) {
	return f.hours, nil
}

func (f *fakeCatalog) PriceRules(ctx context.Context, venueID uuid.UUID) ([]*domain.PriceRule, error) {
	return f.rules, nil
}

// memoryRepo хранит бронирования в памяти, как таблица без уникального индекса по слоту
type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*domain.Reservation
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[uuid.UUID]*domain.Reservation)}
}

func (r *memoryRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *res
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.rows[created.ID] = &created
	return &created, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.rows[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return res, nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
}

func (f *fakeLimiter) Allow(ctx context.Context, subject string) (bool, int, time.Duration, error) {
	return f.allowed, 5, f.retryAfter, f.err
}

type countingMetrics struct {
	mu    sync.Mutex
	calls map[string]int
}

func (m *countingMetrics) IncReservationCreated(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[mode]++
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func santiago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	return loc
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{
		court: &domain.Court{ID: testCourtID, VenueID: testVenueID, CourtType: domain.CourtTypeFutbol, Active: true},
		hours: []*domain.OperatingHours{
			{VenueID: testVenueID, DayOfWeek: 1, OpenTime: "09:00", CloseTime: "23:00"},
			{VenueID: testVenueID, DayOfWeek: 0, OpenTime: "09:00", CloseTime: "23:00", IsClosed: true},
		},
		rules: []*domain.PriceRule{
			{VenueID: testVenueID, CourtType: domain.CourtTypeFutbol, DayOfWeek: 1,
				StartTime: "09:00", EndTime: "18:00", AmountTotal: 30000, AmountDeposit: 10000},
			{VenueID: testVenueID, CourtType: domain.CourtTypeFutbol, DayOfWeek: 1,
				StartTime: "18:00", EndTime: "23:00", AmountTotal: 45000, AmountDeposit: 15000, IsPeak: true},
		},
	}
}

func validRequest() *Request {
	return &Request{
		VenueID:      testVenueID,
		CourtID:      testCourtID,
		Date:         monday,
		StartTime:    "18:00",
		CustomerName: "Ana Pérez",
		Phone:        "+56911112222",
		Email:        "ana@example.cl",
		PaymentMode:  domain.PaymentModeDeposit,
		ClientKey:    "10.0.0.1",
	}
}

type deps struct {
	catalog     *fakeCatalog
	repo        *memoryRepo
	limiter     RateLimiter
	idempotency IdempotencyStore
	metrics     *countingMetrics
	now         time.Time
}

func newTestUseCase(t *testing.T, d deps) *UseCase {
	t.Helper()
	loc := santiago(t)
	if d.catalog == nil {
		d.catalog = defaultCatalog()
	}
	if d.now.IsZero() {
		d.now = time.Date(2025, 3, 9, 12, 0, 0, 0, loc)
	}
	var metrics MetricsRecorder
	if d.metrics != nil {
		metrics = d.metrics
	}
	return NewUseCaseWithTimeProvider(d.catalog, d.repo, d.limiter, d.idempotency, metrics,
		Options{HoldDuration: 10 * time.Minute, Location: loc}, nopLogger{}, fixedTime{d.now})
}

func TestUseCase_Execute_CreatesPendingReservation(t *testing.T) {
	repo := newMemoryRepo()
	metrics := &countingMetrics{}
	uc := newTestUseCase(t, deps{repo: repo, metrics: metrics})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	res := resp.Reservation
	assert.False(t, resp.Replayed)
	assert.Equal(t, domain.StatusPending, res.Status)
	assert.Equal(t, domain.PaymentProviderWebpayLink, res.PaymentProvider)
	assert.Equal(t, "19:00", res.EndTime.String())
	assert.Equal(t, int64(15000), res.Amount)
	require.NotNil(t, res.HoldExpiresAt)
	assert.Equal(t, 10*time.Minute, res.HoldExpiresAt.Sub(time.Date(2025, 3, 9, 12, 0, 0, 0, santiago(t))))
	assert.Equal(t, 1, metrics.calls["DEPOSIT"])
}

func TestUseCase_Execute_FullPaymentAmount(t *testing.T) {
	req := validRequest()
	req.PaymentMode = domain.PaymentModeFull
	req.StartTime = "10:00"

	uc := newTestUseCase(t, deps{repo: newMemoryRepo()})

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), resp.Reservation.Amount)
}

// Проверки занятости нет: обе одновременные заявки на один слот проходят
func TestUseCase_Execute_ConcurrentSubmissionsBothSucceed(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 2, repo.count())
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		catalog func(c *fakeCatalog)
		wantErr error
	}{
		{"empty name", func(r *Request) { r.CustomerName = "  " }, nil, ErrInvalidInput},
		{"empty phone", func(r *Request) { r.Phone = "" }, nil, ErrInvalidInput},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, nil, ErrInvalidInput},
		{"email with display name", func(r *Request) { r.Email = "Ana <ana@example.cl>" }, nil, ErrInvalidInput},
		{"half hour start", func(r *Request) { r.StartTime = "18:30" }, nil, ErrInvalidInput},
		{"unknown payment mode", func(r *Request) { r.PaymentMode = "CASH" }, nil, ErrInvalidInput},
		{"court of other venue", func(r *Request) { r.VenueID = uuid.New() }, nil, ErrCourtNotFound},
		{"inactive court", nil, func(c *fakeCatalog) { c.court.Active = false }, ErrCourtNotFound},
		{"closed day", func(r *Request) { r.Date = monday.AddDate(0, 0, 6) }, nil, ErrVenueClosed},
		{"missing hours row", func(r *Request) { r.Date = monday.AddDate(0, 0, 1) }, nil, ErrVenueClosed},
		{"before opening", func(r *Request) { r.StartTime = "08:00" }, nil, ErrOutsideHours},
		{"ends after closing", func(r *Request) { r.StartTime = "23:00" }, nil, ErrOutsideHours},
		{"slot in past", func(r *Request) { r.Date = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) }, nil, ErrSlotInPast},
		{"no price rule", nil, func(c *fakeCatalog) { c.rules = nil }, ErrPriceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := defaultCatalog()
			if tt.catalog != nil {
				tt.catalog(catalog)
			}
			repo := newMemoryRepo()
			uc := newTestUseCase(t, deps{catalog: catalog, repo: repo})

			req := validRequest()
			if tt.modify != nil {
				tt.modify(req)
			}

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, repo.count())
		})
	}
}

func TestUseCase_Execute_RateLimited(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo, limiter: &fakeLimiter{allowed: false, retryAfter: 42 * time.Second}})

	req := validRequest()
	req.ClientKey = "203.0.113.7"

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrRateLimited)

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 42*time.Second, rlErr.RetryAfter)
	assert.Equal(t, 0, repo.count())
}

func TestUseCase_Execute_RateLimiterErrorFailsOpen(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo, limiter: &fakeLimiter{err: errors.New("redis down")}})

	req := validRequest()
	req.ClientKey = "203.0.113.7"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.count())
}

func newIdempotencyStore(t *testing.T) (*cache.IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewIdempotencyStore(client, "reservations", 24*time.Hour), mr
}

func TestUseCase_Execute_IdempotentReplay(t *testing.T) {
	store, _ := newIdempotencyStore(t)
	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo, idempotency: store})

	req := validRequest()
	req.IdempotencyKey = "c0ffee"

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Reservation.ID, second.Reservation.ID)
	assert.Equal(t, 1, repo.count())

	// Другой ключ создает новое бронирование
	req.IdempotencyKey = "decaf"
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.count())
}

func TestUseCase_Execute_IdempotencyKeyInProgress(t *testing.T) {
	store, _ := newIdempotencyStore(t)
	ok, err := store.Acquire(context.Background(), "10.0.0.1", "busy", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo, idempotency: store})

	req := validRequest()
	req.IdempotencyKey = "busy"

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrIdempotencyInProgress)
	assert.Equal(t, 0, repo.count())
}

func TestUseCase_Execute_FailureReleasesIdempotencyKey(t *testing.T) {
	store, _ := newIdempotencyStore(t)
	catalog := defaultCatalog()
	catalog.rules = nil

	uc := newTestUseCase(t, deps{catalog: catalog, repo: newMemoryRepo(), idempotency: store})

	req := validRequest()
	req.IdempotencyKey = "retry-me"

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPriceNotFound)

	locked, err := store.IsLocked(context.Background(), "10.0.0.1", "retry-me")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestUseCase_Execute_IdempotencyKeyOfOtherClientIsNotReplayed(t *testing.T) {
	store, _ := newIdempotencyStore(t)
	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo, idempotency: store})

	first := validRequest()
	first.IdempotencyKey = "1"
	created, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	other := validRequest()
	other.ClientKey = "10.0.0.99"
	other.IdempotencyKey = "1"
	other.StartTime = "20:00"
	other.CustomerName = "Otra Persona"
	other.Email = "otra@example.cl"

	resp, err := uc.Execute(context.Background(), other)
	require.NoError(t, err)
	assert.False(t, resp.Replayed)
	assert.NotEqual(t, created.Reservation.ID, resp.Reservation.ID)
	assert.Equal(t, "Otra Persona", resp.Reservation.CustomerName)
	assert.Equal(t, "20:00", resp.Reservation.StartTime.String())
	assert.Equal(t, 2, repo.count())
}

func TestUseCase_Execute_IdempotencyKeyReusedForDifferentRequest(t *testing.T) {
	store, _ := newIdempotencyStore(t)
	repo := newMemoryRepo()
	uc := newTestUseCase(t, deps{repo: repo, idempotency: store})

	req := validRequest()
	req.IdempotencyKey = "1"
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	changed := validRequest()
	changed.IdempotencyKey = "1"
	changed.StartTime = "20:00"

	resp, err := uc.Execute(context.Background(), changed)
	assert.ErrorIs(t, err, ErrIdempotencyKeyReused)
	assert.Nil(t, resp)
	assert.Equal(t, 1, repo.count())
}
