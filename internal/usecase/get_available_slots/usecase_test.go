package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
)

type fakeCatalog struct {
	courts map[uuid.UUID]*domain.Court
	hours  []*domain.OperatingHours
	rules  []*domain.PriceRule
	err    error
}

func (f *fakeCatalog) Court(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, catalogService.ErrCourtNotFound
	}
	return c, nil
}

func (f *fakeCatalog) OperatingHours(ctx context.Context, venueID uuid.UUID) ([]*domain.OperatingHours, error) {
	return f.hours, f.err
}

func (f *fakeCatalog) PriceRules(ctx context.Context, venueID uuid.UUID) ([]*domain.PriceRule, error) {
	return f.rules, nil
}

type fakeReservations struct {
	list    []*domain.Reservation
	filters []domain.ReservationsFilter
}

func (f *fakeReservations) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.filters = append(f.filters, filter)
	return f.list, nil
}

type fakeBlocks struct {
	blocks []*domain.CourtBlock
}

func (f *fakeBlocks) ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*domain.CourtBlock, error) {
	return f.blocks, nil
}

func (f *fakeBlocks) ListByCourtAndPeriod(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]*domain.CourtBlock, error) {
	return f.blocks, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weekHours() []*domain.OperatingHours {
	hours := make([]*domain.OperatingHours, 0, 7)
	for dow := 0; dow < 7; dow++ {
		hours = append(hours, &domain.OperatingHours{
			VenueID:   testVenueID,
			DayOfWeek: dow,
			OpenTime:  "09:00",
			CloseTime: "23:00",
			IsClosed:  dow == 0, // воскресенье закрыто
		})
	}
	return hours
}

func newUseCase(t *testing.T, catalog *fakeCatalog, res *fakeReservations, blocks *fakeBlocks) *UseCase {
	t.Helper()
	loc := santiago(t)
	return NewUseCaseWithTimeProvider(catalog, res, blocks, loc, nopLogger{},
		fixedTime{time.Date(2025, 3, 9, 12, 0, 0, 0, loc)})
}

func activeCourt() map[uuid.UUID]*domain.Court {
	return map[uuid.UUID]*domain.Court{
		testCourtID: {ID: testCourtID, VenueID: testVenueID, CourtType: domain.CourtTypeFutbol, Active: true},
	}
}

func TestUseCase_Execute(t *testing.T) {
	res := &fakeReservations{list: []*domain.Reservation{reservation("18:00", domain.StatusPaid, nil)}}
	uc := newUseCase(t, &fakeCatalog{courts: activeCourt(), hours: weekHours()}, res, &fakeBlocks{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: testVenueID, CourtID: testCourtID, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, domain.CourtTypeFutbol, resp.CourtType)
	require.Len(t, resp.Slots, 14)
	assert.Equal(t, domain.SlotBooked, slotAt(t, resp.Slots, "18:00").Status)

	require.Len(t, res.filters, 1)
	assert.Equal(t, testCourtID, *res.filters[0].CourtID)
	assert.Equal(t, domain.ActiveStatuses, res.filters[0].Statuses)
}

func TestUseCase_Execute_CourtChecks(t *testing.T) {
	otherVenue := uuid.New()
	inactiveID := uuid.New()
	courts := activeCourt()
	courts[inactiveID] = &domain.Court{ID: inactiveID, VenueID: testVenueID, Active: false}

	uc := newUseCase(t, &fakeCatalog{courts: courts, hours: weekHours()}, &fakeReservations{}, &fakeBlocks{})

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"unknown court", Request{VenueID: testVenueID, CourtID: uuid.New(), Date: monday}, ErrCourtNotFound},
		{"court of other venue", Request{VenueID: otherVenue, CourtID: testCourtID, Date: monday}, ErrCourtNotFound},
		{"inactive court", Request{VenueID: testVenueID, CourtID: inactiveID, Date: monday}, ErrCourtNotFound},
		{"missing date", Request{VenueID: testVenueID, CourtID: testCourtID}, ErrInvalidInput},
		{"missing venue", Request{CourtID: testCourtID, Date: monday}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_LoadError(t *testing.T) {
	uc := newUseCase(t, &fakeCatalog{courts: activeCourt(), err: errors.New("db down")}, &fakeReservations{}, &fakeBlocks{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: testVenueID, CourtID: testCourtID, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_ExecuteWeek(t *testing.T) {
	wednesday := monday.AddDate(0, 0, 2)
	paid := reservation("20:00", domain.StatusPaid, nil)
	paid.Date = wednesday

	res := &fakeReservations{list: []*domain.Reservation{paid}}
	uc := newUseCase(t, &fakeCatalog{courts: activeCourt(), hours: weekHours()}, res, &fakeBlocks{})

	resp, err := uc.ExecuteWeek(context.Background(), &WeekRequest{VenueID: testVenueID, CourtID: testCourtID, WeekStart: wednesday})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.WeekStart.Format(domain.DateFormat))
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "2025-03-16", resp.Days[6].Date.Format(domain.DateFormat))
	assert.Empty(t, resp.Days[6].Slots) // воскресенье
	assert.Len(t, resp.Days[0].Slots, 14)

	assert.Equal(t, domain.SlotBooked, slotAt(t, resp.Days[2].Slots, "20:00").Status)
	assert.Equal(t, domain.SlotAvailable, slotAt(t, resp.Days[1].Slots, "20:00").Status)

	require.Len(t, res.filters, 1)
	assert.Equal(t, "2025-03-10", res.filters[0].DateFrom.Format(domain.DateFormat))
	assert.Equal(t, "2025-03-16", res.filters[0].DateTo.Format(domain.DateFormat))
}
