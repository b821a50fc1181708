package blocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	blockRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/courtblock"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks/models"
	catalogService "github.com/m04kA/SMC-CourtBooking/internal/service/catalog"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

type mockBlockRepo struct {
	mock.Mock
}

func (m *mockBlockRepo) Create(ctx context.Context, block *domain.CourtBlock) (*domain.CourtBlock, error) {
	args := m.Called(ctx, block)
	b, _ := args.Get(0).(*domain.CourtBlock)
	return b, args.Error(1)
}

func (m *mockBlockRepo) ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*domain.CourtBlock, error) {
	args := m.Called(ctx, courtID, date)
	b, _ := args.Get(0).([]*domain.CourtBlock)
	return b, args.Error(1)
}

func (m *mockBlockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type fakeCourts map[uuid.UUID]*domain.Court

func (f fakeCourts) Court(ctx context.Context, id uuid.UUID) (*domain.Court, error) {
	c, ok := f[id]
	if !ok {
		return nil, catalogService.ErrCourtNotFound
	}
	return c, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Create(t *testing.T) {
	courtID := uuid.New()
	repo := &mockBlockRepo{}
	svc := NewService(repo, fakeCourts{courtID: {ID: courtID}}, nopLogger{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.CourtBlock) bool {
		return b.CourtID == courtID && b.StartTime == "14:00" && b.EndTime == "16:00" &&
			b.Date.Format(domain.DateFormat) == "2025-03-10" && b.Reason != nil && *b.Reason == "Mantención"
	})).Return(&domain.CourtBlock{
		ID: uuid.New(), CourtID: courtID, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00", EndTime: "16:00", Reason: ptr.Ptr("Mantención"),
	}, nil)

	resp, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		CourtID: courtID, Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00", Reason: ptr.Ptr(" Mantención "),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	repo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	courtID := uuid.New()
	svc := NewService(&mockBlockRepo{}, fakeCourts{courtID: {ID: courtID}}, nopLogger{})

	tests := []struct {
		name    string
		req     models.CreateBlockRequest
		wantErr error
	}{
		{"bad date", models.CreateBlockRequest{CourtID: courtID, Date: "10-03-2025", StartTime: "14:00", EndTime: "16:00"}, ErrInvalidInput},
		{"bad start", models.CreateBlockRequest{CourtID: courtID, Date: "2025-03-10", StartTime: "25:00", EndTime: "16:00"}, ErrInvalidInput},
		{"start after end", models.CreateBlockRequest{CourtID: courtID, Date: "2025-03-10", StartTime: "16:00", EndTime: "14:00"}, ErrInvalidTimeRange},
		{"empty range", models.CreateBlockRequest{CourtID: courtID, Date: "2025-03-10", StartTime: "14:00", EndTime: "14:00"}, ErrInvalidTimeRange},
		{"unknown court", models.CreateBlockRequest{CourtID: uuid.New(), Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"}, ErrCourtNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := &mockBlockRepo{}
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(blockRepo.ErrBlockNotFound)

	svc := NewService(repo, fakeCourts{}, nopLogger{})
	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrBlockNotFound)
}

func TestService_List(t *testing.T) {
	courtID := uuid.New()
	repo := &mockBlockRepo{}
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("ListByCourtAndDate", mock.Anything, courtID, day).Return([]*domain.CourtBlock{
		{ID: uuid.New(), CourtID: courtID, Date: day, StartTime: "09:00", EndTime: "11:00"},
	}, nil)

	svc := NewService(repo, fakeCourts{courtID: {ID: courtID}}, nopLogger{})

	resp, err := svc.List(context.Background(), courtID, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, "09:00", resp.Blocks[0].StartTime)
}
