package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
	"github.com/m04kA/SMC-RentalSchedule/pkg/ptr"
)

type stubRepo struct {
	bookings   map[int64]*domain.Booking
	lastFilter domain.BookingsFilter
	listErr    error
	updated    map[int64]domain.BookingStatus
}

func newStubRepo(bookings ...*domain.Booking) *stubRepo {
	r := &stubRepo{bookings: map[int64]*domain.Booking{}, updated: map[int64]domain.BookingStatus{}}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *stubRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *stubRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.updated[id] = status
	return nil
}

type stubTx struct{ calls int }

func (t *stubTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func booking(id, userID int64, status domain.BookingStatus) *domain.Booking {
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         id,
		ResourceID: 1,
		UserID:     userID,
		Start:      start,
		End:        start.Add(time.Hour),
		Occupant:   domain.Occupant{UserName: "alice", Project: "demo", Status: status},
	}
}

func TestService_GetByID(t *testing.T) {
	svc := NewService(newStubRepo(booking(1, 7, domain.StatusReserved)), &stubTx{}, logger.Nop())

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "reserved", resp.Status)
	assert.Equal(t, "alice", resp.UserName)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	t.Run("end date is inclusive", func(t *testing.T) {
		repo := newStubRepo(booking(1, 7, domain.StatusDraft))
		svc := NewService(repo, &stubTx{}, logger.Nop())

		start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
			ResourceIDs: []int64{1},
			StartDate:   &start,
			EndDate:     &end,
			Status:      ptr.Ptr("draft"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)

		require.NotNil(t, repo.lastFilter.To)
		assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), *repo.lastFilter.To)
		assert.Equal(t, []domain.BookingStatus{domain.StatusDraft}, repo.lastFilter.Statuses)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewService(newStubRepo(), &stubTx{}, logger.Nop())
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("lost")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reversed period", func(t *testing.T) {
		svc := NewService(newStubRepo(), &stubTx{}, logger.Nop())
		start := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{StartDate: &start, EndDate: &end})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newStubRepo()
		repo.listErr = errors.New("connection reset")
		svc := NewService(repo, &stubTx{}, logger.Nop())
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_StatusChanges(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		userID  int64
		call    func(s *Service, ctx context.Context, id, userID int64) error
		want    domain.BookingStatus
		wantErr error
	}{
		{
			name:   "owner cancels draft",
			status: domain.StatusDraft,
			userID: 7,
			call:   (*Service).Cancel,
			want:   domain.StatusCancelled,
		},
		{
			name:    "stranger cannot cancel",
			status:  domain.StatusDraft,
			userID:  8,
			call:    (*Service).Cancel,
			wantErr: ErrAccessDenied,
		},
		{
			name:   "owner reserves draft",
			status: domain.StatusDraft,
			userID: 7,
			call:   (*Service).Reserve,
			want:   domain.StatusReserved,
		},
		{
			name:    "issued booking cannot be cancelled",
			status:  domain.StatusIssued,
			userID:  7,
			call:    (*Service).Cancel,
			wantErr: ErrInvalidTransition,
		},
		{
			name:   "staff accepts return",
			status: domain.StatusIssued,
			userID: 8,
			call:   (*Service).Return,
			want:   domain.StatusReturned,
		},
		{
			name:    "draft cannot be returned",
			status:  domain.StatusDraft,
			userID:  7,
			call:    (*Service).Return,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo(booking(1, 7, tt.status))
			tx := &stubTx{}
			svc := NewService(repo, tx, logger.Nop())

			err := tt.call(svc, context.Background(), 1, tt.userID)
			assert.Equal(t, 1, tx.calls)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, repo.updated[1])
		})
	}

	t.Run("missing booking", func(t *testing.T) {
		svc := NewService(newStubRepo(), &stubTx{}, logger.Nop())
		assert.ErrorIs(t, svc.Cancel(context.Background(), 42, 7), ErrBookingNotFound)
	})
}
