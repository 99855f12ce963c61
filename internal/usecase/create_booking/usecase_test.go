package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalSchedule/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
	"github.com/m04kA/SMC-RentalSchedule/pkg/txmanager"
)

type stubBookings struct {
	listErrs  []error
	listCalls int
	existing  []*domain.Booking
	created   []*domain.Booking
	createErr error
	nextID    int64
}

func (s *stubBookings) List(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	s.listCalls++
	if s.listCalls <= len(s.listErrs) && s.listErrs[s.listCalls-1] != nil {
		return nil, s.listErrs[s.listCalls-1]
	}
	return s.existing, nil
}

func (s *stubBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	b.ID = 100 + s.nextID
	s.created = append(s.created, b)
	return b, nil
}

type stubResources struct{}

func (stubResources) GetByIDs(_ context.Context, ids []int64) ([]*domain.Resource, error) {
	all := map[int64]*domain.Resource{
		1: {ID: 1, Name: "Room A", Kind: domain.KindRoom, IsActive: true},
		2: {ID: 2, Name: "Projector", Kind: domain.KindEquipment, IsActive: true},
		3: {ID: 3, Name: "Old camera", Kind: domain.KindEquipment, IsActive: false},
	}
	var out []*domain.Resource
	for _, id := range ids {
		if res, ok := all[id]; ok {
			out = append(out, res)
		}
	}
	return out, nil
}

type stubTx struct{ calls int }

// DoSerializable повторяет fn при конфликте сериализации, как настоящий менеджер транзакций
func (t *stubTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for {
		t.calls++
		err := fn(ctx)
		if t.calls < 3 && txmanager.IsSerializationFailure(err) {
			continue
		}
		return err
	}
}

type stubMetrics struct{ conflicts int }

func (m *stubMetrics) RecordConflicts(_ string, count int) { m.conflicts += count }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 3, hour, minute, 0, 0, time.UTC)
}

func newUseCase(bookings *stubBookings, m *stubMetrics) (*UseCase, *stubTx) {
	tx := &stubTx{}
	uc := NewUseCase(bookings, stubResources{}, tx, time.UTC, m, logger.Nop())
	uc.timeProvider = fixedTime{now: at(9, 0)}
	return uc, tx
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		ResourceIDs: []int64{1, 2},
		Start:       at(11, 0),
		End:         at(12, 0),
		UserName:    "carol",
		Project:     "demo",
		PeopleCount: 4,
	}
}

func aliceBooking(resourceID int64) *domain.Booking {
	return &domain.Booking{
		ID:         10,
		ResourceID: resourceID,
		Start:      at(10, 30),
		End:        at(11, 30),
		Occupant:   domain.Occupant{UserName: "alice", Project: "project-alice", Status: domain.StatusReserved},
	}
}

func TestExecute_CreatesOneBookingPerResource(t *testing.T) {
	bookings := &stubBookings{}
	uc, tx := newUseCase(bookings, &stubMetrics{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []int64{101, 102}, resp.BookingIDs)
	require.Len(t, bookings.created, 2)
	assert.Equal(t, int64(1), bookings.created[0].ResourceID)
	assert.Equal(t, int64(2), bookings.created[1].ResourceID)
	assert.Equal(t, domain.StatusDraft, bookings.created[0].Occupant.Status)
	assert.Equal(t, "carol", bookings.created[1].Occupant.UserName)
}

func TestExecute_AdjacentBookingIsNotAConflict(t *testing.T) {
	existing := aliceBooking(1)
	existing.End = at(11, 0)
	bookings := &stubBookings{existing: []*domain.Booking{existing}}
	uc, _ := newUseCase(bookings, &stubMetrics{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Len(t, bookings.created, 2)
}

func TestExecute_Conflict(t *testing.T) {
	bookings := &stubBookings{existing: []*domain.Booking{aliceBooking(1)}}
	m := &stubMetrics{}
	uc, _ := newUseCase(bookings, m)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, []string{"Room A: alice (project-alice): 2024-06-03 10:30-11:30"}, conflictErr.Conflicts)
	assert.Empty(t, bookings.created)
	assert.Equal(t, 1, m.conflicts)
}

func TestExecute_StorageOverlapIsAConflict(t *testing.T) {
	bookings := &stubBookings{createErr: fmt.Errorf("%w: resource=1", bookingRepo.ErrOverlap)}
	m := &stubMetrics{}
	uc, _ := newUseCase(bookings, m)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, []string{"Room A: overlaps a concurrent booking"}, conflictErr.Conflicts)
	assert.Equal(t, 1, m.conflicts)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	cancelled := aliceBooking(1)
	cancelled.Occupant.Status = domain.StatusCancelled
	bookings := &stubBookings{existing: []*domain.Booking{cancelled}}
	uc, _ := newUseCase(bookings, &stubMetrics{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"no resources", func(r *Request) { r.ResourceIDs = nil }, ErrInvalidInput},
		{"duplicate resources", func(r *Request) { r.ResourceIDs = []int64{1, 1} }, ErrInvalidInput},
		{"empty interval", func(r *Request) { r.End = r.Start }, ErrInvalidInterval},
		{"missing user name", func(r *Request) { r.UserName = "  " }, ErrInvalidInput},
		{"issued on creation", func(r *Request) { r.Status = domain.StatusIssued }, ErrInvalidInput},
		{"in the past", func(r *Request) { r.Start, r.End = at(8, 0), at(8, 30) }, ErrStartInPast},
		{"unknown resource", func(r *Request) { r.ResourceIDs = []int64{1, 9} }, ErrResourceNotFound},
		{"inactive resource", func(r *Request) { r.ResourceIDs = []int64{3} }, ErrResourceInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &stubBookings{}
			uc, tx := newUseCase(bookings, &stubMetrics{})

			req := validRequest()
			tt.modify(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestExecute_SerializationFailureIsRetriedIntoConflict(t *testing.T) {
	// Параллельная транзакция успела занять слот: первое чтение падает с 40001,
	// повтор видит её бронирование
	queryErr := fmt.Errorf("%w: List - execute query: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	bookings := &stubBookings{
		listErrs: []error{queryErr},
		existing: []*domain.Booking{aliceBooking(1)},
	}
	m := &stubMetrics{}
	uc, tx := newUseCase(bookings, m)

	resp, err := uc.Execute(context.Background(), validRequest())
	assert.Nil(t, resp)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.False(t, errors.Is(err, ErrInternal))

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.NotEmpty(t, conflictErr.Conflicts)

	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, 2, bookings.listCalls)
	assert.Empty(t, bookings.created)
}

func TestExecute_SerializationFailureRetrySucceeds(t *testing.T) {
	queryErr := fmt.Errorf("%w: List - execute query: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	bookings := &stubBookings{listErrs: []error{queryErr}}
	uc, tx := newUseCase(bookings, &stubMetrics{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, []int64{101, 102}, resp.BookingIDs)
}
