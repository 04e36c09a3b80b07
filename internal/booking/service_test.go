package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyle/cinema-booking/internal/hold"
	"github.com/huyle/cinema-booking/internal/model"
	"github.com/huyle/cinema-booking/internal/repository"
)

// fakeStore is an in-memory stand-in for repository.Store.  Its
// CreateBooking mirrors the production rows-affected guard: the write
// fails with ErrSeatNotAvailable unless the seat is still available.
type fakeStore struct {
	mu         sync.Mutex
	seats      map[uint64]model.Seat
	bookings   []model.Booking
	nextID     uint64
	createErr  error // forced failure for the next CreateBooking
}

func newFakeStore(seats ...model.Seat) *fakeStore {
	f := &fakeStore{seats: make(map[uint64]model.Seat)}
	for _, s := range seats {
		f.seats[s.ID] = s
	}
	return f
}

func (f *fakeStore) ListSeats(_ context.Context, showtimeID uint64) ([]model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Seat
	for _, s := range f.seats {
		if s.ShowtimeID == showtimeID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetSeat(_ context.Context, seatID uint64) (model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.seats[seatID]
	if !ok {
		return model.Seat{}, repository.ErrSeatNotFound
	}
	return s, nil
}

func (f *fakeStore) CreateBooking(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	s, ok := f.seats[b.SeatID]
	if !ok || s.Status != model.SeatStatusAvailable {
		return repository.ErrSeatNotAvailable
	}
	s.Status = model.SeatStatusBooked
	f.seats[b.SeatID] = s
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, *b)
	return nil
}

func testService(seats ...model.Seat) (*Service, *fakeStore, *hold.Registry) {
	store := newFakeStore(seats...)
	registry := hold.NewRegistry(5 * time.Minute)
	return NewService(store, registry), store, registry
}

func seat(id, showtimeID uint64, number, status string) model.Seat {
	return model.Seat{ID: id, ShowtimeID: showtimeID, SeatNumber: number, Status: status}
}

func TestSeatsForViewer(t *testing.T) {
	svc, _, registry := testService(
		seat(1, 7, "A1", model.SeatStatusAvailable),
		seat(2, 7, "A2", model.SeatStatusAvailable),
		seat(3, 7, "A3", model.SeatStatusBooked),
		seat(4, 8, "A1", model.SeatStatusAvailable), // other showtime
	)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry.SetClock(func() time.Time { return base })
	svc.SetClock(func() time.Time { return base })

	_, err := registry.PlaceHold(1, 7, 42) // viewer's own hold
	require.NoError(t, err)
	_, err = registry.PlaceHold(2, 7, 99) // someone else's hold
	require.NoError(t, err)

	views, err := svc.SeatsForViewer(context.Background(), 7, 42)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, StatusAvailable, views[0].Status)
	assert.True(t, views[0].HeldByViewer)
	assert.Equal(t, 300, views[0].RemainingTime)

	assert.Equal(t, StatusHeld, views[1].Status)
	assert.False(t, views[1].HeldByViewer)
	assert.Zero(t, views[1].RemainingTime)

	assert.Equal(t, StatusBooked, views[2].Status)
	assert.False(t, views[2].HeldByViewer)
}

func TestSeatsForAnonymousViewer(t *testing.T) {
	svc, _, registry := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	_, err := registry.PlaceHold(1, 7, 42)
	require.NoError(t, err)

	// Anonymous viewers never own a hold, even if some user id were 0.
	views, err := svc.SeatsForViewer(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, StatusHeld, views[0].Status)
	assert.False(t, views[0].HeldByViewer)
}

func TestSeatsForViewerExpiredHoldIsAvailable(t *testing.T) {
	svc, _, registry := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry.SetClock(func() time.Time { return base })
	_, err := registry.PlaceHold(1, 7, 42)
	require.NoError(t, err)

	registry.SetClock(func() time.Time { return base.Add(6 * time.Minute) })
	views, err := svc.SeatsForViewer(context.Background(), 7, 99)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, views[0].Status)
}

func TestHoldSeat(t *testing.T) {
	svc, _, _ := testService(
		seat(1, 7, "A1", model.SeatStatusAvailable),
		seat(2, 7, "A2", model.SeatStatusBooked),
	)

	h, err := svc.HoldSeat(context.Background(), 1, 7, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), h.UserID)

	// Another user cannot take the held seat.
	_, err = svc.HoldSeat(context.Background(), 1, 7, 99)
	assert.ErrorIs(t, err, hold.ErrSeatHeldByOther)

	// Booked seat cannot be held.
	_, err = svc.HoldSeat(context.Background(), 2, 7, 42)
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	// Unknown seat and showtime mismatch look the same to the caller.
	_, err = svc.HoldSeat(context.Background(), 99, 7, 42)
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	_, err = svc.HoldSeat(context.Background(), 1, 8, 42)
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	// The holder can renew.
	_, err = svc.HoldSeat(context.Background(), 1, 7, 42)
	assert.NoError(t, err)
}

func TestBookHappyPath(t *testing.T) {
	svc, store, _ := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	_, err := svc.HoldSeat(context.Background(), 1, 7, 42)
	require.NoError(t, err)

	b, err := svc.Book(context.Background(), 1, 7, 42)
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.NotEmpty(t, b.QRCode)

	got, err := store.GetSeat(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.SeatStatusBooked, got.Status)

	// The consumed hold cannot be booked again.
	_, err = svc.Book(context.Background(), 1, 7, 42)
	assert.ErrorIs(t, err, ErrNoValidHold)
}

func TestBookRequiresOwnLiveHold(t *testing.T) {
	svc, _, registry := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	// No hold at all.
	_, err := svc.Book(context.Background(), 1, 7, 42)
	assert.ErrorIs(t, err, ErrNoValidHold)

	// Someone else's hold.
	_, err = registry.PlaceHold(1, 7, 99)
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), 1, 7, 42)
	assert.ErrorIs(t, err, ErrNoValidHold)
}

func TestBookExpiredHold(t *testing.T) {
	svc, _, registry := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry.SetClock(func() time.Time { return base })
	_, err := svc.HoldSeat(context.Background(), 1, 7, 42)
	require.NoError(t, err)

	registry.SetClock(func() time.Time { return base.Add(6 * time.Minute) })
	_, err = svc.Book(context.Background(), 1, 7, 42)
	assert.ErrorIs(t, err, ErrNoValidHold)
}

func TestBookSeatLostRace(t *testing.T) {
	svc, store, _ := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	_, err := svc.HoldSeat(context.Background(), 1, 7, 42)
	require.NoError(t, err)

	// Another commit path booked the seat underneath the hold.
	store.mu.Lock()
	s := store.seats[1]
	s.Status = model.SeatStatusBooked
	store.seats[1] = s
	store.mu.Unlock()

	_, err = svc.Book(context.Background(), 1, 7, 42)
	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestBookStorageFailurePreservesHold(t *testing.T) {
	svc, store, registry := testService(seat(1, 7, "A1", model.SeatStatusAvailable))

	_, err := svc.HoldSeat(context.Background(), 1, 7, 42)
	require.NoError(t, err)

	store.mu.Lock()
	store.createErr = errors.New("connection reset")
	store.mu.Unlock()

	_, err = svc.Book(context.Background(), 1, 7, 42)
	assert.ErrorIs(t, err, ErrStorageFailure)

	// The hold survived the failure, so an immediate retry succeeds.
	_, ok := registry.Get(1)
	require.True(t, ok)

	b, err := svc.Book(context.Background(), 1, 7, 42)
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	_, ok = registry.Get(1)
	assert.False(t, ok)
}
