package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/athletichub/athletichub/internal/entity"

	"github.com/sirupsen/logrus"
)

type bookingService struct {
	bookings BookingsAPI
	hubs     HubsAPI
}

func NewBookingService(bookings BookingsAPI, hubs HubsAPI) BookingService {
	return &bookingService{bookings: bookings, hubs: hubs}
}

// AlreadyBooked re-checks the one-booking-per-user-per-event invariant
// before a booking action. Failures are logged and swallowed, defaulting to
// "not booked"; the remote API enforces the invariant for real. The
// check-then-create sequence is not atomic across concurrent sessions.
func (s *bookingService) AlreadyBooked(ctx context.Context, token, email, eventID string) bool {
	exists, err := s.bookings.BookingExists(ctx, token, email, eventID)
	if err != nil {
		logrus.Errorf("booking status check failed for %s/%s: %v", email, eventID, err)
		return false
	}
	return exists
}

// FindBooking resolves the booking record behind a booked state, so the
// event page can offer cancellation by booking id. Same failure policy as
// AlreadyBooked: log and report "no booking".
func (s *bookingService) FindBooking(ctx context.Context, token, email, eventID string) *entity.Booking {
	bookings, err := s.bookings.ListBookings(ctx, token, email)
	if err != nil {
		logrus.Errorf("booking lookup failed for %s/%s: %v", email, eventID, err)
		return nil
	}
	for _, b := range bookings {
		if b.EventID == eventID {
			return b
		}
	}
	return nil
}

func (s *bookingService) BookHub(ctx context.Context, token string, identity *entity.Identity, hub *entity.Hub) (*entity.Booking, error) {
	if s.AlreadyBooked(ctx, token, identity.Email, hub.ID) {
		return nil, entity.ErrAlreadyBooked
	}

	booking := &entity.Booking{
		UserEmail: identity.Email,
		EventID:   hub.ID,
		EventName: hub.Title,
		EventDate: hub.Date,
		Location:  hub.Location,
		BookedAt:  time.Now(),
	}

	created, err := s.bookings.CreateBooking(ctx, token, booking)
	if err != nil {
		return nil, fmt.Errorf("booking failed: %w", err)
	}
	return created, nil
}

func (s *bookingService) BookEvent(ctx context.Context, token string, identity *entity.Identity, event *entity.Event) (*entity.Booking, error) {
	if event.IsPast(time.Now()) {
		return nil, entity.ErrEventDatePast
	}
	if s.AlreadyBooked(ctx, token, identity.Email, event.ID) {
		return nil, entity.ErrAlreadyBooked
	}

	booking := &entity.Booking{
		UserEmail: identity.Email,
		EventID:   event.ID,
		EventName: event.EventName,
		EventDate: event.EventDate,
		BookedAt:  time.Now(),
	}

	created, err := s.bookings.CreateBooking(ctx, token, booking)
	if err != nil {
		return nil, fmt.Errorf("booking failed: %w", err)
	}
	return created, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, token, email string) ([]*entity.Booking, error) {
	bookings, err := s.bookings.ListBookings(ctx, token, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return entity.DedupeBookings(bookings), nil
}

// CancelBooking is idempotent: cancelling an id the remote API no longer
// knows is treated as already done.
func (s *bookingService) CancelBooking(ctx context.Context, token, id string) error {
	err := s.bookings.DeleteBooking(ctx, token, id)
	var nf *entity.NotFoundError
	if errors.As(err, &nf) {
		logrus.WithField("booking", id).Info("Cancel of unknown booking, treating as cancelled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

// LoadBookingPage issues the hub fetch and the booked-status check
// concurrently and waits for both before the page leaves its loading state.
// No ordering is guaranteed between the two.
func (s *bookingService) LoadBookingPage(ctx context.Context, token, email, hubID string) (*entity.Hub, bool, error) {
	var (
		wg     sync.WaitGroup
		hub    *entity.Hub
		hubErr error
		booked bool
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		hub, hubErr = s.hubs.GetHub(ctx, token, hubID)
	}()
	go func() {
		defer wg.Done()
		booked = s.AlreadyBooked(ctx, token, email, hubID)
	}()
	wg.Wait()

	if hubErr != nil {
		return nil, false, hubErr
	}
	return hub, booked, nil
}
