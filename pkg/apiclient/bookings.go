package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/athletichub/athletichub/internal/entity"
)

func (c *Client) CreateBooking(ctx context.Context, token string, booking *entity.Booking) (*entity.Booking, error) {
	var created entity.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", token, nil, booking, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListBookings(ctx context.Context, token, email string) ([]*entity.Booking, error) {
	query := url.Values{}
	query.Set("email", email)

	var bookings []*entity.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", token, query, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// BookingExists is the uniqueness re-check issued before a booking action.
// It is advisory only: the check-then-create sequence is not atomic, so two
// concurrent sessions can still both pass it.
func (c *Client) BookingExists(ctx context.Context, token, email, eventID string) (bool, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("eventId", eventID)

	var status struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings", token, query, nil, &status); err != nil {
		return false, err
	}
	return status.Exists, nil
}

func (c *Client) DeleteBooking(ctx context.Context, token, id string) error {
	err := c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), token, nil, nil, nil)
	if nf, ok := err.(*entity.NotFoundError); ok {
		nf.Resource, nf.ID = "booking", id
	}
	return err
}
