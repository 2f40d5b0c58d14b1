package service

import (
	"context"

	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/pkg/idp"
)

// SessionService is the single source of truth for who is logged in. It
// subscribes once, at application start, to the identity provider's
// state-change stream; every pushed change triggers the token exchange with
// the remote API and an update of the persisted session token.
type SessionService interface {
	Start(ctx context.Context)
	WaitReady(ctx context.Context) error

	RegisterUser(ctx context.Context, sessionID, email, password string) error
	LoginUser(ctx context.Context, sessionID, email, password string) error
	LoginWithGoogle(ctx context.Context, sessionID, code string) error
	LoginWithGithub(ctx context.Context, sessionID, code string) error
	LogoutUser(ctx context.Context, sessionID string)
	UpdateUserProfile(ctx context.Context, sessionID, name, photoURL string) (*entity.Identity, error)

	Current(sessionID string) (*entity.Session, bool)
	Token(ctx context.Context, sessionID string) (string, error)
	RevokeExpired(ctx context.Context) int
}

type EventService interface {
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	GetEventsByCreator(ctx context.Context, token, email string) ([]*entity.Event, error)
	CreateEvent(ctx context.Context, token string, identity *entity.Identity, form *EventForm) (*entity.Event, error)
	UpdateEvent(ctx context.Context, token string, identity *entity.Identity, id string, form *EventForm) (*entity.Event, error)
	DeleteEvent(ctx context.Context, token string, identity *entity.Identity, id string) error
	CanManage(viewerEmail string, event *entity.Event) bool
}

type HubService interface {
	GetAllHubs(ctx context.Context) ([]*entity.Hub, error)
	GetHub(ctx context.Context, token, id string) (*entity.Hub, error)
}

// ListingService serves the mixed event/hub list pages, including the
// client-side substring filtering recomputed against the already-fetched
// dataset.
type ListingService interface {
	Search(ctx context.Context, term string) ([]entity.Listing, error)
}

type BookingService interface {
	// AlreadyBooked swallows check failures and defaults to "not booked".
	AlreadyBooked(ctx context.Context, token, email, eventID string) bool
	// FindBooking returns the viewer's booking for one event, nil when none
	// exists. Lookup failures are swallowed like AlreadyBooked's.
	FindBooking(ctx context.Context, token, email, eventID string) *entity.Booking
	BookHub(ctx context.Context, token string, identity *entity.Identity, hub *entity.Hub) (*entity.Booking, error)
	BookEvent(ctx context.Context, token string, identity *entity.Identity, event *entity.Event) (*entity.Booking, error)
	GetUserBookings(ctx context.Context, token, email string) ([]*entity.Booking, error)
	CancelBooking(ctx context.Context, token, id string) error
	// LoadBookingPage fetches the hub and the booked-status concurrently and
	// waits for both.
	LoadBookingPage(ctx context.Context, token, email, hubID string) (*entity.Hub, bool, error)
}

// IdentityProvider is the slice of the idp client the session store uses.
type IdentityProvider interface {
	SignUp(ctx context.Context, sessionID, email, password string) (*idp.Credentials, error)
	SignInWithPassword(ctx context.Context, sessionID, email, password string) (*idp.Credentials, error)
	SignInWithProvider(ctx context.Context, sessionID string, provider idp.Provider, code string) (*idp.Credentials, error)
	UpdateProfile(ctx context.Context, sessionID, idToken, displayName, photoURL string) (*entity.Identity, error)
	SignOut(ctx context.Context, sessionID, idToken string) error
	Subscribe(ctx context.Context, handler func(context.Context, idp.StateChange)) error
}

// TokenExchanger trades identity tokens for application session tokens.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, identityToken, email string) (string, error)
}

// EventsAPI, HubsAPI and BookingsAPI are the remote API surfaces the page
// services fetch from.
type EventsAPI interface {
	ListEvents(ctx context.Context) ([]*entity.Event, error)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	ListEventsByCreator(ctx context.Context, token, email string) ([]*entity.Event, error)
	CreateEvent(ctx context.Context, token string, event *entity.Event) (*entity.Event, error)
	UpdateEvent(ctx context.Context, token string, event *entity.Event) (*entity.Event, error)
	DeleteEvent(ctx context.Context, token, id string) error
}

type HubsAPI interface {
	ListHubs(ctx context.Context) ([]*entity.Hub, error)
	GetHub(ctx context.Context, token, id string) (*entity.Hub, error)
}

type BookingsAPI interface {
	CreateBooking(ctx context.Context, token string, booking *entity.Booking) (*entity.Booking, error)
	ListBookings(ctx context.Context, token, email string) ([]*entity.Booking, error)
	BookingExists(ctx context.Context, token, email, eventID string) (bool, error)
	DeleteBooking(ctx context.Context, token, id string) error
}
