package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the HTML views. Detail pages run their data loader
// before rendering, so the template receives already-resolved data; loader
// failures fall through to the not-found view via the error boundary below.
type PageHandler struct {
	sessions service.SessionService
	events   service.EventService
	hubs     service.HubService
	listings service.ListingService
	bookings service.BookingService
}

func NewPageHandler(
	sessions service.SessionService,
	events service.EventService,
	hubs service.HubService,
	listings service.ListingService,
	bookings service.BookingService,
) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		events:   events,
		hubs:     hubs,
		listings: listings,
		bookings: bookings,
	}
}

func (h *PageHandler) viewer(c *gin.Context) *entity.Identity {
	if identity := identityFrom(c); identity != nil {
		return identity
	}
	sess, ok := h.sessions.Current(c.GetString(middleware.CtxSessionID))
	if !ok {
		return nil
	}
	return sess.Identity
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	var nf *entity.NotFoundError
	if errors.As(err, &nf) {
		h.NotFound(c)
		return
	}
	c.HTML(http.StatusBadGateway, "error.html", gin.H{
		"Title":  "Error | AthleticHub",
		"Viewer": h.viewer(c),
		"Error":  err.Error(),
	})
}

func (h *PageHandler) Home(c *gin.Context) {
	hubs, err := h.hubs.GetAllHubs(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":  "Home | AthleticHub",
		"Viewer": h.viewer(c),
		"Hubs":   hubs,
	})
}

// Hubs is the mixed list page; the search term filters the already-fetched
// dataset, no extra round-trip to the remote API per keystroke.
func (h *PageHandler) Hubs(c *gin.Context) {
	term := c.Query("q")
	listings, err := h.listings.Search(c.Request.Context(), term)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "hubs.html", gin.H{
		"Title":    "All Events Hub | AthleticHub",
		"Viewer":   h.viewer(c),
		"Listings": listings,
		"Term":     term,
	})
}

func (h *PageHandler) HubDetails(c *gin.Context) {
	sid := c.GetString(middleware.CtxSessionID)
	token, _ := h.sessions.Token(c.Request.Context(), sid)

	hub, err := h.hubs.GetHub(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "hubDetails.html", gin.H{
		"Title":  hub.Title + " | AthleticHub",
		"Viewer": h.viewer(c),
		"Hub":    hub,
	})
}

func (h *PageHandler) EventDetails(c *gin.Context) {
	viewer := h.viewer(c)
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	viewerEmail := ""
	var booking *entity.Booking
	if viewer != nil {
		viewerEmail = viewer.Email
		sid := c.GetString(middleware.CtxSessionID)
		token, _ := h.sessions.Token(c.Request.Context(), sid)
		// The full record, not just a flag: cancellation needs the booking id.
		booking = h.bookings.FindBooking(c.Request.Context(), token, viewerEmail, event.ID)
	}

	c.HTML(http.StatusOK, "eventDetails.html", gin.H{
		"Title":     event.EventName + " | AthleticHub",
		"Viewer":    viewer,
		"Event":     event,
		"CanManage": h.events.CanManage(viewerEmail, event),
		"Booking":   booking,
		"IsPast":    event.IsPast(time.Now()),
	})
}

func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":  "Login | AthleticHub",
		"Viewer": h.viewer(c),
		"From":   c.Query("from"),
	})
}

func (h *PageHandler) Register(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":  "Register | AthleticHub",
		"Viewer": h.viewer(c),
	})
}

func (h *PageHandler) CreateEvent(c *gin.Context) {
	c.HTML(http.StatusOK, "createEvent.html", gin.H{
		"Title":      "Create Event | AthleticHub",
		"Viewer":     h.viewer(c),
		"EventTypes": entity.EventTypes,
	})
}

func (h *PageHandler) UpdateEvent(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "updateEvent.html", gin.H{
		"Title":      "Update Event | AthleticHub",
		"Viewer":     h.viewer(c),
		"Event":      event,
		"EventTypes": entity.EventTypes,
	})
}

func (h *PageHandler) MyBookings(c *gin.Context) {
	identity := identityFrom(c)
	sid := c.GetString(middleware.CtxSessionID)
	token, _ := h.sessions.Token(c.Request.Context(), sid)

	bookings, err := h.bookings.GetUserBookings(c.Request.Context(), token, identity.Email)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "myBookings.html", gin.H{
		"Title":    "My Bookings | AthleticHub",
		"Viewer":   identity,
		"Bookings": bookings,
	})
}

func (h *PageHandler) Booking(c *gin.Context) {
	identity := identityFrom(c)
	sid := c.GetString(middleware.CtxSessionID)
	token, _ := h.sessions.Token(c.Request.Context(), sid)

	hub, booked, err := h.bookings.LoadBookingPage(c.Request.Context(), token, identity.Email, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "booking.html", gin.H{
		"Title":         "Book: " + hub.Title + " | AthleticHub",
		"Viewer":        identity,
		"Hub":           hub,
		"AlreadyBooked": booked,
	})
}

func (h *PageHandler) ManageEvents(c *gin.Context) {
	identity := identityFrom(c)
	sid := c.GetString(middleware.CtxSessionID)
	token, _ := h.sessions.Token(c.Request.Context(), sid)

	events, err := h.events.GetEventsByCreator(c.Request.Context(), token, identity.Email)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "manageEvents.html", gin.H{
		"Title":  "Manage Your Events | AthleticHub",
		"Viewer": identity,
		"Events": events,
	})
}

func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notFound.html", gin.H{
		"Title":  "Not Found | AthleticHub",
		"Viewer": h.viewer(c),
	})
}
