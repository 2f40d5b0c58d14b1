package transport

import (
	"net/http"

	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings service.BookingService
	events   service.EventService
	hubs     service.HubService
	sessions service.SessionService
}

func NewBookingHandler(
	bookings service.BookingService,
	events service.EventService,
	hubs service.HubService,
	sessions service.SessionService,
) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		events:   events,
		hubs:     hubs,
		sessions: sessions,
	}
}

func (h *BookingHandler) token(c *gin.Context) string {
	sid := c.GetString(middleware.CtxSessionID)
	token, _ := h.sessions.Token(c.Request.Context(), sid)
	return token
}

// BookingForm is the pre-filled booking page for one hub: the hub itself
// plus whether the viewer already holds a booking. Both lookups run
// concurrently.
func (h *BookingHandler) BookingForm(c *gin.Context) {
	identity := identityFrom(c)
	hub, booked, err := h.bookings.LoadBookingPage(
		c.Request.Context(), h.token(c), identity.Email, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"data":          hub,
		"alreadyBooked": booked,
	})
}

type createBookingRequest struct {
	EventID string `json:"eventId" binding:"required"`
	// kind selects which collaborator record backs the booking.
	Kind entity.ListingKind `json:"kind"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	identity := identityFrom(c)
	ctx := c.Request.Context()
	token := h.token(c)

	var (
		booking *entity.Booking
		err     error
	)
	switch req.Kind {
	case entity.ListingKindEvent:
		var event *entity.Event
		event, err = h.events.GetEvent(ctx, req.EventID)
		if err == nil {
			booking, err = h.bookings.BookEvent(ctx, token, identity, event)
		}
	default:
		var hub *entity.Hub
		hub, err = h.hubs.GetHub(ctx, token, req.EventID)
		if err == nil {
			booking, err = h.bookings.BookHub(ctx, token, identity, hub)
		}
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Booking confirmed!",
		Data:    booking,
	})
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	identity := identityFrom(c)
	bookings, err := h.bookings.GetUserBookings(c.Request.Context(), h.token(c), identity.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: bookings})
}

func (h *BookingHandler) BookingStatus(c *gin.Context) {
	identity := identityFrom(c)
	booked := h.bookings.AlreadyBooked(
		c.Request.Context(), h.token(c), identity.Email, c.Query("eventId"))
	c.JSON(http.StatusOK, gin.H{"success": true, "exists": booked})
}

// CancelBooking succeeds even when the id is already gone; repeating a
// cancel must not crash and must not alter the visible list.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.bookings.CancelBooking(c.Request.Context(), h.token(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Booking cancelled"})
}
