package transport

import (
	"errors"
	"net/http"

	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	events   service.EventService
	sessions service.SessionService
}

func NewEventHandler(events service.EventService, sessions service.SessionService) *EventHandler {
	return &EventHandler{events: events, sessions: sessions}
}

// SuccessResponse представляет успешный ответ
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeServiceError(c *gin.Context, err error) {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "validation failed",
			"fields":  verr.Fields,
		})
		return
	}

	var nf *entity.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: nf.Error()})
		return
	}

	if errors.Is(err, entity.ErrNotCreator) {
		c.JSON(http.StatusForbidden, ErrorResponse{Success: false, Error: err.Error()})
		return
	}
	if errors.Is(err, entity.ErrAlreadyBooked) || errors.Is(err, entity.ErrEventDatePast) {
		c.JSON(http.StatusConflict, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusBadGateway, ErrorResponse{Success: false, Error: err.Error()})
}

func identityFrom(c *gin.Context) *entity.Identity {
	v, ok := c.Get(middleware.CtxIdentity)
	if !ok {
		return nil
	}
	identity, _ := v.(*entity.Identity)
	return identity
}

func (h *EventHandler) tokenFrom(c *gin.Context) string {
	sid := c.GetString(middleware.CtxSessionID)
	token, err := h.sessions.Token(c.Request.Context(), sid)
	if err != nil {
		return ""
	}
	return token
}

func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.events.GetAllEvents(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: events})
}

// GetEvent also reports whether the viewer may see the manage affordance.
// Display hint only; the remote API enforces ownership.
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	viewerEmail := ""
	if identity := identityFrom(c); identity != nil {
		viewerEmail = identity.Email
	} else if sess, ok := h.sessions.Current(c.GetString(middleware.CtxSessionID)); ok {
		viewerEmail = sess.Email()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      event,
		"canManage": h.events.CanManage(viewerEmail, event),
	})
}

func (h *EventHandler) GetMyEvents(c *gin.Context) {
	identity := identityFrom(c)
	events, err := h.events.GetEventsByCreator(c.Request.Context(), h.tokenFrom(c), identity.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: events})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var form service.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), h.tokenFrom(c), identityFrom(c), &form)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Event created successfully",
		Data:    event,
	})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var form service.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	event, err := h.events.UpdateEvent(c.Request.Context(), h.tokenFrom(c), identityFrom(c), c.Param("id"), &form)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Event updated successfully",
		Data:    event,
	})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	err := h.events.DeleteEvent(c.Request.Context(), h.tokenFrom(c), identityFrom(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Event deleted"})
}
