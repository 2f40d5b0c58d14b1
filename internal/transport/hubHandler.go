package transport

import (
	"net/http"

	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type HubHandler struct {
	hubs     service.HubService
	listings service.ListingService
	sessions service.SessionService
}

func NewHubHandler(hubs service.HubService, listings service.ListingService, sessions service.SessionService) *HubHandler {
	return &HubHandler{hubs: hubs, listings: listings, sessions: sessions}
}

func (h *HubHandler) GetAllHubs(c *gin.Context) {
	hubs, err := h.hubs.GetAllHubs(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: hubs})
}

func (h *HubHandler) GetHub(c *gin.Context) {
	sid := c.GetString(middleware.CtxSessionID)
	token, _ := h.sessions.Token(c.Request.Context(), sid)

	hub, err := h.hubs.GetHub(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: hub})
}

// Search serves the mixed event/hub list with substring filtering across
// name, type/category, description and location.
func (h *HubHandler) Search(c *gin.Context) {
	listings, err := h.listings.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: listings})
}
