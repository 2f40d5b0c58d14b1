package transport

import (
	"errors"
	"net/http"

	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions service.SessionService
}

// loginRedirect sanitizes the guard's from parameter. Only local paths are
// followed; anything absolute or protocol-relative ("//host") falls back to
// the home page.
func loginRedirect(from string) string {
	if len(from) == 0 || from[0] != '/' {
		return "/"
	}
	if len(from) > 1 && from[1] == '/' {
		return "/"
	}
	return from
}

func NewAuthHandler(sessions service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// writeAuthError maps the error taxonomy onto transport responses:
// ValidationError carries the per-field map for inline display, AuthError
// surfaces the provider code, anything else is a network-level failure.
func writeAuthError(c *gin.Context, err error) {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "validation failed",
			"fields":  verr.Fields,
		})
		return
	}

	var aerr *entity.AuthError
	if errors.As(err, &aerr) {
		status := http.StatusUnauthorized
		if aerr.Code == entity.AuthCodeEmailExists || aerr.Code == entity.AuthCodeWeakPassword {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   aerr.Message,
			"code":    aerr.Code,
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Form checks run before any network call.
	if err := req.Validate(); err != nil {
		writeAuthError(c, err)
		return
	}

	sid := c.GetString(middleware.CtxSessionID)
	if err := h.sessions.RegisterUser(c.Request.Context(), sid, req.Email, req.Password); err != nil {
		writeAuthError(c, err)
		return
	}

	identity, err := h.sessions.UpdateUserProfile(c.Request.Context(), sid, req.Name, req.PhotoURL)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Registration successful",
		"identity": identity,
		"redirect": "/",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		writeAuthError(c, err)
		return
	}

	sid := c.GetString(middleware.CtxSessionID)
	if err := h.sessions.LoginUser(c.Request.Context(), sid, req.Email, req.Password); err != nil {
		writeAuthError(c, err)
		return
	}

	// Send the user back where the guard intercepted them.
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": loginRedirect(c.Query("from"))})
}

func (h *AuthHandler) LoginOAuth(c *gin.Context) {
	provider := c.Param("provider")

	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	sid := c.GetString(middleware.CtxSessionID)
	ctx := c.Request.Context()

	var err error
	switch provider {
	case "google":
		err = h.sessions.LoginWithGoogle(ctx, sid, req.Code)
	case "github":
		err = h.sessions.LoginWithGithub(ctx, sid, req.Code)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown provider"})
		return
	}
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": loginRedirect(c.Query("from"))})
}

// Logout always reports success; provider failures are logged server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := c.GetString(middleware.CtxSessionID)
	h.sessions.LogoutUser(c.Request.Context(), sid)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		PhotoURL string `json:"photoURL"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	sid := c.GetString(middleware.CtxSessionID)
	identity, err := h.sessions.UpdateUserProfile(c.Request.Context(), sid, req.Name, req.PhotoURL)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "identity": identity})
}

// Session echoes the current session's identity, or null when anonymous.
func (h *AuthHandler) Session(c *gin.Context) {
	sid := c.GetString(middleware.CtxSessionID)
	sess, ok := h.sessions.Current(sid)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "identity": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "identity": sess.Identity})
}
