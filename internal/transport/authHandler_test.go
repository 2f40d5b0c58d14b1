package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessions accepts every login and tracks the resulting session.
type stubSessions struct {
	identity *entity.Identity
	sessions map[string]*entity.Session
	loginErr error
}

func (s *stubSessions) Start(ctx context.Context)          {}
func (s *stubSessions) WaitReady(ctx context.Context) error { return nil }

func (s *stubSessions) RegisterUser(ctx context.Context, sessionID, email, password string) error {
	return s.LoginUser(ctx, sessionID, email, password)
}

func (s *stubSessions) LoginUser(ctx context.Context, sessionID, email, password string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.sessions[sessionID] = &entity.Session{ID: sessionID, Identity: s.identity}
	return nil
}

func (s *stubSessions) LoginWithGoogle(ctx context.Context, sessionID, code string) error {
	return s.LoginUser(ctx, sessionID, "", "")
}

func (s *stubSessions) LoginWithGithub(ctx context.Context, sessionID, code string) error {
	return s.LoginUser(ctx, sessionID, "", "")
}

func (s *stubSessions) LogoutUser(ctx context.Context, sessionID string) {
	delete(s.sessions, sessionID)
}

func (s *stubSessions) UpdateUserProfile(ctx context.Context, sessionID, name, photoURL string) (*entity.Identity, error) {
	return s.identity, nil
}

func (s *stubSessions) Current(sessionID string) (*entity.Session, bool) {
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

func (s *stubSessions) Token(ctx context.Context, sessionID string) (string, error) {
	return "", entity.ErrNoSession
}

func (s *stubSessions) RevokeExpired(ctx context.Context) int { return 0 }

func authRouter(sessions *stubSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.CtxSessionID, "sid-1")
	})

	handler := NewAuthHandler(sessions)
	router.POST("/api/v1/auth/login", handler.Login)
	router.POST("/api/v1/auth/oauth/:provider", handler.LoginOAuth)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"email": "user@example.com", "password": "Secret1"}`)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestLoginReturnsToFrom checks the round trip back from the guard: a
// successful login sends the visitor to the originally requested path, and
// anything that is not a local path falls back to the home page.
func TestLoginReturnsToFrom(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantRedirect string
	}{
		{
			name:         "guard-intercepted path",
			target:       "/api/v1/auth/login?from=%2FmyBookings",
			wantRedirect: "/myBookings",
		},
		{
			name:         "no from falls back home",
			target:       "/api/v1/auth/login",
			wantRedirect: "/",
		},
		{
			name:         "relative path rejected",
			target:       "/api/v1/auth/login?from=myBookings",
			wantRedirect: "/",
		},
		{
			name:         "absolute url rejected",
			target:       "/api/v1/auth/login?from=https%3A%2F%2Fevil.example",
			wantRedirect: "/",
		},
		{
			name:         "protocol-relative url rejected",
			target:       "/api/v1/auth/login?from=%2F%2Fevil.example",
			wantRedirect: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &stubSessions{
				identity: &entity.Identity{Email: "user@example.com"},
				sessions: map[string]*entity.Session{},
			}
			router := authRouter(sessions)

			w := postLogin(t, router, tt.target)
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Success  bool   `json:"success"`
				Redirect string `json:"redirect"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantRedirect, resp.Redirect)

			// The session is observable immediately after login.
			_, ok := sessions.Current("sid-1")
			assert.True(t, ok)
		})
	}
}

func TestLoginFailurePropagatesAuthError(t *testing.T) {
	sessions := &stubSessions{
		sessions: map[string]*entity.Session{},
		loginErr: &entity.AuthError{Code: entity.AuthCodeInvalidCredentials, Message: "wrong password"},
	}
	router := authRouter(sessions)

	w := postLogin(t, router, "/api/v1/auth/login?from=%2FmyBookings")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), entity.AuthCodeInvalidCredentials)
}

func TestOAuthLoginReturnsToFrom(t *testing.T) {
	sessions := &stubSessions{
		identity: &entity.Identity{Email: "user@example.com"},
		sessions: map[string]*entity.Session{},
	}
	router := authRouter(sessions)

	body := strings.NewReader(`{"code": "consent-code"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/oauth/google?from=%2Fcreate-event", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/create-event"`)
}
