package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/athletichub/athletichub/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessionStore is a minimal in-memory session store for guard tests.
type stubSessionStore struct {
	ready    bool
	sessions map[string]*entity.Session
}

func (s *stubSessionStore) Start(ctx context.Context) {}

func (s *stubSessionStore) WaitReady(ctx context.Context) error {
	if s.ready {
		return nil
	}
	return context.DeadlineExceeded
}

func (s *stubSessionStore) RegisterUser(ctx context.Context, sessionID, email, password string) error {
	return nil
}
func (s *stubSessionStore) LoginUser(ctx context.Context, sessionID, email, password string) error {
	return nil
}
func (s *stubSessionStore) LoginWithGoogle(ctx context.Context, sessionID, code string) error {
	return nil
}
func (s *stubSessionStore) LoginWithGithub(ctx context.Context, sessionID, code string) error {
	return nil
}
func (s *stubSessionStore) LogoutUser(ctx context.Context, sessionID string) {
	delete(s.sessions, sessionID)
}
func (s *stubSessionStore) UpdateUserProfile(ctx context.Context, sessionID, name, photoURL string) (*entity.Identity, error) {
	return nil, nil
}

func (s *stubSessionStore) Current(sessionID string) (*entity.Session, bool) {
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

func (s *stubSessionStore) Token(ctx context.Context, sessionID string) (string, error) {
	return "", entity.ErrNoSession
}

func (s *stubSessionStore) RevokeExpired(ctx context.Context) int { return 0 }

func guardedRouter(store *stubSessionStore, sessionID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(CtxSessionID, sessionID)
	})

	ok := func(c *gin.Context) {
		identity, _ := c.Get(CtxIdentity)
		c.JSON(http.StatusOK, gin.H{"email": identity.(*entity.Identity).Email})
	}
	router.GET("/myBookings", RequireSession(store), ok)
	router.GET("/api/v1/bookings", RequireSession(store), ok)
	return router
}

// TestRequireSessionStates walks the guard through its three observable
// states: waiting on the store, authorized, and redirected to login.
func TestRequireSessionStates(t *testing.T) {
	identity := &entity.Identity{UID: "uid-1", Email: "user@example.com"}

	t.Run("store not ready", func(t *testing.T) {
		store := &stubSessionStore{ready: false, sessions: map[string]*entity.Session{}}
		router := guardedRouter(store, "sid-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/myBookings", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("authorized session passes with identity attached", func(t *testing.T) {
		store := &stubSessionStore{
			ready: true,
			sessions: map[string]*entity.Session{
				"sid-1": {ID: "sid-1", Identity: identity},
			},
		}
		router := guardedRouter(store, "sid-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/myBookings", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user@example.com")
	})

	t.Run("anonymous page request redirects with original path", func(t *testing.T) {
		store := &stubSessionStore{ready: true, sessions: map[string]*entity.Session{}}
		router := guardedRouter(store, "sid-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/myBookings", nil))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?from=%2FmyBookings", w.Header().Get("Location"))
	})

	t.Run("anonymous api request gets 401 json", func(t *testing.T) {
		store := &stubSessionStore{ready: true, sessions: map[string]*entity.Session{}}
		router := guardedRouter(store, "sid-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authentication required")
	})
}

// TestRequireSessionReevaluates checks that a logout locks protected paths
// again on the very next request.
func TestRequireSessionReevaluates(t *testing.T) {
	store := &stubSessionStore{
		ready: true,
		sessions: map[string]*entity.Session{
			"sid-1": {ID: "sid-1", Identity: &entity.Identity{Email: "user@example.com"}},
		},
	}
	router := guardedRouter(store, "sid-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/myBookings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	store.LogoutUser(context.Background(), "sid-1")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/myBookings", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
