package service

import (
	"context"
	"sync"
	"time"

	"github.com/athletichub/athletichub/internal/database"
	"github.com/athletichub/athletichub/internal/entity"
	"github.com/athletichub/athletichub/pkg/idp"

	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// RegisterRequest carries the registration form. Validation runs before any
// network call; failures surface inline next to the offending field.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhotoURL        string `json:"photoURL"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r *RegisterRequest) Validate() error {
	verr := entity.NewValidationError()

	if r.Name == "" {
		verr.Add("name", "This field is required")
	}
	if r.Email == "" {
		verr.Add("email", "This field is required")
	}
	if r.Password == "" {
		verr.Add("password", "This field is required")
	} else if !validPassword(r.Password) {
		verr.Add("password", "Password must be at least 6 characters long and include uppercase and lowercase letters")
	}
	if r.ConfirmPassword == "" {
		verr.Add("confirmPassword", "This field is required")
	} else if r.Password != "" && r.Password != r.ConfirmPassword {
		verr.Add("confirmPassword", "Passwords do not match")
	}
	if r.PhotoURL != "" && !validURL(r.PhotoURL) {
		verr.Add("photoURL", "Please enter a valid URL")
	}

	return verr.ErrOrNil()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	verr := entity.NewValidationError()
	if r.Email == "" {
		verr.Add("email", "This field is required")
	}
	if r.Password == "" {
		verr.Add("password", "This field is required")
	}
	return verr.ErrOrNil()
}

// sessionState is one tracked session plus the identity token needed for
// provider-side sign-out and profile updates.
type sessionState struct {
	session *entity.Session
	idToken string
}

type sessionService struct {
	provider  IdentityProvider
	exchanger TokenExchanger
	tokenRepo database.TokenRepository
	tokenTTL  time.Duration

	mu       sync.RWMutex
	sessions map[string]*sessionState

	readyOnce sync.Once
	ready     chan struct{}
}

func NewSessionService(
	provider IdentityProvider,
	exchanger TokenExchanger,
	tokenRepo database.TokenRepository,
	tokenTTL time.Duration,
) SessionService {
	return &sessionService{
		provider:  provider,
		exchanger: exchanger,
		tokenRepo: tokenRepo,
		tokenTTL:  tokenTTL,
		sessions:  make(map[string]*sessionState),
		ready:     make(chan struct{}),
	}
}

// Start attaches the single stream subscription. All store mutations happen
// on the subscription goroutine plus the explicit action calls; one mutex
// covers both paths.
func (s *sessionService) Start(ctx context.Context) {
	go func() {
		s.markReady()
		if err := s.provider.Subscribe(ctx, s.onAuthChange); err != nil && ctx.Err() == nil {
			logrus.Errorf("auth state subscription terminated: %v", err)
		}
	}()
}

func (s *sessionService) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// WaitReady blocks until the store has resolved its first value. The route
// guard reports LOADING while this has not returned.
func (s *sessionService) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// onAuthChange handles every provider-pushed transition: login, logout,
// token refresh. A present identity is exchanged for an application session
// token and persisted; an absent identity (or a failed exchange) removes the
// persisted token.
func (s *sessionService) onAuthChange(ctx context.Context, change idp.StateChange) {
	if change.Identity == nil {
		s.clearSession(ctx, change.SessionID)
		return
	}

	token, err := s.exchanger.ExchangeToken(ctx, change.IDToken, change.Identity.Email)
	if err != nil {
		logrus.Errorf("session token exchange failed for %s: %v", change.Identity.Email, err)
		if delErr := s.tokenRepo.Delete(ctx, change.SessionID); delErr != nil {
			logrus.Errorf("failed to remove stale session token: %v", delErr)
		}
		token = ""
	} else if err := s.tokenRepo.Save(ctx, change.SessionID, token, s.tokenTTL); err != nil {
		logrus.Errorf("failed to persist session token: %v", err)
	}

	s.mu.Lock()
	s.sessions[change.SessionID] = &sessionState{
		session: &entity.Session{
			ID:        change.SessionID,
			Identity:  change.Identity,
			Token:     token,
			CreatedAt: time.Now(),
		},
		idToken: change.IDToken,
	}
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"session": change.SessionID,
		"email":   change.Identity.Email,
	}).Info("Session established")
}

func (s *sessionService) clearSession(ctx context.Context, sessionID string) {
	if err := s.tokenRepo.Delete(ctx, sessionID); err != nil {
		logrus.Errorf("failed to remove session token: %v", err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// trackCredentials records the signed-in identity synchronously so callers
// observe the session immediately; the stream handler completes it with the
// exchanged application token afterwards.
func (s *sessionService) trackCredentials(sessionID string, creds *idp.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &sessionState{
		session: &entity.Session{
			ID:        sessionID,
			Identity:  creds.Identity,
			CreatedAt: time.Now(),
		},
		idToken: creds.IDToken,
	}
}

func (s *sessionService) RegisterUser(ctx context.Context, sessionID, email, password string) error {
	creds, err := s.provider.SignUp(ctx, sessionID, email, password)
	if err != nil {
		return err
	}
	s.trackCredentials(sessionID, creds)
	return nil
}

func (s *sessionService) LoginUser(ctx context.Context, sessionID, email, password string) error {
	creds, err := s.provider.SignInWithPassword(ctx, sessionID, email, password)
	if err != nil {
		return err
	}
	s.trackCredentials(sessionID, creds)
	return nil
}

func (s *sessionService) LoginWithGoogle(ctx context.Context, sessionID, code string) error {
	creds, err := s.provider.SignInWithProvider(ctx, sessionID, idp.ProviderGoogle, code)
	if err != nil {
		return err
	}
	s.trackCredentials(sessionID, creds)
	return nil
}

func (s *sessionService) LoginWithGithub(ctx context.Context, sessionID, code string) error {
	creds, err := s.provider.SignInWithProvider(ctx, sessionID, idp.ProviderGithub, code)
	if err != nil {
		return err
	}
	s.trackCredentials(sessionID, creds)
	return nil
}

// LogoutUser always succeeds from the caller's perspective; provider and
// storage errors are logged, not propagated.
func (s *sessionService) LogoutUser(ctx context.Context, sessionID string) {
	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if ok {
		if err := s.provider.SignOut(ctx, sessionID, state.idToken); err != nil {
			logrus.Errorf("provider sign-out failed: %v", err)
		}
		// The provider pushes the signed-out change, but clear eagerly so the
		// guard re-transitions immediately.
	}
	s.clearSession(ctx, sessionID)
}

func (s *sessionService) UpdateUserProfile(ctx context.Context, sessionID, name, photoURL string) (*entity.Identity, error) {
	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, &entity.AuthError{Code: entity.AuthCodeNoSession, Message: "no active session"}
	}

	identity, err := s.provider.UpdateProfile(ctx, sessionID, state.idToken, name, photoURL)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if current, ok := s.sessions[sessionID]; ok {
		current.session.Identity = identity
	}
	s.mu.Unlock()
	return identity, nil
}

func (s *sessionService) Current(sessionID string) (*entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return state.session, true
}

// Token prefers the in-memory copy and falls back to the persisted one, so a
// restarted process can still serve sessions whose token survived in redis.
func (s *sessionService) Token(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if ok && state.session.Token != "" {
		return state.session.Token, nil
	}
	return s.tokenRepo.Get(ctx, sessionID)
}

// RevokeExpired drops sessions whose application token has passed its exp
// claim. Returns the number of sessions revoked.
func (s *sessionService) RevokeExpired(ctx context.Context) int {
	s.mu.RLock()
	expired := make([]string, 0)
	now := time.Now()
	for id, state := range s.sessions {
		if state.session.Token == "" {
			continue
		}
		if exp, ok := tokenExpiry(state.session.Token); ok && exp.Before(now) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range expired {
		logrus.WithField("session", id).Info("Revoking expired session")
		s.clearSession(ctx, id)
	}
	return len(expired)
}

// tokenExpiry reads the exp claim without verifying the signature; the
// remote API holds the signing secret, this application only schedules
// cleanup from it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
