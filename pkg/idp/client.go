// Package idp wraps the external identity provider: email/password
// registration and sign-in, OAuth code exchange, profile updates, sign-out,
// and the push-based auth state-change stream the session store subscribes to.
package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/athletichub/athletichub/internal/entity"
)

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGithub Provider = "github"
)

// Credentials is what the identity service hands back on a successful
// sign-up or sign-in. The IDToken is later exchanged for an application
// session token.
type Credentials struct {
	Identity *entity.Identity
	IDToken  string
}

// StateChange is one entry on the auth state-change stream. A nil Identity
// means the session signed out.
type StateChange struct {
	SessionID string
	Identity  *entity.Identity
	IDToken   string
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	changes chan StateChange
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		changes:    make(chan StateChange, 64),
	}
}

type accountResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
	IDToken     string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp registers a new email/password account. The caller's session starts
// receiving state changes once this succeeds.
func (c *Client) SignUp(ctx context.Context, sessionID, email, password string) (*Credentials, error) {
	creds, err := c.post(ctx, "/v1/accounts:signUp", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.publish(sessionID, creds)
	return creds, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, sessionID, email, password string) (*Credentials, error) {
	creds, err := c.post(ctx, "/v1/accounts:signInWithPassword", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.publish(sessionID, creds)
	return creds, nil
}

// SignInWithProvider completes an OAuth sign-in using the code returned by
// the provider's consent screen. A cancelled consent surfaces as an
// AuthError with the POPUP_CLOSED code.
func (c *Client) SignInWithProvider(ctx context.Context, sessionID string, provider Provider, code string) (*Credentials, error) {
	creds, err := c.post(ctx, "/v1/accounts:signInWithIdp", map[string]string{
		"providerId": string(provider),
		"code":       code,
	})
	if err != nil {
		return nil, err
	}
	c.publish(sessionID, creds)
	return creds, nil
}

// UpdateProfile sets the display metadata of the identity behind idToken.
func (c *Client) UpdateProfile(ctx context.Context, sessionID, idToken, displayName, photoURL string) (*entity.Identity, error) {
	creds, err := c.post(ctx, "/v1/accounts:update", map[string]string{
		"idToken":     idToken,
		"displayName": displayName,
		"photoUrl":    photoURL,
	})
	if err != nil {
		return nil, err
	}
	// Profile updates re-emit the refreshed identity on the stream.
	c.publish(sessionID, creds)
	return creds.Identity, nil
}

// SignOut revokes the provider session and pushes a signed-out state change.
func (c *Client) SignOut(ctx context.Context, sessionID, idToken string) error {
	_, err := c.post(ctx, "/v1/accounts:signOut", map[string]string{
		"idToken": idToken,
	})
	c.changes <- StateChange{SessionID: sessionID}
	return err
}

func (c *Client) post(ctx context.Context, path string, payload map[string]string) (*Credentials, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s?key=%s", c.baseURL, path, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &entity.AuthError{Code: entity.AuthCodeNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Error.Code == "" {
			return nil, &entity.AuthError{
				Code:    entity.AuthCodeNetwork,
				Message: fmt.Sprintf("identity service error: %s", resp.Status),
			}
		}
		return nil, &entity.AuthError{Code: errResp.Error.Code, Message: errResp.Error.Message}
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, &entity.AuthError{Code: entity.AuthCodeNetwork, Message: err.Error()}
	}

	return &Credentials{
		Identity: &entity.Identity{
			UID:         account.LocalID,
			Email:       account.Email,
			DisplayName: account.DisplayName,
			PhotoURL:    account.PhotoURL,
		},
		IDToken: account.IDToken,
	}, nil
}

func (c *Client) publish(sessionID string, creds *Credentials) {
	c.changes <- StateChange{
		SessionID: sessionID,
		Identity:  creds.Identity,
		IDToken:   creds.IDToken,
	}
}

// Subscribe delivers every auth state transition to handler until ctx is
// cancelled. There is exactly one subscriber: the session store attaches at
// application start.
func (c *Client) Subscribe(ctx context.Context, handler func(context.Context, StateChange)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change := <-c.changes:
			handler(ctx, change)
		}
	}
}
