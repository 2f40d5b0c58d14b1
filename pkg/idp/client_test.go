package idp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/athletichub/athletichub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdpClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, "test-key", 5*time.Second), server
}

func collectChanges(ctx context.Context, c *Client, out chan<- StateChange) {
	go c.Subscribe(ctx, func(_ context.Context, change StateChange) {
		out <- change
	})
}

func TestSignUp(t *testing.T) {
	client, server := newTestIdpClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signUp", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{
			"localId": "uid-1",
			"email": "user@example.com",
			"displayName": "Runner",
			"idToken": "id-token-1"
		}`))
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan StateChange, 1)
	collectChanges(ctx, client, changes)

	creds, err := client.SignUp(ctx, "sid-1", "user@example.com", "Secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", creds.Identity.UID)
	assert.Equal(t, "id-token-1", creds.IDToken)

	// The sign-up is also pushed on the state-change stream.
	select {
	case change := <-changes:
		assert.Equal(t, "sid-1", change.SessionID)
		require.NotNil(t, change.Identity)
		assert.Equal(t, "user@example.com", change.Identity.Email)
	case <-time.After(time.Second):
		t.Fatal("no state change delivered")
	}
}

// TestSignInErrorMapping checks that provider error codes come through as
// AuthError so the forms can show the right message.
func TestSignInErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{
			name:     "invalid credentials",
			status:   http.StatusBadRequest,
			body:     `{"error": {"code": "INVALID_CREDENTIALS", "message": "wrong password"}}`,
			wantCode: entity.AuthCodeInvalidCredentials,
		},
		{
			name:     "email exists",
			status:   http.StatusBadRequest,
			body:     `{"error": {"code": "EMAIL_EXISTS", "message": "email taken"}}`,
			wantCode: entity.AuthCodeEmailExists,
		},
		{
			name:     "unstructured failure",
			status:   http.StatusBadGateway,
			body:     `upstream timeout`,
			wantCode: entity.AuthCodeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestIdpClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer server.Close()

			_, err := client.SignInWithPassword(context.Background(), "sid-1", "user@example.com", "wrong")

			var aerr *entity.AuthError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, tt.wantCode, aerr.Code)
		})
	}
}

func TestSignOutPushesSignedOutChange(t *testing.T) {
	client, server := newTestIdpClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan StateChange, 1)
	collectChanges(ctx, client, changes)

	require.NoError(t, client.SignOut(ctx, "sid-1", "id-token"))

	select {
	case change := <-changes:
		assert.Equal(t, "sid-1", change.SessionID)
		assert.Nil(t, change.Identity)
	case <-time.After(time.Second):
		t.Fatal("no state change delivered")
	}
}

func TestSubscribeStopsOnCancel(t *testing.T) {
	client := NewClient("http://localhost", "test-key", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- client.Subscribe(ctx, func(context.Context, StateChange) {})
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("subscribe did not stop")
	}
}
