// Package apiclient is the typed HTTP client for the remote REST API that
// owns events, hubs and bookings. All durable state lives behind it; this
// application only fetches, derives and renders.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/athletichub/athletichub/internal/entity"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope is the remote API's standard response wrapper. Some endpoints
// return the payload bare; the wrapper is recognized by the success key, a
// nil Success means there was no envelope and the raw body is used. Failure
// envelopes may omit data entirely.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &entity.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &entity.NotFoundError{Resource: path, ID: ""}
	}
	if resp.StatusCode >= 400 {
		return &entity.NetworkError{
			Op:  method + " " + path,
			Err: fmt.Errorf("remote API responded %s", resp.Status),
		}
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &entity.NetworkError{Op: method + " " + path, Err: err}
	}

	// Unwrap the {success, data} envelope when present. An unsuccessful
	// envelope is a miss even when it carries no data key.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil {
		if !*env.Success {
			return &entity.NotFoundError{Resource: path, ID: ""}
		}
		if env.Data != nil {
			raw = env.Data
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &entity.NetworkError{Op: method + " " + path, Err: err}
	}
	return nil
}
