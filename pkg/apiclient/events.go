package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/athletichub/athletichub/internal/entity"
)

func (c *Client) ListEvents(ctx context.Context) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := c.do(ctx, http.MethodGet, "/events", "", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), "", nil, nil, &event); err != nil {
		if nf, ok := err.(*entity.NotFoundError); ok {
			nf.Resource, nf.ID = "event", id
		}
		return nil, err
	}
	return &event, nil
}

func (c *Client) ListEventsByCreator(ctx context.Context, token, email string) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := c.do(ctx, http.MethodGet, "/events/user/"+url.PathEscape(email), token, nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, token string, event *entity.Event) (*entity.Event, error) {
	var created entity.Event
	if err := c.do(ctx, http.MethodPost, "/events", token, nil, event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEvent(ctx context.Context, token string, event *entity.Event) (*entity.Event, error) {
	var updated entity.Event
	if err := c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(event.ID), token, nil, event, &updated); err != nil {
		if nf, ok := err.(*entity.NotFoundError); ok {
			nf.Resource, nf.ID = "event", event.ID
		}
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEvent(ctx context.Context, token, id string) error {
	err := c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), token, nil, nil, nil)
	if nf, ok := err.(*entity.NotFoundError); ok {
		nf.Resource, nf.ID = "event", id
	}
	return err
}
