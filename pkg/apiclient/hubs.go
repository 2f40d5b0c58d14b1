package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/athletichub/athletichub/internal/entity"
)

func (c *Client) ListHubs(ctx context.Context) ([]*entity.Hub, error) {
	var hubs []*entity.Hub
	if err := c.do(ctx, http.MethodGet, "/hubs", "", nil, nil, &hubs); err != nil {
		return nil, err
	}
	return hubs, nil
}

func (c *Client) GetHub(ctx context.Context, token, id string) (*entity.Hub, error) {
	var hub entity.Hub
	if err := c.do(ctx, http.MethodGet, "/hubs/"+url.PathEscape(id), token, nil, nil, &hub); err != nil {
		if nf, ok := err.(*entity.NotFoundError); ok {
			nf.Resource, nf.ID = "hub", id
		}
		return nil, err
	}
	return &hub, nil
}
