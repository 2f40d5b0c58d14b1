package service

import (
	"context"
	"fmt"

	"github.com/athletichub/athletichub/internal/entity"
)

type hubService struct {
	hubs HubsAPI
}

func NewHubService(hubs HubsAPI) HubService {
	return &hubService{hubs: hubs}
}

func (s *hubService) GetAllHubs(ctx context.Context) ([]*entity.Hub, error) {
	hubs, err := s.hubs.ListHubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all hubs: %w", err)
	}
	return hubs, nil
}

func (s *hubService) GetHub(ctx context.Context, token, id string) (*entity.Hub, error) {
	hub, err := s.hubs.GetHub(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return hub, nil
}
