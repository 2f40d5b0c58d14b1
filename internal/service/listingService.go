package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/athletichub/athletichub/internal/entity"
)

type listingService struct {
	events EventsAPI
	hubs   HubsAPI
}

func NewListingService(events EventsAPI, hubs HubsAPI) ListingService {
	return &listingService{events: events, hubs: hubs}
}

// Search fetches events and hubs concurrently, waits for both, and filters
// the merged dataset by term. Hubs come first, matching the page layout.
// Either fetch failing fails the whole page; the list view shows a
// persistent error rather than partial content.
func (s *listingService) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	var (
		wg        sync.WaitGroup
		events    []*entity.Event
		hubs      []*entity.Hub
		eventsErr error
		hubsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		events, eventsErr = s.events.ListEvents(ctx)
	}()
	go func() {
		defer wg.Done()
		hubs, hubsErr = s.hubs.ListHubs(ctx)
	}()
	wg.Wait()

	if eventsErr != nil {
		return nil, fmt.Errorf("failed to load events: %w", eventsErr)
	}
	if hubsErr != nil {
		return nil, fmt.Errorf("failed to load hubs: %w", hubsErr)
	}

	listings := make([]entity.Listing, 0, len(events)+len(hubs))
	for _, h := range hubs {
		if l := entity.HubListing(h); l.Matches(term) {
			listings = append(listings, l)
		}
	}
	for _, e := range events {
		if l := entity.EventListing(e); l.Matches(term) {
			listings = append(listings, l)
		}
	}
	return listings, nil
}
