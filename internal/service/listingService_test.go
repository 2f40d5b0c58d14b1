package service

import (
	"context"
	"errors"
	"testing"

	"github.com/athletichub/athletichub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSearch covers the mixed list page: both datasets fetched, hubs listed
// first, and the term filter recomputed over name, category, description and
// location.
func TestSearch(t *testing.T) {
	events := []*entity.Event{
		{ID: "evt-1", EventName: "Morning Swim Meet", EventType: "Swimming"},
		{ID: "evt-2", EventName: "Spring Sprint", EventType: "Sprinting", Description: "100m heats"},
	}
	hubs := []*entity.Hub{
		{ID: "hub-1", Title: "City Pool", Category: "Swimming", Location: "Downtown"},
		{ID: "hub-2", Title: "Track Arena", Category: "Athletics", Location: "Riverside"},
	}

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{
			name:    "empty term returns everything hubs first",
			term:    "",
			wantIDs: []string{"hub-1", "hub-2", "evt-1", "evt-2"},
		},
		{
			name:    "term matches across kinds case-insensitively",
			term:    "swim",
			wantIDs: []string{"hub-1", "evt-1"},
		},
		{
			name:    "term matches location",
			term:    "riverside",
			wantIDs: []string{"hub-2"},
		},
		{
			name:    "term matches description",
			term:    "100m",
			wantIDs: []string{"evt-2"},
		},
		{
			name:    "no matches",
			term:    "marathon",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewListingService(
				&fakeEventsAPI{events: events},
				&fakeHubsAPI{hubs: hubs},
			)

			listings, err := svc.Search(context.Background(), tt.term)
			require.NoError(t, err)

			gotIDs := make([]string, 0, len(listings))
			for _, l := range listings {
				gotIDs = append(gotIDs, l.ID())
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

// TestSearchFetchFailure checks that either fetch failing fails the whole
// page rather than rendering partial content.
func TestSearchFetchFailure(t *testing.T) {
	t.Run("events fetch fails", func(t *testing.T) {
		svc := NewListingService(
			&fakeEventsAPI{listErr: errors.New("boom")},
			&fakeHubsAPI{hubs: []*entity.Hub{{ID: "hub-1"}}},
		)
		_, err := svc.Search(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("hubs fetch fails", func(t *testing.T) {
		svc := NewListingService(
			&fakeEventsAPI{events: []*entity.Event{{ID: "evt-1"}}},
			&fakeHubsAPI{listErr: errors.New("boom")},
		)
		_, err := svc.Search(context.Background(), "")
		assert.Error(t, err)
	})
}
