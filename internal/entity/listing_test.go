package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestListingMatches checks the search predicate over both union variants:
// case-insensitive substring across name, category, description, location.
func TestListingMatches(t *testing.T) {
	event := EventListing(&Event{
		EventName:   "Morning Swim Meet",
		EventType:   "Swimming",
		Description: "50m freestyle heats",
	})
	hub := HubListing(&Hub{
		Title:       "Track Arena",
		Category:    "Athletics",
		Location:    "Riverside",
		Description: "Outdoor track",
	})

	tests := []struct {
		name    string
		listing Listing
		term    string
		want    bool
	}{
		{
			name:    "empty term matches",
			listing: event,
			term:    "",
			want:    true,
		},
		{
			name:    "whitespace-only term matches",
			listing: hub,
			term:    "   ",
			want:    true,
		},
		{
			name:    "event name case-insensitive",
			listing: event,
			term:    "swim",
			want:    true,
		},
		{
			name:    "event description",
			listing: event,
			term:    "freestyle",
			want:    true,
		},
		{
			name:    "hub location",
			listing: hub,
			term:    "riverside",
			want:    true,
		},
		{
			name:    "hub category",
			listing: hub,
			term:    "ATHLETICS",
			want:    true,
		},
		{
			name:    "no match",
			listing: event,
			term:    "marathon",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.listing.Matches(tt.term))
		})
	}
}

func TestListingAccessors(t *testing.T) {
	event := EventListing(&Event{
		ID:         "evt-1",
		EventName:  "Spring Sprint",
		EventType:  "Sprinting",
		PictureURL: "https://example.com/sprint.png",
	})
	hub := HubListing(&Hub{
		ID:       "hub-1",
		Title:    "City Pool",
		Category: "Swimming",
		Location: "Downtown",
		Image:    "https://example.com/pool.png",
	})

	assert.Equal(t, "evt-1", event.ID())
	assert.Equal(t, "Spring Sprint", event.Name())
	assert.Equal(t, "Sprinting", event.Category())
	assert.Empty(t, event.Location())

	assert.Equal(t, "hub-1", hub.ID())
	assert.Equal(t, "City Pool", hub.Name())
	assert.Equal(t, "Downtown", hub.Location())
	assert.Equal(t, "https://example.com/pool.png", hub.Image())
}

// The JSON shape carries a kind discriminator next to the flattened payload.
func TestListingMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(EventListing(&Event{ID: "evt-1", EventName: "Spring Sprint"}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "event", decoded["kind"])
	assert.Equal(t, "evt-1", decoded["_id"])

	raw, err = json.Marshal(HubListing(&Hub{ID: "hub-1", Title: "City Pool"}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "hub", decoded["kind"])
}
