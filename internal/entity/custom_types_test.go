package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCustomDateUnmarshal covers the two wire formats the remote API stores:
// plain days and full RFC3339 timestamps.
func TestCustomDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain day",
			raw:  `"2026-04-01"`,
			want: "2026-04-01",
		},
		{
			name: "rfc3339 timestamp",
			raw:  `"2026-04-01T15:04:05Z"`,
			want: "2026-04-01",
		},
		{
			name: "null leaves zero value",
			raw:  `null`,
			want: "0001-01-01",
		},
		{
			name: "empty string leaves zero value",
			raw:  `""`,
			want: "0001-01-01",
		},
		{
			name:    "garbage rejected",
			raw:     `"01/04/2026"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cd CustomDate
			err := json.Unmarshal([]byte(tt.raw), &cd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cd.String())
		})
	}
}

func TestCustomDateMarshal(t *testing.T) {
	cd := NewCustomDate(time.Date(2026, 4, 1, 15, 4, 5, 0, time.UTC))
	raw, err := json.Marshal(cd)
	require.NoError(t, err)
	assert.Equal(t, `"2026-04-01"`, string(raw))
}

func TestEventIsPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	past := &Event{EventDate: NewCustomDate(now.AddDate(0, 0, -1))}
	future := &Event{EventDate: NewCustomDate(now.AddDate(0, 0, 1))}

	assert.True(t, past.IsPast(now))
	assert.False(t, future.IsPast(now))
}

func TestDedupeBookings(t *testing.T) {
	bookings := []*Booking{
		{ID: "bkg-1", EventID: "evt-1"},
		{ID: "bkg-2", EventID: "evt-1"},
		{ID: "bkg-3", EventID: "evt-2"},
	}

	deduped := DedupeBookings(bookings)

	require.Len(t, deduped, 2)
	assert.Equal(t, "bkg-1", deduped[0].ID)
	assert.Equal(t, "bkg-3", deduped[1].ID)
}
