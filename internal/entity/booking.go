package entity

import (
	"time"
)

type Booking struct {
	ID        string     `json:"_id"`
	UserEmail string     `json:"userEmail"`
	EventID   string     `json:"eventId"`
	EventName string     `json:"eventName"`
	EventDate CustomDate `json:"eventDate"`
	Location  string     `json:"location"`
	BookedAt  time.Time  `json:"bookedAt"`
}

// DedupeBookings keeps the first booking per event id, preserving order.
// The remote API may hold duplicates created by the known check-then-create
// race across concurrent sessions.
func DedupeBookings(bookings []*Booking) []*Booking {
	seen := make(map[string]struct{}, len(bookings))
	out := bookings[:0]
	for _, b := range bookings {
		if _, ok := seen[b.EventID]; ok {
			continue
		}
		seen[b.EventID] = struct{}{}
		out = append(out, b)
	}
	return out
}
