package entity

import (
	"time"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
)

// EventTypes is the closed set of disciplines an event may belong to.
var EventTypes = []string{
	"Swimming",
	"Sprinting",
	"Long Jump",
	"High Jump",
	"Hurdle Race",
}

func IsValidEventType(t string) bool {
	for _, known := range EventTypes {
		if known == t {
			return true
		}
	}
	return false
}

type Event struct {
	ID           string      `json:"_id"`
	EventName    string      `json:"eventName"`
	EventType    string      `json:"eventType"`
	EventDate    CustomDate  `json:"eventDate"`
	Description  string      `json:"description"`
	PictureURL   string      `json:"pictureUrl"`
	CreatorEmail string      `json:"creatorEmail"`
	CreatorName  string      `json:"creatorName"`
	Status       EventStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt,omitempty"`
}

// IsPast reports whether the event date has already gone by.
func (e *Event) IsPast(now time.Time) bool {
	return e.EventDate.Before(now)
}

// OwnedBy is a display affordance only; real authorization is the
// remote API's job.
func (e *Event) OwnedBy(email string) bool {
	return email != "" && e.CreatorEmail == email
}
