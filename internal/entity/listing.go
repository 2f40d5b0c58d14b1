package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ListingKind string

const (
	ListingKindEvent ListingKind = "event"
	ListingKindHub   ListingKind = "hub"
)

// Listing is the tagged union rendered on mixed event/hub list pages.
// Exactly one of Event or Hub is set, according to Kind.
type Listing struct {
	Kind  ListingKind
	Event *Event
	Hub   *Hub
}

func EventListing(e *Event) Listing {
	return Listing{Kind: ListingKindEvent, Event: e}
}

func HubListing(h *Hub) Listing {
	return Listing{Kind: ListingKindHub, Hub: h}
}

func (l Listing) ID() string {
	switch l.Kind {
	case ListingKindEvent:
		return l.Event.ID
	case ListingKindHub:
		return l.Hub.ID
	}
	return ""
}

func (l Listing) Name() string {
	switch l.Kind {
	case ListingKindEvent:
		return l.Event.EventName
	case ListingKindHub:
		return l.Hub.Title
	}
	return ""
}

func (l Listing) Category() string {
	switch l.Kind {
	case ListingKindEvent:
		return l.Event.EventType
	case ListingKindHub:
		return l.Hub.Category
	}
	return ""
}

func (l Listing) Description() string {
	switch l.Kind {
	case ListingKindEvent:
		return l.Event.Description
	case ListingKindHub:
		return l.Hub.Description
	}
	return ""
}

func (l Listing) Location() string {
	if l.Kind == ListingKindHub {
		return l.Hub.Location
	}
	return ""
}

func (l Listing) Date() CustomDate {
	switch l.Kind {
	case ListingKindEvent:
		return l.Event.EventDate
	case ListingKindHub:
		return l.Hub.Date
	}
	return CustomDate{}
}

func (l Listing) Image() string {
	switch l.Kind {
	case ListingKindEvent:
		return l.Event.PictureURL
	case ListingKindHub:
		return l.Hub.Image
	}
	return ""
}

// Matches reports whether any of the listing's searchable text fields
// contains term, case-insensitive. An empty term matches everything.
func (l Listing) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{l.Name(), l.Category(), l.Description(), l.Location()} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (l Listing) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case ListingKindEvent:
		return json.Marshal(struct {
			Kind ListingKind `json:"kind"`
			*Event
		}{l.Kind, l.Event})
	case ListingKindHub:
		return json.Marshal(struct {
			Kind ListingKind `json:"kind"`
			*Hub
		}{l.Kind, l.Hub})
	}
	return nil, fmt.Errorf("unknown listing kind %q", l.Kind)
}
