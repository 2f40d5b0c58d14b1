package service

import (
	"context"
	"fmt"
	"time"

	"github.com/athletichub/athletichub/internal/entity"
)

// EventForm carries the create/update event form. The same rules apply on
// both paths: all fields required, well-formed picture URL, date strictly in
// the future, type drawn from the known set.
type EventForm struct {
	EventName   string `json:"eventName"`
	EventType   string `json:"eventType"`
	EventDate   string `json:"eventDate"`
	Description string `json:"description"`
	PictureURL  string `json:"pictureUrl"`
}

func (f *EventForm) Validate(now time.Time) error {
	verr := entity.NewValidationError()

	if f.EventName == "" {
		verr.Add("eventName", "This field is required")
	}
	if f.EventType == "" {
		verr.Add("eventType", "This field is required")
	} else if !entity.IsValidEventType(f.EventType) {
		verr.Add("eventType", "Unknown event type")
	}
	if f.Description == "" {
		verr.Add("description", "This field is required")
	}
	if f.PictureURL == "" {
		verr.Add("pictureUrl", "This field is required")
	} else if !validURL(f.PictureURL) {
		verr.Add("pictureUrl", "Please enter a valid URL")
	}
	if f.EventDate == "" {
		verr.Add("eventDate", "This field is required")
	} else {
		date, err := entity.ParseCustomDate(f.EventDate)
		if err != nil {
			verr.Add("eventDate", "Invalid date")
		} else if !date.After(now) {
			verr.Add("eventDate", "Event date must be in the future")
		}
	}

	return verr.ErrOrNil()
}

type eventService struct {
	events EventsAPI
}

func NewEventService(events EventsAPI) EventService {
	return &eventService{events: events}
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEventsByCreator(ctx context.Context, token, email string) ([]*entity.Event, error) {
	events, err := s.events.ListEventsByCreator(ctx, token, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for %s: %w", email, err)
	}
	return events, nil
}

func (s *eventService) CreateEvent(ctx context.Context, token string, identity *entity.Identity, form *EventForm) (*entity.Event, error) {
	if err := form.Validate(time.Now()); err != nil {
		return nil, err
	}

	date, _ := entity.ParseCustomDate(form.EventDate)
	creatorName := identity.DisplayName
	if creatorName == "" {
		creatorName = "Anonymous"
	}

	event := &entity.Event{
		EventName:    form.EventName,
		EventType:    form.EventType,
		EventDate:    date,
		Description:  form.Description,
		PictureURL:   form.PictureURL,
		CreatorEmail: identity.Email,
		CreatorName:  creatorName,
		Status:       entity.EventStatusUpcoming,
		CreatedAt:    time.Now(),
	}

	created, err := s.events.CreateEvent(ctx, token, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, token string, identity *entity.Identity, id string, form *EventForm) (*entity.Event, error) {
	if err := form.Validate(time.Now()); err != nil {
		return nil, err
	}

	existing, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	// Affordance-level check only; the remote API owns the real boundary.
	if !existing.OwnedBy(identity.Email) {
		return nil, entity.ErrNotCreator
	}

	date, _ := entity.ParseCustomDate(form.EventDate)
	existing.EventName = form.EventName
	existing.EventType = form.EventType
	existing.EventDate = date
	existing.Description = form.Description
	existing.PictureURL = form.PictureURL

	updated, err := s.events.UpdateEvent(ctx, token, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, token string, identity *entity.Identity, id string) error {
	existing, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if !existing.OwnedBy(identity.Email) {
		return entity.ErrNotCreator
	}

	if err := s.events.DeleteEvent(ctx, token, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// CanManage drives the "manage this event" affordance only. It is not a
// security boundary; enforcement belongs to the remote API.
func (s *eventService) CanManage(viewerEmail string, event *entity.Event) bool {
	return event.OwnedBy(viewerEmail)
}
