package services

import (
	"context"
	"fmt"

	"github.com/uuzor/mocalake/cache"
	"github.com/uuzor/mocalake/internal/status"
	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/storage"
)

type EventService struct {
	store storage.Storage
	cache *cache.EventCache
}

// NewEventService accepts a nil cache; listings then always hit the store.
func NewEventService(store storage.Storage, eventCache *cache.EventCache) *EventService {
	return &EventService{store: store, cache: eventCache}
}

func (s *EventService) Create(ctx context.Context, in models.InsertEvent) (*models.Event, error) {
	if err := validateInsertEvent(in); err != nil {
		return nil, err
	}
	event, err := s.store.CreateEvent(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	if events, ok := s.cache.GetEvents(ctx); ok {
		return events, nil
	}
	events, err := s.store.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetEvents(ctx, events)
	return events, nil
}

func (s *EventService) Update(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error) {
	if upd.TicketPrice != nil && *upd.TicketPrice < 0 {
		return nil, fmt.Errorf("%w: ticket price must not be negative", status.ErrValidation)
	}
	event, err := s.store.UpdateEvent(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return event, nil
}

func validateInsertEvent(in models.InsertEvent) error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title required", status.ErrValidation)
	case in.ArtistName == "":
		return fmt.Errorf("%w: artist name required", status.ErrValidation)
	case in.Venue == "":
		return fmt.Errorf("%w: venue required", status.ErrValidation)
	case in.EventDate.IsZero():
		return fmt.Errorf("%w: event date required", status.ErrValidation)
	case in.TicketPrice < 0:
		return fmt.Errorf("%w: ticket price must not be negative", status.ErrValidation)
	case in.MaxTickets <= 0:
		return fmt.Errorf("%w: max tickets must be positive", status.ErrValidation)
	}
	return nil
}
