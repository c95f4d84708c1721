package memory

import (
	"context"

	"github.com/riskibarqy/club-backoffice/internal/domain/event"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	return r.store.events.list(nil, func(a, b event.Event) int {
		return byText(b.Date, a.Date)
	}), nil
}

func (r *EventRepository) Insert(_ context.Context, item event.Event) (event.Event, error) {
	return r.store.events.insert(item), nil
}

func (r *EventRepository) Update(_ context.Context, item event.Event) error {
	return r.store.events.update(item)
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.store.events.delete(id)
	return nil
}
