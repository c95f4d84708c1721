package memory

import (
	"context"

	"github.com/riskibarqy/club-backoffice/internal/domain/location"
)

type LocationRepository struct {
	store *Store
}

func NewLocationRepository(store *Store) *LocationRepository {
	return &LocationRepository{store: store}
}

func (r *LocationRepository) List(_ context.Context) ([]location.Location, error) {
	return r.store.locations.list(nil, func(a, b location.Location) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	}), nil
}

func (r *LocationRepository) ListLeague(_ context.Context) ([]location.Location, error) {
	return r.store.locations.list(
		func(item location.Location) bool { return item.League },
		func(a, b location.Location) int { return byText(a.Name, b.Name) },
	), nil
}

func (r *LocationRepository) Insert(_ context.Context, item location.Location) (location.Location, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.store.now().UTC()
	}
	return r.store.locations.insert(item), nil
}

func (r *LocationRepository) Update(_ context.Context, item location.Location) error {
	return r.store.locations.mutate(item.ID, func(current location.Location) location.Location {
		item.CreatedAt = current.CreatedAt
		return item
	})
}

func (r *LocationRepository) Delete(_ context.Context, id string) error {
	r.store.locations.delete(id)
	return nil
}
