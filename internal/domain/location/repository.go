package location

import "context"

// Repository lists venues newest first; ListLeague returns league venues
// ordered by name.
type Repository interface {
	List(ctx context.Context) ([]Location, error)
	ListLeague(ctx context.Context) ([]Location, error)
	Insert(ctx context.Context, item Location) (Location, error)
	Update(ctx context.Context, item Location) error
	Delete(ctx context.Context, id string) error
}
