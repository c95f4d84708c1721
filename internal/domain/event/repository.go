package event

import "context"

// Repository lists events by date, latest first.
type Repository interface {
	List(ctx context.Context) ([]Event, error)
	Insert(ctx context.Context, item Event) (Event, error)
	Update(ctx context.Context, item Event) error
	Delete(ctx context.Context, id string) error
}
