package announcement

import "context"

// Repository lists announcements newest first.
type Repository interface {
	List(ctx context.Context) ([]Announcement, error)
	Insert(ctx context.Context, item Announcement) (Announcement, error)
	Update(ctx context.Context, item Announcement) error
	Delete(ctx context.Context, id string) error
}
