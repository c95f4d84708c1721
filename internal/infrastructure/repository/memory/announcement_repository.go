package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
)

type AnnouncementRepository struct {
	store *Store
}

func NewAnnouncementRepository(store *Store) *AnnouncementRepository {
	return &AnnouncementRepository{store: store}
}

func (r *AnnouncementRepository) List(_ context.Context) ([]announcement.Announcement, error) {
	items := r.store.announcements.list(nil, func(a, b announcement.Announcement) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	})
	for i := range items {
		items[i].Pages = slices.Clone(items[i].Pages)
	}
	return items, nil
}

func (r *AnnouncementRepository) Insert(_ context.Context, item announcement.Announcement) (announcement.Announcement, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.store.now().UTC()
	}
	item.Pages = slices.Clone(item.Pages)
	return r.store.announcements.insert(item), nil
}

func (r *AnnouncementRepository) Update(_ context.Context, item announcement.Announcement) error {
	item.Pages = slices.Clone(item.Pages)
	return r.store.announcements.update(item)
}

func (r *AnnouncementRepository) Delete(_ context.Context, id string) error {
	r.store.announcements.delete(id)
	return nil
}
