package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/club-backoffice/internal/platform/cache"
)

type countingSettings struct {
	league.SettingRepository
	lists int
}

func (c *countingSettings) List(ctx context.Context) ([]league.Setting, error) {
	c.lists++
	return c.SettingRepository.List(ctx)
}

func TestLeagueSettingRepository_CachesUntilWrite(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(memory.DevSeed(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	next := &countingSettings{SettingRepository: memory.NewLeagueSettingRepository(store)}
	repo := NewLeagueSettingRepository(next, basecache.NewStore[any](time.Minute))
	ctx := context.Background()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if next.lists != 1 {
		t.Fatalf("expected one backing list call, got %d", next.lists)
	}

	first[0].Name = "mutated"
	again, _ := repo.List(ctx)
	if again[0].Name == "mutated" {
		t.Fatalf("expected cached slice to be copied")
	}

	if _, err := repo.Insert(ctx, league.Setting{Name: "Winter", SignupStart: "2026-12-01", SignupClose: "2026-12-31", FormType: league.FormSingles}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if next.lists != 2 || len(items) != 3 {
		t.Fatalf("expected reload after write, lists=%d items=%d", next.lists, len(items))
	}
}

func TestLeagueSettingRepository_GetByIDCachesMisses(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(memory.Seed{})
	repo := NewLeagueSettingRepository(memory.NewLeagueSettingRepository(store), basecache.NewStore[any](time.Minute))

	_, exists, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if exists {
		t.Fatalf("expected missing setting")
	}
}

func TestLeagueDivisionRepository_InvalidatedBySettingDelete(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(memory.DevSeed(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	shared := basecache.NewStore[any](time.Minute)
	settings := NewLeagueSettingRepository(memory.NewLeagueSettingRepository(store), shared)
	divisions := NewLeagueDivisionRepository(memory.NewLeagueDivisionRepository(store), shared)
	ctx := context.Background()

	items, err := divisions.ListBySetting(ctx, memory.SeedSettingSingles)
	if err != nil || len(items) != 2 {
		t.Fatalf("expected two divisions, got %d err=%v", len(items), err)
	}

	if err := settings.Delete(ctx, memory.SeedSettingSingles); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err = divisions.ListBySetting(ctx, memory.SeedSettingSingles)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cascade to be visible, got %+v", items)
	}
}

// stallingAnnouncements reads the rows on its first List call, then waits for
// release before returning them.
type stallingAnnouncements struct {
	announcement.Repository
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *stallingAnnouncements) List(ctx context.Context) ([]announcement.Announcement, error) {
	items, err := s.Repository.List(ctx)
	stall := false
	s.once.Do(func() { stall = true })
	if stall {
		close(s.started)
		<-s.release
	}
	return items, err
}

func TestAnnouncementRepository_RefetchSeesOwnWriteDuringSlowRead(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(memory.DevSeed(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	next := &stallingAnnouncements{
		Repository: memory.NewAnnouncementRepository(store),
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	repo := NewAnnouncementRepository(next, basecache.NewStore[any](time.Minute))
	ctx := context.Background()

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, _ = repo.List(ctx)
	}()
	<-next.started

	items, err := memory.NewAnnouncementRepository(store).List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one seeded announcement, got %d err=%v", len(items), err)
	}
	updated := items[0]
	updated.Title = "Fall leagues extended"
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	refetched, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if len(refetched) != 1 || refetched[0].Title != "Fall leagues extended" {
		t.Fatalf("refetch after write returned %+v", refetched)
	}

	close(next.release)
	<-slowDone

	again, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if again[0].Title != "Fall leagues extended" {
		t.Fatalf("cache kept rows read before the write: %q", again[0].Title)
	}
}
