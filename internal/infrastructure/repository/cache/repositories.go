package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	basecache "github.com/riskibarqy/club-backoffice/internal/platform/cache"
)

const (
	keyAnnouncementList   = "announcement:list"
	keyLocationList       = "location:list"
	keyLocationLeague     = "location:league"
	keySettingList        = "setting:list"
	keySettingPrefix      = "setting:id:"
	keyDivisionList       = "division:list"
	keyDivisionBySetting  = "division:setting:"
	keyDivisionPrefix     = "division:"
	keyLocationPrefix     = "location:"
	keyAnnouncementPrefix = "announcement:"
)

type AnnouncementRepository struct {
	next  announcement.Repository
	cache *basecache.Store[any]
}

func NewAnnouncementRepository(next announcement.Repository, cache *basecache.Store[any]) *AnnouncementRepository {
	return &AnnouncementRepository{next: next, cache: cache}
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]announcement.Announcement, error) {
	v, err := r.cache.GetOrLoad(ctx, keyAnnouncementList, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]announcement.Announcement)
	out := slices.Clone(items)
	for i := range out {
		out[i].Pages = slices.Clone(out[i].Pages)
	}
	return out, nil
}

func (r *AnnouncementRepository) Insert(ctx context.Context, item announcement.Announcement) (announcement.Announcement, error) {
	defer r.cache.DeletePrefix(ctx, keyAnnouncementPrefix)
	return r.next.Insert(ctx, item)
}

func (r *AnnouncementRepository) Update(ctx context.Context, item announcement.Announcement) error {
	defer r.cache.DeletePrefix(ctx, keyAnnouncementPrefix)
	return r.next.Update(ctx, item)
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	defer r.cache.DeletePrefix(ctx, keyAnnouncementPrefix)
	return r.next.Delete(ctx, id)
}

type LocationRepository struct {
	next  location.Repository
	cache *basecache.Store[any]
}

func NewLocationRepository(next location.Repository, cache *basecache.Store[any]) *LocationRepository {
	return &LocationRepository{next: next, cache: cache}
}

func (r *LocationRepository) List(ctx context.Context) ([]location.Location, error) {
	return r.load(ctx, keyLocationList, r.next.List)
}

func (r *LocationRepository) ListLeague(ctx context.Context) ([]location.Location, error) {
	return r.load(ctx, keyLocationLeague, r.next.ListLeague)
}

func (r *LocationRepository) load(ctx context.Context, key string, fetch func(context.Context) ([]location.Location, error)) ([]location.Location, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]location.Location)
	return slices.Clone(items), nil
}

func (r *LocationRepository) Insert(ctx context.Context, item location.Location) (location.Location, error) {
	defer r.cache.DeletePrefix(ctx, keyLocationPrefix)
	return r.next.Insert(ctx, item)
}

func (r *LocationRepository) Update(ctx context.Context, item location.Location) error {
	defer r.cache.DeletePrefix(ctx, keyLocationPrefix)
	return r.next.Update(ctx, item)
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	defer r.cache.DeletePrefix(ctx, keyLocationPrefix)
	return r.next.Delete(ctx, id)
}

type LeagueSettingRepository struct {
	next  league.SettingRepository
	cache *basecache.Store[any]
}

func NewLeagueSettingRepository(next league.SettingRepository, cache *basecache.Store[any]) *LeagueSettingRepository {
	return &LeagueSettingRepository{next: next, cache: cache}
}

func (r *LeagueSettingRepository) List(ctx context.Context) ([]league.Setting, error) {
	v, err := r.cache.GetOrLoad(ctx, keySettingList, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Setting)
	return slices.Clone(items), nil
}

func (r *LeagueSettingRepository) GetByID(ctx context.Context, id string) (league.Setting, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, keySettingPrefix+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedSettingByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.Setting{}, false, err
	}

	cached, _ := v.(cachedSettingByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueSettingRepository) Insert(ctx context.Context, item league.Setting) (league.Setting, error) {
	defer r.invalidate(ctx)
	return r.next.Insert(ctx, item)
}

func (r *LeagueSettingRepository) Update(ctx context.Context, item league.Setting) error {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, item)
}

func (r *LeagueSettingRepository) Delete(ctx context.Context, id string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

// invalidate also drops divisions, which a setting delete cascades to.
func (r *LeagueSettingRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, "setting:")
	r.cache.DeletePrefix(ctx, keyDivisionPrefix)
}

type cachedSettingByID struct {
	value  league.Setting
	exists bool
}

type LeagueDivisionRepository struct {
	next  league.DivisionRepository
	cache *basecache.Store[any]
}

func NewLeagueDivisionRepository(next league.DivisionRepository, cache *basecache.Store[any]) *LeagueDivisionRepository {
	return &LeagueDivisionRepository{next: next, cache: cache}
}

func (r *LeagueDivisionRepository) List(ctx context.Context) ([]league.Division, error) {
	return r.load(ctx, keyDivisionList, r.next.List)
}

func (r *LeagueDivisionRepository) ListBySetting(ctx context.Context, settingID string) ([]league.Division, error) {
	return r.load(ctx, keyDivisionBySetting+settingID, func(ctx context.Context) ([]league.Division, error) {
		return r.next.ListBySetting(ctx, settingID)
	})
}

func (r *LeagueDivisionRepository) load(ctx context.Context, key string, fetch func(context.Context) ([]league.Division, error)) ([]league.Division, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Division)
	return slices.Clone(items), nil
}

func (r *LeagueDivisionRepository) Insert(ctx context.Context, item league.Division) (league.Division, error) {
	defer r.cache.DeletePrefix(ctx, keyDivisionPrefix)
	return r.next.Insert(ctx, item)
}

func (r *LeagueDivisionRepository) Update(ctx context.Context, item league.Division) error {
	defer r.cache.DeletePrefix(ctx, keyDivisionPrefix)
	return r.next.Update(ctx, item)
}

func (r *LeagueDivisionRepository) Delete(ctx context.Context, id string) error {
	defer r.cache.DeletePrefix(ctx, keyDivisionPrefix)
	return r.next.Delete(ctx, id)
}
