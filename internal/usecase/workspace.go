package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-backoffice/internal/domain/announcement"
	"github.com/riskibarqy/club-backoffice/internal/domain/event"
	"github.com/riskibarqy/club-backoffice/internal/domain/league"
	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/cache"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	FlagPreview  = "preview"
	FlagExpanded = "expanded"
)

const defaultWarmupWorkers = 4

// WorkspaceStores are the record stores behind every admin tab.
type WorkspaceStores struct {
	Announcements announcement.Repository
	Events        event.Repository
	Locations     location.Repository
	Settings      league.SettingRepository
	Divisions     league.DivisionRepository
	Flights       league.FlightRepository
	Signups       signup.Repository
}

type WorkspaceConfig struct {
	TTL           time.Duration
	WarmupWorkers int
	Logger        *logging.Logger
}

// Workspace is one admin's set of edit buffers. It lives across requests
// so drafts and open edits survive between calls.
type Workspace struct {
	Admin         user.AuthorizedUser
	Announcements *editbuffer.Controller[announcement.Announcement]
	Events        *editbuffer.Controller[event.Event]
	Locations     *editbuffer.Controller[location.Location]
	Settings      *editbuffer.Controller[league.Setting]
	Divisions     *editbuffer.Nested[league.Division]
	Flights       *editbuffer.Nested[league.Flight]

	signups signup.Repository
	logger  *logging.Logger

	mu      sync.Mutex
	reviews map[string]*reviewSlot
}

// reviewSlot is one setting's review buffer. ready closes once the first
// load finished; err holds that load's failure.
type reviewSlot struct {
	ctrl  *reviewController
	ready chan struct{}
	err   error
}

// WorkspaceManager hands out workspaces keyed by admin id. Idle
// workspaces expire after the configured TTL.
type WorkspaceManager struct {
	stores  WorkspaceStores
	cache   *cache.Store[*Workspace]
	workers int
	now     func() time.Time
	logger  *logging.Logger
}

func NewWorkspaceManager(stores WorkspaceStores, cfg WorkspaceConfig) *WorkspaceManager {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.WarmupWorkers
	if workers <= 0 {
		workers = defaultWarmupWorkers
	}

	return &WorkspaceManager{
		stores:  stores,
		cache:   cache.NewStore[*Workspace](cfg.TTL, cache.Sliding()),
		workers: workers,
		now:     time.Now,
		logger:  logger,
	}
}

// Open returns the admin's workspace, building and loading it on first use.
func (m *WorkspaceManager) Open(ctx context.Context, admin user.AuthorizedUser) (*Workspace, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkspaceManager.Open")
	defer span.End()

	if admin.ID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrUnauthorized)
	}

	ws, err := m.cache.GetOrLoad(ctx, admin.ID, func(ctx context.Context) (*Workspace, error) {
		ws := m.build(admin)
		if err := m.warmUp(ctx, ws); err != nil {
			return nil, err
		}
		m.logger.InfoContext(ctx, "admin workspace opened", "admin_id", admin.ID)
		return ws, nil
	})
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	return ws, nil
}

// Close drops the admin's workspace with every unsaved edit in it.
func (m *WorkspaceManager) Close(ctx context.Context, adminID string) {
	m.cache.Delete(ctx, adminID)
}

func (m *WorkspaceManager) build(admin user.AuthorizedUser) *Workspace {
	logger := m.logger.With("admin_id", admin.ID)

	divisions := editbuffer.NewController[league.Division](m.stores.Divisions, editbuffer.Config[league.Division]{
		Name:   "divisions",
		Logger: logger,
	})
	flights := editbuffer.NewController[league.Flight](m.stores.Flights, editbuffer.Config[league.Flight]{
		Name:   "flights",
		Logger: logger,
	})

	return &Workspace{
		Admin: admin,
		Announcements: editbuffer.NewController[announcement.Announcement](m.stores.Announcements, editbuffer.Config[announcement.Announcement]{
			Name:            "announcements",
			RequiredMessage: announcement.RequiredMessage,
			Prepare: func(a announcement.Announcement) announcement.Announcement {
				a.Author = admin.Name
				a.CreatedAt = m.now().UTC()
				return a
			},
			Logger: logger,
		}),
		Events: editbuffer.NewController[event.Event](m.stores.Events, editbuffer.Config[event.Event]{
			Name:   "events",
			Logger: logger,
		}),
		Locations: editbuffer.NewController[location.Location](m.stores.Locations, editbuffer.Config[location.Location]{
			Name:            "locations",
			RequiredMessage: location.RequiredMessage,
			Logger:          logger,
		}),
		Settings: editbuffer.NewController[league.Setting](m.stores.Settings, editbuffer.Config[league.Setting]{
			Name:   "league settings",
			Logger: logger,
		}),
		Divisions: editbuffer.NewNested(divisions,
			func(d league.Division) string { return d.SettingID },
			func(d league.Division, parentID string) league.Division {
				d.SettingID = parentID
				return d
			},
		),
		Flights: editbuffer.NewNested(flights,
			func(f league.Flight) string { return f.DivisionID },
			func(f league.Flight, parentID string) league.Flight {
				f.DivisionID = parentID
				return f
			},
		),
		signups: m.stores.Signups,
		logger:  logger,
		reviews: make(map[string]*reviewSlot),
	}
}

// warmUp loads the four admin tabs in parallel.
func (m *WorkspaceManager) warmUp(ctx context.Context, ws *Workspace) error {
	tasks := []func(context.Context) error{
		ws.Announcements.Load,
		ws.Events.Load,
		ws.Locations.Load,
		ws.LoadLeagueTree,
	}

	p, err := ants.NewPool(min(m.workers, len(tasks)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer p.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, task := range tasks {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			if err := task(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit warm-up task: %w", err)
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

// LoadLeagueTree reloads settings, divisions and flights concurrently.
func (w *Workspace) LoadLeagueTree(ctx context.Context) error {
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(w.Settings.Load)
	p.Go(w.Divisions.Load)
	p.Go(w.Flights.Load)
	return p.Wait()
}

// Review returns the signup review buffer of one league setting, loading
// it on first use. Concurrent first callers wait for the same load.
func (w *Workspace) Review(ctx context.Context, settingID string) (*reviewController, error) {
	w.mu.Lock()
	slot, ok := w.reviews[settingID]
	if !ok {
		slot = &reviewSlot{
			ctrl: editbuffer.NewController[signup.Signup](reviewStore{repo: w.signups, settingID: settingID}, editbuffer.Config[signup.Signup]{
				Name:   "signups",
				Logger: w.logger.With("setting_id", settingID),
			}),
			ready: make(chan struct{}),
		}
		w.reviews[settingID] = slot
	}
	w.mu.Unlock()

	if ok {
		select {
		case <-slot.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if slot.err != nil {
			return nil, slot.err
		}
		return slot.ctrl, nil
	}

	slot.err = slot.ctrl.Load(ctx)
	if slot.err != nil {
		w.mu.Lock()
		if w.reviews[settingID] == slot {
			delete(w.reviews, settingID)
		}
		w.mu.Unlock()
	}
	close(slot.ready)
	if slot.err != nil {
		return nil, slot.err
	}
	return slot.ctrl, nil
}

type reviewController = editbuffer.Controller[signup.Signup]

// reviewStore adapts the signup repository to one setting's rows. Signups
// are only created by the public form.
type reviewStore struct {
	repo      signup.Repository
	settingID string
}

func (s reviewStore) List(ctx context.Context) ([]signup.Signup, error) {
	return s.repo.ListBySetting(ctx, s.settingID)
}

func (s reviewStore) Insert(_ context.Context, _ signup.Signup) (signup.Signup, error) {
	return signup.Signup{}, fmt.Errorf("%w: signups are created through the signup form", ErrInvalidInput)
}

func (s reviewStore) Update(ctx context.Context, item signup.Signup) error {
	return s.repo.SetConfirmedPaid(ctx, item.ID, item.ConfirmedPaid)
}

func (s reviewStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
