package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-backoffice/external/archive"
	"github.com/riskibarqy/club-backoffice/external/identity"
	"github.com/riskibarqy/club-backoffice/external/notify"
	"github.com/riskibarqy/club-backoffice/internal/config"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-backoffice/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-backoffice/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/club-backoffice/internal/platform/cache"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// App is the assembled API server and the resources it owns.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

// Close releases the database pool. The server is shut down by the caller.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

type storeSet struct {
	workspace usecase.WorkspaceStores
	users     user.Repository
	db        *sqlx.DB
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.PublicCacheTTL > 0 {
		readCache := basecache.NewStore[any](cfg.PublicCacheTTL)
		repos.workspace.Announcements = cache.NewAnnouncementRepository(repos.workspace.Announcements, readCache)
		repos.workspace.Locations = cache.NewLocationRepository(repos.workspace.Locations, readCache)
		repos.workspace.Settings = cache.NewLeagueSettingRepository(repos.workspace.Settings, readCache)
		repos.workspace.Divisions = cache.NewLeagueDivisionRepository(repos.workspace.Divisions, readCache)
	}
	stores := repos.workspace

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		closeDB(repos.db, logger)
		return nil, err
	}
	archiver, err := newArchiver(ctx, cfg, logger)
	if err != nil {
		closeDB(repos.db, logger)
		return nil, err
	}

	workspaces := usecase.NewWorkspaceManager(stores, usecase.WorkspaceConfig{
		TTL:           cfg.WorkspaceTTL,
		WarmupWorkers: cfg.WorkspaceWarmupWorkers,
		Logger:        logger.Named("workspace"),
	})
	adminSvc := usecase.NewAdminService(repos.users)

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Admin:         adminSvc,
		Announcements: usecase.NewAnnouncementAdminService(workspaces),
		Feed:          usecase.NewAnnouncementFeedService(stores.Announcements),
		Events:        usecase.NewEventAdminService(workspaces, stores.Locations),
		Locations:     usecase.NewLocationAdminService(workspaces),
		Leagues:       usecase.NewLeagueAdminService(workspaces),
		Review:        usecase.NewSignupReviewService(workspaces, stores.Settings, archiver, logger.Named("review")),
		Signups: usecase.NewSignupService(usecase.SignupServiceDeps{
			Settings:  stores.Settings,
			Divisions: stores.Divisions,
			Locations: stores.Locations,
			Signups:   stores.Signups,
			Notifier:  notifier,
			Payments: signup.PaymentLinks{
				VenmoHandle:  cfg.PaymentVenmoHandle,
				PaypalHandle: cfg.PaymentPaypalHandle,
			},
			Logger: logger.Named("signup"),
		}),
		Logger: logger,
	})

	verifier := identity.NewClient(identity.ClientConfig{
		BaseURL:         cfg.IdentityBaseURL,
		UserPath:        cfg.IdentityUserPath,
		APIKey:          cfg.IdentityAPIKey,
		Timeout:         cfg.IdentityTimeout,
		CacheTTL:        cfg.IdentityCacheTTL,
		CacheMaxEntries: cfg.IdentityCacheMaxEntries,
		CircuitBreaker:  cfg.IdentityCircuit,
		Logger:          logger,
	})

	router := httpapi.NewRouter(handler, verifier, adminSvc, logger, cfg.AppEnv != config.EnvProd, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db: repos.db,
	}, nil
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (storeSet, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		seed := memory.Seed{}
		if cfg.SeedDemoData {
			seed = memory.DevSeed(time.Now())
		}
		store := memory.NewStore(seed)
		logger.Info("using in-memory store", "seeded", cfg.SeedDemoData)
		return storeSet{
			workspace: usecase.WorkspaceStores{
				Announcements: memory.NewAnnouncementRepository(store),
				Events:        memory.NewEventRepository(store),
				Locations:     memory.NewLocationRepository(store),
				Settings:      memory.NewLeagueSettingRepository(store),
				Divisions:     memory.NewLeagueDivisionRepository(store),
				Flights:       memory.NewLeagueFlightRepository(store),
				Signups:       memory.NewSignupRepository(store),
			},
			users: memory.NewAuthorizedUserRepository(store),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return storeSet{}, err
	}
	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db, time.Now()); err != nil {
			closeDB(db, logger)
			return storeSet{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}
	logger.Info("using postgres store", "db_name", dbNameFromURL(cfg.DBURL), "seeded", cfg.SeedDemoData)

	return storeSet{
		workspace: usecase.WorkspaceStores{
			Announcements: postgres.NewAnnouncementRepository(db),
			Events:        postgres.NewEventRepository(db),
			Locations:     postgres.NewLocationRepository(db),
			Settings:      postgres.NewLeagueSettingRepository(db),
			Divisions:     postgres.NewLeagueDivisionRepository(db),
			Flights:       postgres.NewLeagueFlightRepository(db),
			Signups:       postgres.NewSignupRepository(db),
		},
		users: postgres.NewAuthorizedUserRepository(db),
		db:    db,
	}, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbName := dbNameFromURL(cfg.DBURL)
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s: %w", dbName, err)
	}
	return db, nil
}

// newNotifier returns nil when signup emails are off so the service skips
// sending altogether.
func newNotifier(cfg config.Config, logger *logging.Logger) (usecase.SignupNotifier, error) {
	if !cfg.SignupEmailEnabled {
		logger.Info("signup email disabled", "reason", "SIGNUP_EMAIL_ENABLED=false")
		return nil, nil
	}
	mailer, err := notify.NewMailer(notify.MailerConfig{
		APIKey:         cfg.ResendAPIKey,
		From:           cfg.SignupEmailFrom,
		Timeout:        cfg.EmailTimeout,
		CircuitBreaker: cfg.EmailCircuit,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build mailer: %w", err)
	}
	return mailer, nil
}

func newArchiver(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.ExportArchiver, error) {
	if !cfg.ExportArchiveEnabled {
		logger.Info("export archive disabled", "reason", "EXPORT_ARCHIVE_ENABLED=false")
		return nil, nil
	}
	archiver, err := archive.NewS3Archive(ctx, archive.Config{
		Bucket:    cfg.ExportArchiveBucket,
		Region:    cfg.ExportArchiveRegion,
		Endpoint:  cfg.ExportArchiveEndpoint,
		Prefix:    cfg.ExportArchivePrefix,
		PathStyle: cfg.ExportArchivePathStyle,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build export archive: %w", err)
	}
	return archiver, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("close database failed", "error", err)
	}
}
