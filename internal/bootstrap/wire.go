package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/application/auth"
	"github.com/baechuer/skillmarket/internal/application/catalog"
	"github.com/baechuer/skillmarket/internal/application/identity"
	"github.com/baechuer/skillmarket/internal/application/profile"
	"github.com/baechuer/skillmarket/internal/config"
	"github.com/baechuer/skillmarket/internal/infrastructure/db/migrations"
	"github.com/baechuer/skillmarket/internal/infrastructure/db/postgres"
	"github.com/baechuer/skillmarket/internal/infrastructure/memory"
	"github.com/baechuer/skillmarket/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/skillmarket/internal/infrastructure/redis"
	"github.com/baechuer/skillmarket/internal/infrastructure/security"
	"github.com/baechuer/skillmarket/internal/infrastructure/storage"
	"github.com/baechuer/skillmarket/internal/logger"
	http_handlers "github.com/baechuer/skillmarket/internal/transport/http/handlers"
	"github.com/baechuer/skillmarket/internal/transport/http/middleware"
	"github.com/baechuer/skillmarket/internal/transport/http/response"
	"github.com/baechuer/skillmarket/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB   func(dsn string, debug bool, lg zerolog.Logger) (*sql.DB, error)
	Migrate func(ctx context.Context, db *sql.DB) error

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(url, exchange string) (Publisher, error)

	NewAvatars func(ctx context.Context, cfg config.S3Config) (profile.AvatarStorage, error)

	NewRouter func(router.Deps) (http.Handler, error)

	Logger zerolog.Logger
}

// Publisher is what both the auth and profile flows publish through.
type Publisher interface {
	auth.EventPublisher
	profile.EventPublisher
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	lg := deps.Logger

	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug, lg)
	if err != nil {
		return nil, nil, err
	}
	if db == nil {
		return nil, nil, ErrNoDB
	}
	cleanupFns := []func(){
		func() { _ = db.Close() },
	}
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	if cfg.AutoMigrate && deps.Migrate != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := deps.Migrate(ctx, db)
		cancel()
		if err != nil {
			return fail(err)
		}
		lg.Info().Msg("migrations applied")
	}

	// 2) identity store
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	store := identity.NewStore(postgres.NewUserRepo(db), hasher)

	if cfg.IsDev() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store.SeedDev(ctx, lg)
		cancel()
	}

	// 3) redis (best-effort)
	var redisCli *redis.Client
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			lg.Warn().Err(err).Msg("redis unavailable; using memory sessions, cache disabled")
			_ = c.Close()
		} else {
			lg.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var sessions auth.SessionStore
	var cache profile.Cache
	var limiter middleware.RateLimiter
	if redisCli != nil {
		sessions = redis.NewSessionStore(redisCli)
		cache = redis.NewProfileCache(redisCli, cfg.ProfileCacheTTL)
		limiter = redis.NewFixedWindowLimiter(redisCli)
	} else {
		sessions = memory.NewSessionStore()
	}

	// 4) publisher (best-effort)
	var pub Publisher = memory.NoopPublisher{}
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			lg.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			lg.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbitmq connected")
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 5) avatar storage (optional)
	var avatars profile.AvatarStorage
	if cfg.S3.Enabled() && deps.NewAvatars != nil {
		a, err := deps.NewAvatars(context.Background(), cfg.S3)
		if err != nil {
			return fail(err)
		}
		avatars = a
		lg.Info().Str("bucket", cfg.S3.Bucket).Msg("avatar uploads enabled")
	}

	// 6) services
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	audit := auditLogger(lg)

	authSvc := auth.NewService(store, signer, sessions, pub, auth.Config{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}).WithLogger(lg).WithAudit(audit)

	profileSvc := profile.NewService(store, cache, pub, avatars).WithLogger(lg).WithAudit(audit)

	now := time.Now().UTC()
	catalogSvc := catalog.NewService(memory.NewCatalogStore(catalog.SeedWork(now), catalog.SeedCandidates(now)))

	// 7) handlers + middleware
	secureCookies := !cfg.IsDev()

	checks := []http_handlers.Check{{Name: "db", Ping: db.PingContext, Required: true}}
	if redisCli != nil {
		checks = append(checks, http_handlers.Check{Name: "redis", Ping: redisCli.Ping})
	}

	rl := func(key string, limit int) router.Middleware {
		if limiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(limiter, middleware.FixedWindowConfig{
			RouteKey: key,
			Limit:    limit,
			Window:   time.Minute,
		}, response.WriteError, lg)
	}

	rd := router.Deps{
		Health:  http_handlers.NewHealthHandler(checks...),
		Auth:    http_handlers.NewAuthHandler(authSvc, authSvc.RefreshTTL(), secureCookies),
		Profile: http_handlers.NewProfileHandler(profileSvc),
		Catalog: http_handlers.NewCatalogHandler(catalogSvc),
		AuthMW:  middleware.Auth(signer, response.WriteError),

		AuthLimitMW:  rl("auth", 20),
		WriteLimitMW: rl("write", 60),

		Logger:      lg,
		CORSOrigins: cfg.CORSAllowedOrigins,
		HSTS:        secureCookies,
	}
	// without redis, fall back to an in-process per-IP limit
	if limiter == nil {
		rd.GlobalPerMinute = cfg.RateLimitPerMinute
	}

	// 8) router
	mux, err := deps.NewRouter(rd)
	if err != nil {
		return fail(err)
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, func() { runCleanup(cleanupFns) }, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: func() (*config.Config, error) {
			if err := config.LoadDotEnv(); err != nil {
				return nil, err
			}
			return config.Load()
		},
		NewDB:    config.NewDB,
		Migrate:  migrations.Up,
		NewRedis: redis.New,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq.NewPublisher(url, exchange)
		},
		NewAvatars: func(ctx context.Context, cfg config.S3Config) (profile.AvatarStorage, error) {
			return storage.NewS3Avatars(ctx, cfg)
		},
		NewRouter: router.New,
		Logger:    logger.Logger,
	}
}

/*
========================
 helpers
========================
*/

func auditLogger(lg zerolog.Logger) func(action string, fields map[string]string) {
	return func(action string, fields map[string]string) {
		evt := lg.Info().Bool("audit", true).Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	}
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// ErrNoDB is returned when NewDB hands back nil without an error.
var ErrNoDB = errors.New("bootstrap: NewDB returned nil")
