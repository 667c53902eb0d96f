package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/event"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/repository/memory"
	redisrepo "github.com/utafrali/storefront/internal/repository/redis"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/static"
	"github.com/utafrali/storefront/internal/view"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/tracing"
)

// ServiceName identifies this service in logs, traces and events.
const ServiceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	sessions       *service.SessionService
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Tracing.
	tracerCfg := tracing.DefaultConfig(ServiceName)
	tracerCfg.Environment = cfg.Environment
	tracerCfg.Enabled = cfg.OTELEnabled
	tracerCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracerCfg.SampleRate = cfg.OTELSampleRate
	shutdown, err := tracing.InitTracer(ctx, tracerCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	// Session store.
	repo, err := a.newSessionRepository(ctx)
	if err != nil {
		a.closeResources()
		return nil, err
	}

	// Session lifecycle events.
	eventProducer := event.NewProducer(a.newPublisher(ctx), logger)

	// Build the dependency graph.
	a.sessions = service.NewSessionService(repo, eventProducer, logger)
	codec := auth.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL(), cfg.SessionCookieSecure)

	renderer, err := view.NewRenderer()
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("load view templates: %w", err)
	}

	staticServer, err := static.New(cfg.PublicDir, cfg.SrcDir, cfg.EntryDocument, logger)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("static files: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler(health.DefaultTimeout)
	healthHandler.Register("session_store", a.sessions.Ping)

	// HTTP router.
	router := handler.NewRouter(cfg, handler.Dependencies{
		Sessions: a.sessions,
		Codec:    codec,
		Renderer: renderer,
		Static:   staticServer,
		Health:   healthHandler,
		Logger:   logger,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// newSessionRepository opens the configured session store.
func (a *App) newSessionRepository(ctx context.Context) (repository.SessionRepository, error) {
	switch a.cfg.SessionStore {
	case config.SessionStoreRedis:
		redisCfg := database.DefaultRedisConfig()
		redisCfg.Addr = a.cfg.RedisAddr
		redisCfg.Password = a.cfg.RedisPass
		redisCfg.DB = a.cfg.RedisDB
		rdb, err := database.NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		database.SetSlowCommandLogging(a.cfg.RedisSlowCommandThreshold(), a.logger)
		a.logger.Info("connected to Redis",
			slog.String("addr", a.cfg.RedisAddr),
			slog.Int("db", a.cfg.RedisDB),
		)
		return redisrepo.NewSessionRepository(rdb, a.cfg.SessionTTL()), nil
	default:
		a.logger.Info("using in-memory session store")
		return memory.NewSessionRepository(a.cfg.SessionTTL()), nil
	}
}

// newPublisher returns the event sink. Disabled events are discarded; enabled
// events go through a circuit breaker so a dead broker cannot slow logins.
func (a *App) newPublisher(ctx context.Context) pkgkafka.Publisher {
	if !a.cfg.EventsEnabled {
		a.logger.Info("session events disabled")
		return pkgkafka.Discard
	}

	if err := pkgkafka.PingBrokers(ctx, a.cfg.KafkaBrokers); err != nil {
		a.logger.Warn("kafka brokers unreachable at startup, events will be dropped until they recover",
			slog.String("error", err.Error()),
		)
	}

	a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(a.cfg.KafkaBrokers), a.logger)
	a.logger.Info("kafka producer initialized", slog.Any("brokers", a.cfg.KafkaBrokers))
	return pkgkafka.NewBreakerPublisher(a.producer, pkgkafka.DefaultBreakerConfig("session-events"), a.logger)
}

// Handler returns the HTTP handler served by the application.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeResources()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.closeResources()
	a.logger.Info("application shutdown complete")
	return nil
}

// closeResources waits for in-flight events, then closes the producer, the
// Redis client and the tracer in that order.
func (a *App) closeResources() {
	if a.sessions != nil {
		a.sessions.Wait()
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
}
