package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infra-checklist/internal/app"
	"infra-checklist/internal/config"
	"infra-checklist/internal/infra/memory"
	pgloader "infra-checklist/internal/infra/postgres"
	redisstore "infra-checklist/internal/infra/redis"
	"infra-checklist/internal/logging"
	"infra-checklist/internal/metrics"
	transport "infra-checklist/internal/transport/http"
	"infra-checklist/internal/view"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the checklist server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// backends holds the storage clients shared by the commands.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func (b backends) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

func connectBackends(ctx context.Context, cfg config.Config) (backends, error) {
	var b backends
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return backends{}, err
		}
		b.pool = pool
	}
	return b, nil
}

// checklistRepository picks the loader (Postgres or the embedded catalog)
// and the cache in front of it (Redis or in-process).
func (b backends) checklistRepository(cfg config.Config) (app.ChecklistRepository, error) {
	var loader memory.ChecklistLoader
	if b.pool != nil {
		loader = pgloader.NewChecklistLoader(b.pool)
	} else {
		catalog, err := memory.DefaultChecklists()
		if err != nil {
			return nil, err
		}
		loader = memory.NewStaticChecklistLoader(catalog)
	}

	ttl := config.TTLDuration(cfg.Checklist.TTL, 10*time.Minute)
	if b.redis != nil {
		return redisstore.NewChecklistRepository(b.redis, loader, ttl), nil
	}
	return memory.NewChecklistRepository(loader, ttl), nil
}

func (b backends) sessionStore(cfg config.Config) app.SessionRepository {
	if b.redis != nil {
		return redisstore.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	}
	return memory.NewSessionStore()
}

func defaultChecklistID(cfg config.Config) string {
	if cfg.Checklist.Default != "" {
		return cfg.Checklist.Default
	}
	return memory.DefaultChecklistID
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer logger.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := connectBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	checklists, err := b.checklistRepository(cfg)
	if err != nil {
		return err
	}
	renderer, err := view.New(cfg.Checklist.ContactURL)
	if err != nil {
		return err
	}

	routerCfg := transport.RouterConfig{
		Renderer:         renderer,
		Logger:           logger,
		DefaultChecklist: defaultChecklistID(cfg),
	}
	var observer app.Observer
	if cfg.MetricsEnabled() {
		collector := metrics.NewCollector()
		observer = collector
		routerCfg.Metrics = collector.Handler()
	}
	routerCfg.Service = app.NewChecklistService(b.sessionStore(cfg), checklists, logger, observer)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting checklist service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
