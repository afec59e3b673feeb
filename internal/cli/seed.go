package cli

import (
	"context"
	"sort"
	"time"

	"infra-checklist/internal/config"
	"infra-checklist/internal/domain"
	"infra-checklist/internal/infra/memory"
	pgloader "infra-checklist/internal/infra/postgres"
	redisstore "infra-checklist/internal/infra/redis"
	"infra-checklist/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd writes the embedded catalog into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in checklists into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
			defer logger.Sync()
			return runSeed(cmd.Context(), cfg, logger)
		},
	}
}

func runSeed(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateDB(ctx, db, logger); err != nil {
		return err
	}

	catalog, err := memory.DefaultChecklists()
	if err != nil {
		return err
	}
	checklists := sortedChecklists(catalog)
	n, err := pgloader.SeedChecklists(ctx, db, checklists)
	if err != nil {
		return err
	}
	logger.Info("checklists seeded", zap.Int("count", n))

	// cached copies would otherwise outlive the new rows until their TTL
	b, err := connectBackends(ctx, config.Config{Redis: cfg.Redis})
	if err != nil {
		return err
	}
	defer b.Close()
	if b.redis == nil {
		return nil
	}
	repo := redisstore.NewChecklistRepository(b.redis, nil, config.TTLDuration(cfg.Checklist.TTL, 10*time.Minute))
	for _, c := range checklists {
		if err := repo.Invalidate(ctx, c.ID); err != nil {
			logger.Warn("invalidate cached checklist", zap.String("checklist", c.ID), zap.Error(err))
		}
	}
	return nil
}

func sortedChecklists(catalog map[string]domain.Checklist) []domain.Checklist {
	out := make([]domain.Checklist, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
