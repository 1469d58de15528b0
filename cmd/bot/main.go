package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"faylbot/internal/api"
	"faylbot/internal/bot"
	"faylbot/internal/broadcast"
	"faylbot/internal/config"
	"faylbot/internal/database"
	"faylbot/internal/domain"
	"faylbot/internal/events"
	"faylbot/internal/logging"
	"faylbot/internal/metrics"
	"faylbot/internal/repository"
	"faylbot/internal/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	// State store: redis with in-memory failover; memory only when redis
	// is not configured.
	var stateRepo domain.StateRepository = repository.NewMemoryStateRepository()
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer client.Close()

		primary := repository.NewRedisStateRepository(client,
			time.Duration(cfg.Bot.StateTTL)*time.Second, &logger)
		stateRepo = repository.NewFailoverStateRepository(primary,
			repository.NewMemoryStateRepository(), &logger)
	} else {
		logger.Warn().Msg("redis not configured, conversation state is in-memory only")
	}

	tg, err := service.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.Debug, &logger)
	if err != nil {
		return fmt.Errorf("init telegram: %w", err)
	}

	bus := events.NewBus(&logger)
	m := metrics.New()

	users := service.NewUserService(db, cfg.Admins, bus, &logger)
	files := service.NewFileService(db, bus, &logger)
	channels := service.NewChannelService(db, &logger)
	subs := service.NewSubscriptionService(channels, tg, cfg.IsAdmin, &logger)
	stats := service.NewStatsService(db, &logger)
	state := service.NewStateService(stateRepo,
		cfg.Bot.RateLimitMessages, time.Duration(cfg.Bot.RateLimitWindow)*time.Second, &logger)

	engine := broadcast.NewEngine(
		cfg.Bot.Broadcast.Concurrency,
		cfg.Bot.Broadcast.BatchSize,
		time.Duration(cfg.Bot.Broadcast.BatchPauseMS)*time.Millisecond,
		time.Duration(cfg.Bot.Broadcast.SendDelayMS)*time.Millisecond,
		&logger,
	)

	b := bot.New(cfg, bot.Deps{
		Telegram:      tg,
		Users:         users,
		Files:         files,
		Channels:      channels,
		Subscriptions: subs,
		Stats:         stats,
		State:         state,
		Engine:        engine,
		Bus:           bus,
		Metrics:       m,
	}, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return b.Run(gctx) })

	if cfg.API.Enabled {
		srv := api.NewServer(cfg, stats, db, &logger)
		g.Go(func() error { return srv.Run(gctx) })
	}

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(db, cfg.Backup.StoragePath,
			time.Duration(cfg.Backup.IntervalHours)*time.Hour, cfg.Backup.RetentionDays, &logger)
		g.Go(func() error {
			backup.Run(gctx)
			return nil
		})
	}

	return g.Wait()
}
