package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"room-booking/cmd"
	"room-booking/internal/ai"
	"room-booking/internal/data/medium"
	"room-booking/internal/data/repository"
	"room-booking/internal/notify"
	"room-booking/internal/usecase"
	"room-booking/internal/view"
	"room-booking/internal/wire"
	"room-booking/pkg/database"
	"room-booking/pkg/mq"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = ".env"
	}
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	origin := utils.GenerateViewID()
	logger = logger.With(zap.String("view", origin))

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Storage.Driver),
		zap.String("notify", config.Notify.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	store, closeStore := openMedium(ctx, config, logger)
	defer closeStore()

	notifier, closeNotifier := openNotifier(config, logger)
	defer closeNotifier()

	var events usecase.EventPublisher
	if config.MQ.URL != "" {
		publisher, err := mq.NewPublisher(config.MQ.URL, config.MQ.Exchange, config.App.Name, logger)
		if err != nil {
			logger.Warn("Message broker unavailable, lifecycle events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	var suggester usecase.RoomSuggester
	if config.AI.APIKey != "" {
		client, err := ai.NewClient(ctx, ai.Config{
			APIKey:  config.AI.APIKey,
			BaseURL: config.AI.BaseURL,
			Model:   config.AI.Model,
			Timeout: config.AI.Timeout,
		}, logger)
		if err != nil {
			logger.Warn("AI client unavailable, room suggestions disabled", zap.Error(err))
		} else {
			suggester = client
		}
	} else {
		logger.Warn("AI_API_KEY not set, room suggestions disabled")
	}

	// Initialize repositories and services
	repos := repository.NewRepository(store, notifier, config.Storage.Key, origin, logger)
	service := usecase.NewService(repos, suggester, events, logger)

	bookings := view.NewView(service.Booking, logger)
	if err := bookings.Refresh(ctx); err != nil {
		logger.Fatal("Failed to load bookings", zap.Error(err))
	}

	bridge := view.NewBridge(bookings, notifier, config.Storage.Key, origin, logger)
	if err := bridge.Start(ctx); err != nil {
		logger.Warn("Change notifications unavailable, view will not follow other writers", zap.Error(err))
	}
	defer bridge.Close()

	// Wire all dependencies
	app := wire.Wiring(service, bookings, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

// openMedium connects the configured backend. A backend that cannot be reached
// is not fatal: the app then runs on seed data and writes are dropped.
func openMedium(ctx context.Context, config *utils.Config, logger *zap.Logger) (medium.Medium, func()) {
	noop := func() {}
	unavailable := func(err error) (medium.Medium, func()) {
		logger.Error("Storage unavailable, serving seed data only", zap.Error(err))
		return medium.Unavailable{}, noop
	}

	switch config.Storage.Driver {
	case "memory", "":
		return medium.NewMemory(), noop

	case "sqlite":
		db, err := database.InitSQLite(config.Storage.SQLitePath)
		if err != nil {
			return unavailable(err)
		}
		m := medium.NewSQLite(db, logger)
		if err := m.Migrate(ctx); err != nil {
			db.Close()
			return unavailable(err)
		}
		return m, func() { db.Close() }

	case "postgres":
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return unavailable(err)
		}
		m := medium.NewPostgres(db, logger)
		if err := m.Migrate(ctx); err != nil {
			db.Close()
			return unavailable(err)
		}
		logger.Info("Database connected successfully")
		return m, db.Close

	case "redis":
		rdb, err := database.InitRedis(config.Redis.URL)
		if err != nil {
			return unavailable(err)
		}
		return medium.NewRedis(rdb, logger), func() { rdb.Close() }

	case "none":
		return medium.Unavailable{}, noop

	default:
		logger.Fatal("Unknown STORAGE_DRIVER", zap.String("driver", config.Storage.Driver))
		return nil, noop
	}
}

func openNotifier(config *utils.Config, logger *zap.Logger) (notify.Notifier, func()) {
	if config.Notify.Driver != "redis" {
		return notify.NewBroker(), func() {}
	}

	rdb, err := database.InitRedis(config.Redis.URL)
	if err != nil {
		logger.Warn("Redis notifications unavailable, using in-process broker", zap.Error(err))
		return notify.NewBroker(), func() {}
	}
	return notify.NewRedisNotifier(rdb, config.Notify.Prefix, logger), func() { rdb.Close() }
}
