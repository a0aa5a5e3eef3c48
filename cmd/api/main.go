package main

import (
	"context"
	"log"

	"eventhub/config"
	"eventhub/internal/handler"
	eventcache "eventhub/internal/redis"
	"eventhub/internal/repository"
	"eventhub/internal/server"
	"eventhub/internal/services"
	"eventhub/internal/storage"
	"eventhub/pkg/database"
	"eventhub/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	if err := database.ApplyRawMigrations("migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
	if cfg.SeedDemo {
		if err := database.Seed(database.DB, nil); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Cache and object storage are optional collaborators; the service runs
	// without them.
	var cache *eventcache.EventCache
	if client, err := eventcache.NewClient(eventcache.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}); err != nil {
		l.Warnf("Redis unavailable, continuing without listing cache: %s", err)
	} else {
		cache = eventcache.NewEventCache(client, eventcache.DefaultCacheConfig())
	}

	var uploads services.ImageStore
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		uploads = services.NewUploadService(s3Client)
	} else {
		l.Warnf("S3 bucket not configured, image upload is disabled")
	}

	eventRepo := repository.NewEventRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	placeRepo := repository.NewPlaceRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	placeService := services.NewPlaceService(database.DB, placeRepo, userRepo)
	eventService := services.NewEventService(database.DB, eventRepo, userRepo, placeRepo, uploads, cache)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Events: handler.NewEventHandler(eventService),
		Places: handler.NewPlaceHandler(placeService),
	}, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
}
