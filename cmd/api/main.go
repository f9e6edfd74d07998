package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chloe-ha/menu-cms/internal/auth"
	"github.com/chloe-ha/menu-cms/internal/config"
	"github.com/chloe-ha/menu-cms/internal/media"
	"github.com/chloe-ha/menu-cms/internal/restaurant"
	"github.com/chloe-ha/menu-cms/internal/server"
	"github.com/chloe-ha/menu-cms/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer dbPool.Close()

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		log.Fatalf("ensure bucket: %v", err)
	}

	authService, err := auth.NewService(cfg.Auth)
	if err != nil {
		log.Fatalf("init auth: %v", err)
	}

	restaurantRepo := restaurant.NewRepository(dbPool)
	if err := restaurantRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	restaurantService := restaurant.NewService(restaurantRepo)

	keys := media.NewKeyMaker(cfg.Media.KeyPrefix)
	mediaService := media.NewService(minioClient, cfg.MinIO.Bucket, cfg.Media.UploadURLTTL, keys)

	router := server.NewRouter(server.Dependencies{
		Config:            cfg,
		DB:                dbPool,
		ObjectStore:       minioClient,
		AuthService:       authService,
		MediaService:      mediaService,
		RestaurantService: restaurantService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("menu-cms API listening on %s", cfg.Server.Address())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
