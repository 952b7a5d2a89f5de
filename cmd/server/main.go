package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"visualizer-service/docs"
	"visualizer-service/internal/cache"
	"visualizer-service/internal/cardapi"
	"visualizer-service/internal/catalog"
	"visualizer-service/internal/config"
	"visualizer-service/internal/database"
	"visualizer-service/internal/events"
	"visualizer-service/internal/handlers"
	"visualizer-service/internal/session"
	"visualizer-service/internal/visualizer"
	"visualizer-service/internal/visualizer/drop"
)

// @title Visualizer Service API
// @version 1.0
// @description Visualizer sessions with undo/redo history, card loading and drag-and-drop chart editing.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// --- Card catalogue ---
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	repo := catalog.NewRepository(db)
	runner := catalog.NewQueryRunner(cfg.QueryTimeout)
	defer runner.Close()
	local := catalog.NewService(repo, runner)

	// --- Card source for visualizer sessions ---
	var cards cardapi.Service = local
	var datasetCache *cardapi.CachingService
	if cfg.CardSource == config.CardSourceRemote {
		log.Printf("Reading cards from BI backend at %s", cfg.BIBaseURL)
		cards = cardapi.NewHTTPClient(cfg.BIBaseURL, cfg.BIAPIKey)
	}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer redisCache.Close()
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Printf("Warning: Redis at %s not reachable, dataset cache may be degraded: %v", cfg.RedisAddr, err)
		} else {
			log.Printf("Successfully connected to Redis at %s", cfg.RedisAddr)
		}
		datasetCache = cardapi.NewCachingService(cards, redisCache, cfg.DatasetCacheTTL)
		cards = datasetCache
	}

	// --- Sessions ---
	sessions := session.NewManager(visualizer.NewReducer(drop.Default()), cfg.SessionIdleTTL)
	sweeper := session.NewSweeper(sessions, cfg.SessionSweepSchedule)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start session sweeper: %v", err)
	}
	defer sweeper.Stop()

	// --- History events ---
	if cfg.NatsURL != "" {
		nc, err := nats.Connect(cfg.NatsURL, nats.Timeout(10*time.Second), nats.RetryOnFailedConnect(true), nats.MaxReconnects(5), nats.ReconnectWait(time.Second))
		if err != nil {
			log.Fatalf("Failed to connect to NATS at %s: %v", cfg.NatsURL, err)
		}
		defer nc.Close()
		log.Printf("Successfully connected to NATS at %s", cfg.NatsURL)

		js, err := nc.JetStream()
		if err != nil {
			log.Fatalf("Failed to create JetStream context: %v", err)
		}
		notifier := events.NewNotifier(js, 256)
		if err := notifier.EnsureStream(); err != nil {
			log.Fatalf("Failed to set up history stream: %v", err)
		}
		go notifier.Run()
		defer notifier.Close()
		sessions.OnCreate(func(s *session.Session) {
			s.Store.Subscribe(notifier.Listener(s.ID))
		})
	}

	// --- HTTP server ---
	router := gin.Default()
	api := handlers.NewAPI(sessions, visualizer.NewFetcher(cards), repo, local)
	if datasetCache != nil {
		api.SetDatasetCache(datasetCache)
	}
	api.RegisterRoutes(router)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Printf("Starting visualizer service on :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down visualizer service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Visualizer service exited.")
}
