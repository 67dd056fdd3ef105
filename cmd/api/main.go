package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spingate-backend/internal/config"
	"spingate-backend/internal/handlers"
	"spingate-backend/internal/middleware"
	"spingate-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	setupLogger(cfg)

	partnerRecords, err := config.LoadPartners(cfg.PartnersFile)
	if err != nil {
		log.Fatalf("Failed to load partner registry: %v", err)
	}
	partnerStore := services.NewStaticPartnerStore(partnerRecords)

	var roundStore services.RoundStore
	if cfg.RedisAddr != "" {
		redisService, err := services.NewRedisService(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisService.Close()
		roundStore = redisService
	} else {
		slog.Warn("REDIS_ADDR not set, round records kept in memory only")
		roundStore = services.NewMemoryRoundStore()
	}

	var engine *services.SlotEngine
	if cfg.GamesFile != "" {
		engine, err = services.NewSlotEngineFromFile(cfg.GamesFile)
	} else {
		engine, err = services.NewSlotEngine(services.DefaultGameConfig())
	}
	if err != nil {
		log.Fatalf("Failed to load game configs: %v", err)
	}

	jwtService := services.NewJWTService(cfg)
	walletClient := services.NewWalletClient(partnerStore, cfg.WalletTimeout)
	rngClient := services.NewRNGClient(cfg.RNGServiceURL, cfg.RNGTimeout)
	registry := services.NewSessionRegistry()

	orchestrator := services.NewSpinOrchestrator(walletClient, rngClient, engine, roundStore)
	orchestrator.MaxBet = cfg.MaxBet

	launchHandler := handlers.NewLaunchHandler(jwtService, partnerStore, cfg.GameClientURL)
	wsHandler := handlers.NewWebSocketHandler(jwtService, registry, orchestrator)
	sessionHandler := handlers.NewSessionHandler(registry)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/launch", launchHandler.Launch)
	router.GET("/ws", wsHandler.HandleWebSocket)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": registry.Len()})
	})

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/session", sessionHandler.GetSessionInfo)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Gateway starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupLogger installs a JSON slog logger as the process default so round
// and transaction ids land in structured, queryable fields.
func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Env != "production" {
		level = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	)
	slog.SetDefault(logger)
}
