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

	"github.com/labstack/echo/v5"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	"github.com/uuzor/mocalake/auth"
	"github.com/uuzor/mocalake/cache"
	"github.com/uuzor/mocalake/config"
	"github.com/uuzor/mocalake/handlers"
	"github.com/uuzor/mocalake/monitoring"
	"github.com/uuzor/mocalake/notify"
	"github.com/uuzor/mocalake/security"
	"github.com/uuzor/mocalake/services"
	"github.com/uuzor/mocalake/storage"
	"github.com/uuzor/mocalake/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize storage (explicit dependency, no global singleton)
	store := newStorage(cfg)
	defer store.Close()

	// Initialize Redis-backed cache and rate limiting when enabled
	var redisClient *redis.Client
	var eventCache *cache.EventCache
	if cfg.EnableCache {
		redisClient = utils.NewRedisClient(cfg.RedisURL)
		defer redisClient.Close()
		eventCache = cache.NewEventCache(redisClient, cfg.CacheTTL)
	}
	rateLimiter := security.NewRateLimiter(redisClient, int64(cfg.PurchaseRateLimit), cfg.PurchaseRateWindow)

	// Initialize PubNub notifier when keys are configured
	var notifier *notify.Notifier
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		notifier = notify.NewNotifier(pubnub.NewPubNub(pnConfig))
	}

	// The token issuer fails eagerly on a malformed key; an absent key
	// leaves the issuer nil and only the JWT endpoint unavailable.
	var issuer *auth.TokenIssuer
	if cfg.MocaPrivateKey != "" {
		var err error
		if issuer, err = auth.NewTokenIssuer(cfg.MocaPrivateKey); err != nil {
			log.Fatalf("Invalid MOCA_PRIVATE_KEY: %v", err)
		}
	} else {
		log.Println("MOCA_PRIVATE_KEY not set, JWT issuance disabled")
	}

	// Initialize services
	userService := services.NewUserService(store)
	eventService := services.NewEventService(store, eventCache)
	ticketService := services.NewTicketService(store, eventCache, notifier)
	credentialService := services.NewCredentialService(store, notifier)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	credentialHandler := handlers.NewCredentialHandler(credentialService)
	authHandler := handlers.NewAuthHandler(issuer)

	e := echo.New()

	// User endpoints
	e.POST("/api/users", userHandler.Register)
	e.GET("/api/users/wallet/:address", userHandler.GetUserByWallet)
	e.GET("/api/users/:id", userHandler.GetUser)

	// Auth endpoints
	e.POST("/api/auth/connect", userHandler.ConnectWallet)
	e.POST("/api/auth/jwt", authHandler.IssueToken)

	// Event endpoints
	e.GET("/api/events", eventHandler.ListEvents)
	e.GET("/api/events/:id", eventHandler.GetEvent)
	e.POST("/api/events", eventHandler.CreateEvent)
	e.PUT("/api/events/:id", eventHandler.UpdateEvent)

	// Ticket endpoints
	e.POST("/api/tickets/purchase", ticketHandler.Purchase, rateLimiter.PurchaseRateLimit())
	e.GET("/api/tickets/user/:userId", ticketHandler.TicketsByUser)
	e.GET("/api/tickets/event/:eventId", ticketHandler.TicketsByEvent)
	e.POST("/api/tickets", ticketHandler.CreateTicket)
	e.PUT("/api/tickets/:id/redeem", ticketHandler.Redeem)
	e.PUT("/api/tickets/:id/issuance", ticketHandler.UpdateIssuance)
	e.POST("/api/tickets/:id/reissue", ticketHandler.ReissueSubject)
	e.PUT("/api/tickets/:id", ticketHandler.UpdateTicket)

	// Credential endpoints
	e.GET("/api/credentials/user/:userId", credentialHandler.CredentialsByUser)
	e.POST("/api/credentials", credentialHandler.Record)
	e.POST("/api/credentials/verify", credentialHandler.Verify)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		if redisClient != nil {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Start metrics server
	if cfg.EnableMetrics {
		go monitoring.Serve(cfg.MetricsPort)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	// Setup graceful shutdown
	go handleShutdown(srv)

	log.Printf("Server listening on :%s (storage=%s)", cfg.Port, cfg.StorageDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newStorage(cfg *config.Config) storage.Storage {
	if cfg.StorageDriver == "memory" {
		log.Println("Using in-memory storage")
		return storage.NewMemStorage()
	}
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return store
}

// handleShutdown drains in-flight requests on SIGINT/SIGTERM.
func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, draining...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
