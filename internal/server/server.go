package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"abils-mall/internal/cart"
	"abils-mall/internal/config"
	custommiddleware "abils-mall/internal/middleware"
	"abils-mall/internal/notify"
	"abils-mall/internal/pricing"
	"abils-mall/internal/repository"
	"abils-mall/internal/service"
	"abils-mall/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	// Notification sink shared by all stores
	sink := notify.NewMemorySink(cfg.Notify.TTL)

	// Cart store: the product repository doubles as the catalog
	cartStorage := cart.NewRedisStorage(redisClient, cfg.Cart.KeyPrefix)
	cartStore := cart.NewStore(productRepo, cartStorage, sink, logger)

	pricingCfg := pricing.Config{
		ShippingFee: cfg.Pricing.ShippingFee,
		TaxRate:     cfg.Pricing.TaxRate,
	}

	// Checkout service with local order echo
	orderStorage := service.NewRedisOrderStorage(redisClient, cfg.Cart.OrderKeyPrefix)
	checkoutService := service.NewCheckoutService(cartStore, productRepo, orderStorage, pricingCfg, sink)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productRepo, logger)
	cartHandler := transport.NewCartHandler(cartStore, productRepo, pricingCfg, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, pricingCfg, logger)
	adminHandler := transport.NewAdminHandler(productRepo, sink, logger)
	managerHandler := transport.NewManagerHandler(companyRepo, sink, logger)
	notificationHandler := transport.NewNotificationHandler(sink)

	// Cart and checkout mutations get rate limited per client
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 60,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	notificationHandler.RegisterRoutes(router)
	managerHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)
	router.Group(func(r chi.Router) {
		r.Use(rateLimit)
		cartHandler.RegisterRoutes(r)
		checkoutHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
