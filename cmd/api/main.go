package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/palspantry/pantry-backend/internal/config"
	"github.com/palspantry/pantry-backend/internal/modules/auth"
	"github.com/palspantry/pantry-backend/internal/modules/cart"
	"github.com/palspantry/pantry-backend/internal/modules/catalog"
	"github.com/palspantry/pantry-backend/internal/modules/guided"
	"github.com/palspantry/pantry-backend/internal/modules/order"
	"github.com/palspantry/pantry-backend/internal/modules/owner"
	"github.com/palspantry/pantry-backend/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := buildLogger(cfg.AppEnv)
	defer logger.Sync()

	// ── Storage ─────────────────────────────────────────────
	var (
		ownerRepo   owner.Repository
		catalogRepo catalog.Repository
		cartRepo    cart.Repository
		orderRepo   order.Repository
	)
	if cfg.StoreBackend == "memory" {
		logger.Warn("using in-memory store; data will not survive a restart")
		catalogMem := catalog.NewMemoryRepository()
		cartMem := cart.NewMemoryRepository()
		ownerRepo = owner.NewMemoryRepository()
		catalogRepo = catalogMem
		cartRepo = cartMem
		orderRepo = order.NewMemoryRepository(cartMem, catalogMem)
	} else {
		db, err := store.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		defer db.Close()
		if err := store.EnsureSchema(context.Background(), db); err != nil {
			logger.Fatal("schema setup failed", zap.Error(err))
		}
		ownerRepo = owner.NewPostgresRepository(db)
		catalogRepo = catalog.NewPostgresRepository(db)
		cartRepo = cart.NewPostgresRepository(db)
		orderRepo = order.NewPostgresRepository(db)
	}

	// ── Services ────────────────────────────────────────────
	ownerService := owner.NewService(ownerRepo, logger)
	catalogService := catalog.NewService(catalogRepo, logger)
	cartService := cart.NewService(cartRepo, logger)
	orderService := order.NewService(orderRepo, logger)
	flow := guided.NewFlow(ownerService, catalogService, logger)

	authService := auth.NewService(ownerService, []byte(cfg.JWTSecret), []byte(cfg.APISecretHash))
	ownerOnly := auth.OwnerOnly(authService, ownerService)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	owner.NewHandler(ownerService).RegisterRoutes(router)
	catalog.NewHandler(catalogService).RegisterRoutes(router, ownerOnly)
	cart.NewHandler(cartService).RegisterRoutes(router)
	order.NewHandler(orderService).RegisterRoutes(router)
	guided.NewHandler(flow).RegisterRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Start server ────────────────────────────────────────
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("pantry API server starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func buildLogger(appEnv string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if appEnv == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
