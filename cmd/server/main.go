package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/trinitynoble/BudgetBuddyProject/internal/auth"
	"github.com/trinitynoble/BudgetBuddyProject/internal/config"
	"github.com/trinitynoble/BudgetBuddyProject/internal/database"
	"github.com/trinitynoble/BudgetBuddyProject/internal/handlers"
	"github.com/trinitynoble/BudgetBuddyProject/internal/logger"
	"github.com/trinitynoble/BudgetBuddyProject/internal/middleware"
	appredis "github.com/trinitynoble/BudgetBuddyProject/internal/redis"
	"github.com/trinitynoble/BudgetBuddyProject/internal/service"
	"github.com/trinitynoble/BudgetBuddyProject/internal/storage"
)

func main() {
	log := logger.New("server")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	pool, err := database.Connect(ctx, database.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userStore := storage.NewPostgresUserStore(pool)
	userService := service.NewUserService(userStore, jwtManager, cfg.Auth.BcryptCost)

	txService := service.NewLedgerService("transactions", storage.NewPostgresTransactionStore(pool))
	budgetService := service.NewLedgerService("budget", storage.NewPostgresBudgetStore(pool))

	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := appredis.NewRedisClient(ctx, appredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:         handlers.NewAuthHandler(userService),
		Transactions: handlers.NewRecordHandler("transactions", txService),
		Budget:       handlers.NewRecordHandler("budget", budgetService),
		AuthMW:       middleware.NewAuthMiddleware(userService),
		RateLimiter:  rateLimiter,
		CORSOrigin:   cfg.Server.CORSOrigin,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error: %v", err)
	}
	log.Info("Server stopped")
}
