package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/frontandrew/sales/internal/delivery/http"
	"github.com/frontandrew/sales/internal/delivery/http/middleware"
	"github.com/frontandrew/sales/internal/infrastructure/userdir"
	"github.com/frontandrew/sales/internal/pkg/config"
	"github.com/frontandrew/sales/internal/pkg/database"
	"github.com/frontandrew/sales/internal/pkg/jwt"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/frontandrew/sales/internal/pkg/validator"
	"github.com/frontandrew/sales/internal/repository/postgres"
	"github.com/frontandrew/sales/internal/usecase/purchase"
	"github.com/frontandrew/sales/internal/usecase/sale"
	"github.com/frontandrew/sales/internal/usecase/saledetail"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting sales API server", logger.Fields{
		"version": "1.0.0",
		"port":    cfg.Server.Port,
	})

	// =========================================================================
	// Подключение к PostgreSQL
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", logger.Fields{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", logger.Fields{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, db, log); err != nil {
			log.Fatal("Failed to apply migrations", logger.Fields{
				"error": err.Error(),
			})
		}
	}

	// =========================================================================
	// Создание repositories
	// =========================================================================

	saleRepo := postgres.NewSaleRepository(db)
	saleDetailRepo := postgres.NewSaleDetailRepository(db)
	purchaseStore := postgres.NewPurchaseStore(db)

	log.Info("Repositories initialized")

	// =========================================================================
	// Клиент сервиса пользователей
	// =========================================================================

	users := userdir.NewHTTPClient(cfg.UserService.BaseURL, cfg.UserService.Timeout)

	if err := users.Health(ctx); err != nil {
		log.Warn("User service is not available", logger.Fields{
			"error": err.Error(),
			"url":   cfg.UserService.BaseURL,
		})
		log.Warn("Purchases will fail until user service is running")
	} else {
		log.Info("User service is reachable", logger.Fields{
			"url": cfg.UserService.BaseURL,
		})
	}

	// =========================================================================
	// Создание use case services
	// =========================================================================

	saleService := sale.NewService(saleRepo, users, log)
	saleDetailService := saledetail.NewService(saleDetailRepo, log)
	purchaseService := purchase.NewService(users, purchaseStore, log, cfg.UserService.Timeout)

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers и router
	// =========================================================================

	v := validator.New()

	saleHandler := deliveryHTTP.NewSaleHandler(saleService, v, log)
	saleDetailHandler := deliveryHTTP.NewSaleDetailHandler(saleDetailService, v, log)
	purchaseHandler := deliveryHTTP.NewPurchaseHandler(purchaseService, v, log)

	var tokens middleware.TokenValidator
	if cfg.Auth.Enabled {
		tokens = jwt.NewTokenService(cfg.Auth.SecretKey, cfg.Auth.Issuer)
		log.Info("JWT auth enabled for mutating routes")
	}

	router := deliveryHTTP.NewRouter(
		saleHandler,
		saleDetailHandler,
		purchaseHandler,
		tokens,
		db,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", logger.Fields{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", logger.Fields{
				"error": err.Error(),
			})
		}

	case sig := <-shutdown:
		log.Info("Shutdown signal received", logger.Fields{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", logger.Fields{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Error("Failed to close server", logger.Fields{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
