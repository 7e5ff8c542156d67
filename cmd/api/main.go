package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artmarket-backend/internal/auth"
	"artmarket-backend/internal/client"
	"artmarket-backend/internal/config"
	"artmarket-backend/internal/notifier"
	"artmarket-backend/internal/repository"
	"artmarket-backend/internal/server"
	"artmarket-backend/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		log.WithError(err).Fatal("Failed to parse config")
	}

	if cfg.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	db, err := client.InitDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to init database")
	}
	paypalClient := client.NewPaypalClient(&cfg.Paypal, cfg.BaseURL)
	mailer := notifier.NewSMTPMailer(&cfg.SMTP)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)

	authService := auth.NewService(&cfg.JWT)
	userService := service.NewUserService(userRepo, authService, mailer, cfg.BaseURL, log)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	marketplaceService := service.NewMarketplaceService(categoryRepo, reviewRepo, commissionRepo, productRepo)
	checkoutService := service.NewCheckoutService(
		db, paypalClient,
		productRepo, orderRepo, paymentRepo, userRepo,
		mailer, log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(authService, userService, catalogService, marketplaceService, checkoutService)

	log.WithField("addr", serverAddr).Info("Starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}
