package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/cache"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/config"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/db"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/httpserver"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/logging"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/notify"
	accountrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/account"
	addressrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/address"
	cartrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/cart"
	orderrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/order"
	productrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/product"
	shippingrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/shipping"
	tokenrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/token"
	userrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/user"
	wishlistrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/wishlist"
	authsvc "github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/auth"
	cartsvc "github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/cart"
	identitysvc "github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/identity"
	ordersvc "github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/order"
	wishlistsvc "github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := logging.New(cfg.Env)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
		MaxConns:     cfg.DBMaxConns,
		ConnIdleTime: cfg.DBConnIdleTime,
		ConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer dbpool.Close()

	rdb := cache.New(cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	}

	publisher, err := notify.NewPublisher(cfg.AMQPURL, notify.OrderQueue, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect to broker")
	}
	defer publisher.Close()

	userRepo := userrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	shippingRepo := shippingrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool)
	addressRepo := addressrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	accountRepo := accountrepo.NewPostgres(dbpool, logger)

	identityResolver := identitysvc.New(userRepo, logger)
	authService := authsvc.New(userRepo, accountRepo, tokenRepo, logger)
	cartService := cartsvc.New(cartRepo, productRepo, rdb, logger)
	wishlistService := wishlistsvc.New(wishlistRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, productRepo, addressRepo, shippingRepo, userRepo, identityResolver, publisher, rdb, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:      authService,
		Cart:      cartService,
		Wishlist:  wishlistService,
		Orders:    orderService,
		Products:  productRepo,
		Shipping:  shippingRepo,
		Addresses: addressRepo,
		Logger:    logger,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
}
