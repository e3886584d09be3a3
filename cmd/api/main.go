package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/alejandrorivera22/ecom-cart/internal/cache"
	"github.com/alejandrorivera22/ecom-cart/internal/config"
	"github.com/alejandrorivera22/ecom-cart/internal/db"
	"github.com/alejandrorivera22/ecom-cart/internal/httpserver"
	cartrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/cart"
	categoryrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/category"
	customerrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/customer"
	orderrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/order"
	productrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/product"
	authsvc "github.com/alejandrorivera22/ecom-cart/internal/service/auth"
	cartsvc "github.com/alejandrorivera22/ecom-cart/internal/service/cart"
	customersvc "github.com/alejandrorivera22/ecom-cart/internal/service/customer"
	ordersvc "github.com/alejandrorivera22/ecom-cart/internal/service/order"
	orderdetailsvc "github.com/alejandrorivera22/ecom-cart/internal/service/orderdetail"
	productsvc "github.com/alejandrorivera22/ecom-cart/internal/service/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var store cache.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		store = cache.NewRedis(client)
		logger.Printf("using redis cache at %s", cfg.RedisAddr)
	} else {
		store = cache.NewMemory()
		logger.Printf("REDIS_ADDR not set, using in-process cache")
	}

	categoryRepo := categoryrepo.NewPostgres(dbpool)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	customerService := customersvc.New(customerRepo, store, logger)
	productService := productsvc.New(productRepo, categoryRepo, store, logger)
	cartService := cartsvc.New(cartRepo, customerRepo, productRepo, logger)
	orderService := ordersvc.New(orderRepo, customerRepo, store, logger)
	orderDetailService := orderdetailsvc.New(orderRepo, productRepo, store, logger)
	authService := authsvc.New(customerService, cfg.JWTSecret, cfg.JWTTTL)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:         authService,
		Customers:    customerService,
		Products:     productService,
		Carts:        cartService,
		Orders:       orderService,
		OrderDetails: orderDetailService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
