package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/checkout"
	"github.com/shopbee/backend/internal/config"
	"github.com/shopbee/backend/internal/es"
	"github.com/shopbee/backend/internal/events"
	"github.com/shopbee/backend/internal/handlers"
	"github.com/shopbee/backend/internal/logging"
	loggingmw "github.com/shopbee/backend/internal/middleware/logging"
	"github.com/shopbee/backend/internal/orders"
	"github.com/shopbee/backend/internal/service/token"
	httpserver "github.com/shopbee/backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	brokers := []string{configuration.KAFKA_ADDRESS}
	topics := []string{"user_events", "cart_events", "product_events", "order_events"}
	prod, err := events.NewProducer(brokers, topics)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	tokens := &token.Service{
		DB:            db,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	carts := cart.NewRegistry()
	orderService := &orders.Service{DB: db, Producer: prod}
	submitter := checkout.NewSubmitter(orderService)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			DB:        db,
			Tokens:    tokens,
			Producer:  prod,
			Carts:     carts,
			Submitter: submitter,
		},
		ProductHandler: &handlers.ProductHandler{DB: db},
		CartHandler:    &handlers.CartHandler{DB: db, Carts: carts, Producer: prod},
		CheckoutHandler: &handlers.CheckoutHandler{
			Carts:     carts,
			Submitter: submitter,
			Orders:    orderService,
		},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: "product"},
		AdminHandler:  &handlers.AdminHandler{DB: db, Producer: prod},
		Tokens:        tokens,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
