package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/hotelworks/room-engine/config"
	"github.com/hotelworks/room-engine/internal/consumer"
	"github.com/hotelworks/room-engine/internal/handler"
	"github.com/hotelworks/room-engine/internal/middleware"
	"github.com/hotelworks/room-engine/internal/repository"
	"github.com/hotelworks/room-engine/internal/service"
	"github.com/hotelworks/room-engine/pkg/cache"
	"github.com/hotelworks/room-engine/pkg/database"
	"github.com/hotelworks/room-engine/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: publish booking lifecycle events, consume housekeeping toggles
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewHousekeepingConsumer(db).Start(msgs)

	// Optional Redis cache for front-desk stats
	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		statsCache, err = cache.New(cfg.RedisAddr, 30*time.Second)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer statsCache.Close()
	}

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	guestRepo := repository.NewGuestRepository(db)

	// Services
	checker := service.NewOverlapChecker(bookingRepo)
	lifecycleSvc := service.NewLifecycleService(bookingRepo, roomRepo, guestRepo, checker, publisher)
	availabilitySvc := service.NewAvailabilityService(roomRepo, bookingRepo)
	frontDeskSvc := service.NewFrontDeskService(roomRepo, bookingRepo, statsCache)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "room-engine"})
	})

	handler.NewBookingHandler(lifecycleSvc).RegisterRoutes(e)
	handler.NewRoomHandler(availabilitySvc, roomRepo).RegisterRoutes(e)
	handler.NewFrontDeskHandler(frontDeskSvc).RegisterRoutes(e)

	log.Printf("Room Engine starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
