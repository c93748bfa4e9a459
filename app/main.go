package main

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"salesman/config"
	"salesman/middleware"
	"salesman/services/salesman/delivery"
	"salesman/services/salesman/repository"
	"salesman/services/salesman/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger())

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}
	defer db.Close()

	pool, err := config.BootPool(context.Background())
	if err != nil {
		log.Fatalf("Failed to boot connection pool: %v", err)
		return
	}
	defer pool.Close()

	salesmanRepo := repository.NewSalesmanRepository(pool)
	salesmanUC := usecase.NewSalesmanUseCase(salesmanRepo, config.GetQueryTimeout())

	delivery.NewHealthDelivery(app)
	delivery.NewCodelistDelivery(app)
	delivery.NewSalesmanDelivery(app, salesmanUC)
	app.Use(delivery.RouteNotFound)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
