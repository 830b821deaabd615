package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/amqp"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	metrics.Register()

	gormDB := mustGormOpen(configs)
	mustAutoMigrate(gormDB)

	carrierClient, err := carrier.NewClient(configs.CarrierAPIURL, configs.CarrierAPIKey)
	if err != nil {
		log.Fatalf("Failed to create carrier client: %v", err)
	}

	amqpClient, err := amqp.Dial(configs.AMQPURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	notifier, err := amqp.NewNotifier(amqpClient, configs.NotificationsQueue)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, carrierClient, notifier, logger)

	jobManager := jobs.NewJobManager(
		app.CreateReconcileShipmentsCommandHandler(),
		configs.ReconcileCronSpec,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	go startWebServer(app, configs.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	jobManager.StopAll()
	amqpClient.Close()
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		CarrierAPIURL:      goDotEnvVariable("CARRIER_API_URL"),
		CarrierAPIKey:      goDotEnvVariable("CARRIER_API_KEY"),
		ReconcileCronSpec:  goDotEnvVariable("RECONCILE_CRON_SPEC"),
		AMQPURL:            goDotEnvVariable("AMQP_URL"),
		NotificationsQueue: goDotEnvVariable("NOTIFICATIONS_QUEUE"),
	}
	if config.ReconcileCronSpec == "" {
		config.ReconcileCronSpec = "0 0 * * * *"
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustAutoMigrate(gormDB *gorm.DB) {
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := httpin.NewServer(
		app.CreateRefreshOrderTrackingCommandHandler(),
		app.CreateGetOrderTrackingQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
