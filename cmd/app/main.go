package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jpirumvaa/fulfillment-system/cmd"
	httpin "github.com/jpirumvaa/fulfillment-system/internal/adapters/in/http"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/orderrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/productrepo"
	"github.com/jpirumvaa/fulfillment-system/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDatabase(configs)
	mustMigrateDatabase(gormDB)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error composing application: %v", err)
	}
	defer root.Close()

	if err := root.Load(context.Background()); err != nil {
		log.Fatalf("Error recovering state from database: %v", err)
	}

	if configs.FulfillmentSweepCron != "" {
		sweepJob := root.CreateFulfillmentSweepJob()
		if err := sweepJob.Start(); err != nil {
			log.Fatalf("Error starting fulfillment sweep job: %v", err)
		}
		defer sweepJob.Stop()
	}

	startWebServer(root.CreateServer(), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		PackageMassCeilingGrams: goDotEnvIntVariable("PACKAGE_MASS_CEILING_GRAMS"),
		PackingStrategy:         goDotEnvVariable("PACKING_STRATEGY"),
		AmqpURL:                 goDotEnvVariable("AMQP_URL"),
		FulfillmentSweepCron:    goDotEnvVariable("FULFILLMENT_SWEEP_CRON"),
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

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s as integer", key)
	}
	return value
}

func mustConnectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(server *httpin.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
