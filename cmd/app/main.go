package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"notifier/cmd"
	httpin "notifier/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var gormDB *gorm.DB
	if configs.SourceType == cmd.SourceTypePostgres {
		gormDB = mustConnectDB(configs)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	ctx := context.Background()
	if err = app.Channel().Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to WhatsApp session: %v", err)
	}
	defer func() {
		_ = app.Channel().Shutdown()
	}()

	jobManager := app.CreateJobManager()

	if configs.RunOnce {
		jobManager.RunOnce(ctx)
		return
	}

	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            envOr("HTTP_PORT", "8080"),
		SourceType:          envOr("SOURCE_TYPE", cmd.SourceTypeCSV),
		CSVPath:             os.Getenv("CSV_PATH"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           envOr("DB_SSLMODE", "disable"),
		CountryCode:         os.Getenv("COUNTRY_CODE"),
		Signature:           os.Getenv("SIGNATURE"),
		PollEnabled:         envBool("POLL_ENABLED"),
		AttachmentPath:      os.Getenv("ATTACHMENT_PATH"),
		PassInterval:        envDuration("PASS_INTERVAL"),
		RunOnce:             envBool("RUN_ONCE"),
		WhatsAppDebuggerURL: os.Getenv("WHATSAPP_DEBUGGER_URL"),
		WhatsAppHeadless:    envBool("WHATSAPP_HEADLESS"),
		ChannelTimeout:      envDuration("CHANNEL_TIMEOUT"),
	}
	return config
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}

func envDuration(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	if app.HasDatabase() {
		server := httpin.NewServer(
			app.CreateGetPendingRowsQueryHandler(),
			app.CreateGetDeliveryReportQueryHandler(),
		)
		server.RegisterRoutes(e)
	} else {
		e.GET("/health", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
