package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fieldservice/cmd"
	httpin "fieldservice/internal/adapters/in/http"
	"fieldservice/internal/adapters/out/postgres/changeeventrepo"
	"fieldservice/internal/adapters/out/postgres/deliverylogrepo"
	"fieldservice/internal/adapters/out/postgres/digestrepo"
	"fieldservice/internal/adapters/out/postgres/directoryrepo"
	"fieldservice/internal/adapters/out/postgres/jobrepo"
	"fieldservice/internal/adapters/out/postgres/notificationrepo"
	"fieldservice/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	loc, err := time.LoadLocation(configs.TimeZone)
	if err != nil {
		log.Fatalf("Invalid time zone %q: %v", configs.TimeZone, err)
	}

	db := connectDatabase(configs)
	migrateDatabase(db)

	app, err := cmd.NewCompositionRoot(configs, db, loc)
	if err != nil {
		log.Fatalf("Failed to create composition root: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := createJobManager(&app, configs, loc, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		SMTPHost:                 goDotEnvVariable("SMTP_HOST"),
		SMTPPort:                 goDotEnvVariable("SMTP_PORT"),
		SMTPUsername:             os.Getenv("SMTP_USERNAME"),
		SMTPPassword:             os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:                 goDotEnvVariable("SMTP_FROM"),
		TimeZone:                 goDotEnvVariable("TIME_ZONE"),
		DigestMorningCron:        envOrDefault("DIGEST_MORNING_CRON", "0 7 * * *"),
		DigestMiddayCron:         envOrDefault("DIGEST_MIDDAY_CRON", "30 12 * * *"),
		DigestEveningCron:        envOrDefault("DIGEST_EVENING_CRON", "30 17 * * *"),
		NotificationPollInterval: envOrDefault("NOTIFICATION_POLL_INTERVAL", "2m"),
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

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func connectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&jobrepo.JobDTO{},
		&changeeventrepo.ChangeEventDTO{},
		&digestrepo.DigestDTO{},
		&notificationrepo.NotificationDTO{},
		&deliverylogrepo.DeliveryLogDTO{},
		&directoryrepo.TechnicianDTO{},
		&directoryrepo.CustomerDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func createJobManager(
	app *cmd.CompositionRoot, configs cmd.Config, loc *time.Location, logger *slog.Logger,
) *jobs.JobManager {
	pollInterval, err := time.ParseDuration(configs.NotificationPollInterval)
	if err != nil {
		log.Fatalf("Invalid notification poll interval %q: %v", configs.NotificationPollInterval, err)
	}

	schedule := jobs.DigestSchedule{
		Morning: configs.DigestMorningCron,
		Midday:  configs.DigestMiddayCron,
		Evening: configs.DigestEveningCron,
	}

	return jobs.NewJobManager(
		app.CreateSendTechnicianDigestsCommandHandler(),
		app.CreateSendCustomerNotificationsCommandHandler(),
		schedule,
		pollInterval,
		loc,
		logger,
	)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateJobCommandHandler(),
		app.CreateAssignTechnicianCommandHandler(),
		app.CreateCommitScheduleEditsCommandHandler(),
		app.CreateGetDayScheduleQueryHandler(),
		app.CreateGetDeliveryLogQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
