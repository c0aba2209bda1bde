package cmd

// Config carries the environment-provided settings of the service.
// DigestMorningCron, DigestMiddayCron, and DigestEveningCron are cron
// expressions evaluated in TimeZone; NotificationPollInterval is a Go
// duration string.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TimeZone                 string
	DigestMorningCron        string
	DigestMiddayCron         string
	DigestEveningCron        string
	NotificationPollInterval string
}
