package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	CORSOrigins []string

	DB    DBConfig
	Redis string
	Kafka string

	JWTSecret string

	Notify NotifyConfig

	// Overstay sweep
	OverstayInterval      time.Duration
	OverstayThreshold     time.Duration
	OverstayIncludeGuests bool

	// deleteAt purge
	PurgeInterval time.Duration

	// Address the worker serves /metrics on.
	WorkerMetricsAddr string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type NotifyConfig struct {
	Transport  string // "smtp" | "kafka" | "log"
	Sender     string
	WifiTo     string
	AdminTo    string
	SecurityCC string
	Timezone   string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

const (
	TransportSMTP  = "smtp"
	TransportKafka = "kafka"
	TransportLog   = "log"
)

func FromEnv() Config {
	transport := strings.ToLower(getenvDefault("NOTIFY_TRANSPORT", TransportLog))
	switch transport {
	case TransportSMTP, TransportKafka, TransportLog:
	default:
		// fail-soft: unknown transport only logs
		transport = TransportLog
	}

	return Config{
		Port:        getenvDefault("PORT", "5000"),
		CORSOrigins: splitCSV(getenvDefault("CORS_ORIGINS", "http://localhost:3000")),

		DB: DBConfig{
			Host:     getenvDefault("DB_HOST", "localhost"),
			User:     getenvDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenvDefault("DB_NAME", "visitordb"),
			Port:     getenvDefault("DB_PORT", "5432"),
			SSLMode:  getenvDefault("DB_SSLMODE", "disable"),
		},
		Redis: os.Getenv("REDIS_ADDR"),
		Kafka: os.Getenv("KAFKA_BROKER"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		Notify: NotifyConfig{
			Transport:  transport,
			Sender:     getenvDefault("NOTIFY_SENDER", "DoNotReply@vms.local"),
			WifiTo:     getenvDefault("NOTIFY_WIFI_TO", "guestwifi@vms.local"),
			AdminTo:    getenvDefault("NOTIFY_ADMIN_TO", "admin.helpdesk@vms.local"),
			SecurityCC: getenvDefault("NOTIFY_SECURITY_CC", "security@vms.local"),
			Timezone:   getenvDefault("NOTIFY_TIMEZONE", "Asia/Kolkata"),
			SMTPHost:   os.Getenv("SMTP_HOST"),
			SMTPPort:   getenvDefault("SMTP_PORT", "587"),
			SMTPUser:   os.Getenv("SMTP_USER"),
			SMTPPass:   os.Getenv("SMTP_PASS"),
		},

		OverstayInterval:      getenvDuration("OVERSTAY_INTERVAL", 60*time.Second),
		OverstayThreshold:     getenvDuration("OVERSTAY_THRESHOLD", 90*time.Minute),
		OverstayIncludeGuests: getenvBool("OVERSTAY_INCLUDE_GUESTS"),

		PurgeInterval: getenvDuration("PURGE_INTERVAL", time.Hour),

		WorkerMetricsAddr: getenvDefault("WORKER_METRICS_ADDR", ":9091"),
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getenvBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
