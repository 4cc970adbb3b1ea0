package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8080"
	defaultReminderSchedule = "0 8 * * *"
	defaultReminderLeadDays = 3
	minSecretKeyLength      = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port              string
	DBPath            string
	DBLogLevel        string
	DBWAL             bool
	SecretKey         string
	Location          *time.Location
	CookieSecure      bool
	ReminderSchedule  string
	ReminderLeadDays  int
	ReminderFertility bool
	TelegramBotToken  string
	TelegramChatID    string
}

// TelegramEnabled reports whether both Telegram settings are present.
func (cfg Config) TelegramEnabled() bool {
	return cfg.TelegramBotToken != "" && cfg.TelegramChatID != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	leadDays, err := resolveReminderLeadDays()
	if err != nil {
		return Config{}, err
	}
	dbLogLevel, err := resolveDBLogLevel()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:              port,
		DBPath:            getEnv("DB_PATH", filepath.Join("data", "saukhya.db")),
		DBLogLevel:        dbLogLevel,
		DBWAL:             resolveBool("DB_WAL", true),
		SecretKey:         secretKey,
		Location:          loadLocation(getEnv("TZ", "UTC")),
		CookieSecure:      resolveCookieSecure(),
		ReminderSchedule:  getEnv("REMINDER_SCHEDULE", defaultReminderSchedule),
		ReminderLeadDays:  leadDays,
		ReminderFertility: resolveBool("REMINDER_NOTIFY_FERTILITY", false),
		TelegramBotToken:  strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:    strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
	}, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveCookieSecure() bool {
	return resolveBool("COOKIE_SECURE", false)
}

func resolveBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s %q, using %t", key, raw, fallback)
		return fallback
	}
	return value
}

func resolveDBLogLevel() (string, error) {
	level := strings.ToLower(getEnv("DB_LOG_LEVEL", "warn"))
	switch level {
	case "silent", "error", "warn", "info":
		return level, nil
	default:
		return "", fmt.Errorf("invalid DB_LOG_LEVEL %q", level)
	}
}

func resolveReminderLeadDays() (int, error) {
	raw := strings.TrimSpace(os.Getenv("REMINDER_LEAD_DAYS"))
	if raw == "" {
		return defaultReminderLeadDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 || days > 14 {
		return 0, fmt.Errorf("invalid REMINDER_LEAD_DAYS %q", raw)
	}
	return days, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
