package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"foodorders/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	// DBLockTimeout bounds the wait for a row lock. Zero waits forever.
	DBLockTimeout time.Duration

	LogLevel slog.Level

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr      string
	IdempotencyTTL time.Duration

	ServiceTimeReconcileSchedule string
	Timezone                     *time.Location
}

// LoadConfig reads the .env file at path, when there is one, and then the
// process environment. Variables already set in the environment win over
// the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return configFromEnv()
}

func configFromEnv() (Config, error) {
	cfg := Config{
		HTTPPort:                     envOr("HTTP_PORT", "8080"),
		DBHost:                       envOr("DB_HOST", "localhost"),
		DBPort:                       envOr("DB_PORT", "5432"),
		DBUser:                       envOr("DB_USER", "postgres"),
		DBPassword:                   os.Getenv("DB_PASSWORD"),
		DBName:                       envOr("DB_NAME", "foodorders"),
		DBSslMode:                    envOr("DB_SSLMODE", "disable"),
		KafkaHost:                    os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic:       envOr("KAFKA_ORDER_CHANGED_TOPIC", "orders.changed"),
		RedisAddr:                    os.Getenv("REDIS_ADDR"),
		ServiceTimeReconcileSchedule: envOr("SERVICE_TIME_RECONCILE_SCHEDULE", jobs.DefaultReconciliationSchedule),
	}

	var err, parseErr error
	cfg.DBMaxOpenConns, parseErr = envInt("DB_MAX_OPEN_CONNS", 25)
	err = errors.Join(err, parseErr)
	cfg.DBMaxIdleConns, parseErr = envInt("DB_MAX_IDLE_CONNS", 5)
	err = errors.Join(err, parseErr)
	cfg.DBConnMaxLifetime, parseErr = envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	err = errors.Join(err, parseErr)
	cfg.DBLockTimeout, parseErr = envDuration("DB_LOCK_TIMEOUT", 5*time.Second)
	err = errors.Join(err, parseErr)
	cfg.IdempotencyTTL, parseErr = envDuration("IDEMPOTENCY_TTL", 24*time.Hour)
	err = errors.Join(err, parseErr)

	if parseErr = cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); parseErr != nil {
		err = errors.Join(err, fmt.Errorf("LOG_LEVEL: %w", parseErr))
	}

	cfg.Timezone = time.Local
	if name := os.Getenv("TIMEZONE"); name != "" {
		if cfg.Timezone, parseErr = time.LoadLocation(name); parseErr != nil {
			err = errors.Join(err, fmt.Errorf("TIMEZONE: %w", parseErr))
		}
	}

	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the lib/pq connection URL. lib/pq sends lock_timeout to the server
// as a session parameter.
func (c Config) DSN() string {
	query := url.Values{"sslmode": []string{c.DBSslMode}}
	if c.DBLockTimeout > 0 {
		query.Set("lock_timeout", strconv.FormatInt(c.DBLockTimeout.Milliseconds(), 10))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
