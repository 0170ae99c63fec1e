package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Storage StorageConfig
	SQLite  SQLiteConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Ledger  LedgerConfig
}

type ServerConfig struct {
	AppEnv      string
	GRPCPort    string
	MetricsPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StorageConfig struct {
	// Driver is one of "sqlite", "redis" or "memory".
	Driver string
}

type SQLiteConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	BusyTimeoutMS   int
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	NotificationTopic string
	IntakeTopic       string
	GroupID           string
}

type LedgerConfig struct {
	NodeID          int64
	BusinessName    string
	Currency        string
	Language        string
	LocalesDir      string
	TimeZone        string
	DeliveryCheckAt string
	LockAttempts    int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			GRPCPort:    getEnv("GRPC_PORT", ":8090"),
			MetricsPort: getEnv("METRICS_PORT", ":9090"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
		},
		SQLite: SQLiteConfig{
			Path:            getEnv("SQLITE_PATH", "./data/ledger.db"),
			MaxOpenConns:    getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("SQLITE_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvInt("SQLITE_CONN_MAX_LIFETIME", 3600),
			BusyTimeoutMS:   getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled:           getEnvBool("KAFKA_ENABLED", false),
			Brokers:           getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			NotificationTopic: getEnv("KAFKA_TOPIC_NOTIFICATIONS", "ledger.notifications"),
			IntakeTopic:       getEnv("KAFKA_TOPIC_DELIVERIES", "ledger.deliveries"),
			GroupID:           getEnv("KAFKA_GROUP_LEDGER", "ledger"),
		},
		Ledger: LedgerConfig{
			NodeID:          int64(getEnvInt("LEDGER_NODE_ID", 1)),
			BusinessName:    getEnv("LEDGER_BUSINESS_NAME", "Nishat Beverages"),
			Currency:        getEnv("LEDGER_CURRENCY", "PKR"),
			Language:        getEnv("LEDGER_LANGUAGE", "en"),
			LocalesDir:      getEnv("LEDGER_LOCALES_DIR", ""),
			TimeZone:        getEnv("LEDGER_TIME_ZONE", "Local"),
			DeliveryCheckAt: getEnv("LEDGER_DELIVERY_CHECK_AT", "00:05"),
			LockAttempts:    getEnvInt("LEDGER_LOCK_ATTEMPTS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
