package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	SERVICE_NAME                  string
	LOG_LEVEL                     string
	WORKER_POOL                   string
	DB_URI                        string
	DB_NAME                       string
	DB_MAXPOOLSIZE                uint64
	DB_MINPOOLSIZE                uint64
	DB_MAXIDLETIME_INMINUTES      int
	REDIS_ADDR                    string
	REDIS_PASSWORD                string
	REDIS_DB                      int
	REDIS_ENABLE_TLS              bool
	REDIS_CONNECT_TIMEOUT_SECONDS int
	REDIS_CERT_CONTENT            string
	PROJECT_ID                    string
	PUBSUB_NOTIFICATION_TOPIC     string
	PUBSUB_APPLICATION_SUB        string
	KAFKA_SERVER                  string
	KAFKA_SECURITY_PROTOCOL       string
	KAFKA_SASL_MECHANISM          string
	KAFKA_SASL_USERNAME           string
	KAFKA_SASL_PASSWORD           string
	KAFKA_SESSION_TIMEOUT_MS      int
	KAFKA_CLIENT_ID               string
	KAFKA_TOPIC                   string
	OTEL_URL                      string
	TIMEOUT_IN_SECONDS            int
)

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	EnableTLS      bool
	ConnectTimeout time.Duration
	CertContent    string
}

// PubSubConfig represents the Pub/Sub configuration
type PubSubConfig struct {
	ProjectID         string
	NotificationTopic string
	ApplicationSub    string
}

// LoadEnv loads the environment variables from a .env file
func LoadEnv() error {
	err := godotenv.Load("./../.env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	LoadEnvValues()

	return nil
}

func LoadEnvValues() {
	SERVICE_NAME = GetEnv("SERVICE_NAME", "creditlimit")
	LOG_LEVEL = GetEnv("LOG_LEVEL", "INFO")
	WORKER_POOL = GetEnv("WORKER_POOL", "5")
	DB_URI = GetEnv("DB_URI", "mongodb://localhost:27017")
	DB_NAME = GetEnv("DB_NAME", "CreditLimitDemo")
	DB_MAXPOOLSIZE_Str := GetEnv("DB_MAXPOOLSIZE", "100")
	DB_MINPOOLSIZE_Str := GetEnv("DB_MINPOOLSIZE", "10")
	DB_MAXIDLETIME_INMINUTES_Str := GetEnv("DB_MAXIDLETIME_INMINUTES", "5")
	DB_MAXPOOLSIZE, _ = strconv.ParseUint(DB_MAXPOOLSIZE_Str, 10, 64)
	DB_MINPOOLSIZE, _ = strconv.ParseUint(DB_MINPOOLSIZE_Str, 10, 64)
	DB_MAXIDLETIME_INMINUTES, _ = strconv.Atoi(DB_MAXIDLETIME_INMINUTES_Str)
	REDIS_ADDR = GetEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = GetEnv("REDIS_PASSWORD", "")
	REDIS_DB_Str := GetEnv("REDIS_DB", "0")
	REDIS_DB, _ = strconv.Atoi(REDIS_DB_Str)
	REDIS_ENABLE_TLS, _ = strconv.ParseBool(GetEnv("REDIS_ENABLE_TLS", "false"))
	REDIS_CONNECT_TIMEOUT_SECONDS_Str := GetEnv("REDIS_CONNECT_TIMEOUT_SECONDS", "5")
	REDIS_CONNECT_TIMEOUT_SECONDS, _ = strconv.Atoi(REDIS_CONNECT_TIMEOUT_SECONDS_Str)
	REDIS_CERT_CONTENT = GetEnv("REDIS_CERT_CONTENT", "")
	PROJECT_ID = GetEnv("PROJECT_ID", "")
	PUBSUB_NOTIFICATION_TOPIC = GetEnv("PUBSUB_NOTIFICATION_TOPIC", "glo-isg-dodrio-d-creditlimit-alert-topic")
	PUBSUB_APPLICATION_SUB = GetEnv("PUBSUB_APPLICATION_SUB", "glo-isg-dodrio-d-application-status-sub")
	KAFKA_SERVER = GetEnv("KAFKA_SERVER", "")
	KAFKA_SECURITY_PROTOCOL = GetEnv("KAFKA_SECURITY_PROTOCOL", "")
	KAFKA_SASL_MECHANISM = GetEnv("KAFKA_SASL_MECHANISM", "")
	KAFKA_SASL_USERNAME = GetEnv("KAFKA_SASL_USERNAME", "")
	KAFKA_SASL_PASSWORD = GetEnv("KAFKA_SASL_PASSWORD", "")
	KAFKA_SESSION_TIMEOUT_MS, _ = strconv.Atoi(GetEnv("KAFKA_SESSION_TIMEOUT_MS", ""))
	KAFKA_CLIENT_ID = GetEnv("KAFKA_CLIENT_ID", "")
	KAFKA_TOPIC = GetEnv("KAFKA_TOPIC", "")
	OTEL_URL = GetEnv("OTEL_URL", "")
	TIMEOUT_IN_SECONDS_str := GetEnv("TIMEOUT_IN_SECONDS", "20")
	TIMEOUT_IN_SECONDS, _ = strconv.Atoi(TIMEOUT_IN_SECONDS_str)
}

// GetRedisConfig returns a RedisConfig struct populated from environment variables
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           REDIS_ADDR,
		Password:       REDIS_PASSWORD,
		DB:             REDIS_DB,
		EnableTLS:      REDIS_ENABLE_TLS,
		ConnectTimeout: time.Duration(REDIS_CONNECT_TIMEOUT_SECONDS) * time.Second,
		CertContent:    REDIS_CERT_CONTENT,
	}
}

// GetPubSubConfig returns a PubSubConfig struct populated from environment variables
func GetPubSubConfig() PubSubConfig {
	return PubSubConfig{
		ProjectID:         PROJECT_ID,
		NotificationTopic: PUBSUB_NOTIFICATION_TOPIC,
		ApplicationSub:    PUBSUB_APPLICATION_SUB,
	}
}

// GetEnv fetches the value of an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
