package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ServicePort          string
	MetricsPort          string
	Environment          string
	PublicBaseURL        string
	UploadDir            string
	MongoDBConfig        MongoDBConfig
	JWTConfig            JWTConfig
	KafkaConfig          KafkaConfig
	RedisConfig          RedisConfig
	TracingConfig        TracingConfig
	BcryptCost           int
	SequenceSyncInterval time.Duration
}

type MongoDBConfig struct {
	URI    string
	DBHost string
	DBPort string
	DBName string
}

type JWTConfig struct {
	Secret          string
	PreviousSecrets []string
	// TTL of zero mints tokens without an exp claim.
	TTL time.Duration
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
	WriteTimeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:   getEnv("SERVICE_PORT", "4000"),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		UploadDir:     getEnv("UPLOAD_DIR", "upload/images"),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("DB_URI"),
			DBHost: getEnv("DB_HOST", "localhost"),
			DBPort: getEnv("DB_PORT", "27017"),
			DBName: getEnv("DB_NAME", "e-commerce"),
		},
		JWTConfig: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			PreviousSecrets: splitList(os.Getenv("JWT_PREVIOUS_SECRETS")),
			TTL:             getDuration("JWT_TTL", 0),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "product-events"),
			WriteTimeout:  getDuration("BROKER_WRITE_TIMEOUT", 5*time.Second),
		},
		RedisConfig: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      getDuration("CACHE_TTL", time.Minute),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		BcryptCost:           bcrypt.DefaultCost,
		SequenceSyncInterval: getDuration("SEQUENCE_SYNC_INTERVAL", time.Minute),
	}

	if conf.PublicBaseURL == "" {
		conf.PublicBaseURL = "http://localhost:" + conf.ServicePort
	}

	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err == nil {
		conf.RedisConfig.DB = redisDB
	}

	bcryptCost, err := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	if err == nil && bcryptCost >= bcrypt.MinCost && bcryptCost <= bcrypt.MaxCost {
		conf.BcryptCost = bcryptCost
	}

	return &conf
}

// MongoURI prefers DB_URI and falls back to host and port.
func (c MongoDBConfig) MongoURI() string {
	if c.URI != "" {
		return c.URI
	}

	return "mongodb://" + c.DBHost + ":" + c.DBPort
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}
