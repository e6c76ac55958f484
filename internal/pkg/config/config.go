package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeout, schedules)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string `envconfig:"JWT_ISSUER" default:""`
}

type CookieConfig struct {
	Domain   string        `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool          `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string        `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
	CartTTL  time.Duration `envconfig:"COOKIE_CART_TTL" default:"720h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers           []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	OrderMaterialized string   `envconfig:"KAFKA_TOPIC_ORDER_MATERIALIZED" default:"order.materialized"`
	OrderShipped      string   `envconfig:"KAFKA_TOPIC_ORDER_SHIPPED" default:"order.shipped"`
}

type PaymentConfig struct {
	APIBaseURL       string        `envconfig:"PAYMENT_API_BASE_URL" required:"true"`
	APIKey           string        `envconfig:"PAYMENT_API_KEY" required:"true"`
	WebhookSecret    string        `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	SignatureMaxSkew time.Duration `envconfig:"PAYMENT_SIGNATURE_MAX_SKEW" default:"5m"`
	RequestTimeout   time.Duration `envconfig:"PAYMENT_REQUEST_TIMEOUT" default:"10s"`
	Currency         string        `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	SuccessURL       string        `envconfig:"PAYMENT_SUCCESS_URL" default:"http://localhost:3000/checkout/success"`
	CancelURL        string        `envconfig:"PAYMENT_CANCEL_URL" default:"http://localhost:3000/cart"`
	EventLockTTL     time.Duration `envconfig:"PAYMENT_EVENT_LOCK_TTL" default:"30s"`
}

type CheckoutConfig struct {
	HoldMinutes          int           `envconfig:"CHECKOUT_HOLD_MINUTES" default:"10"`
	ReservationRetention time.Duration `envconfig:"CHECKOUT_RESERVATION_RETENTION" default:"168h"`
	EventRetention       time.Duration `envconfig:"CHECKOUT_EVENT_RETENTION" default:"720h"`
	MaxCartItems         int           `envconfig:"CHECKOUT_MAX_CART_ITEMS" default:"50"`
}

type WorkerConfig struct {
	Enabled          bool   `envconfig:"WORKER_ENABLED" default:"true"`
	Concurrency      int    `envconfig:"WORKER_CONCURRENCY" default:"4"`
	SweepSpec        string `envconfig:"WORKER_SWEEP_SPEC" default:"@every 1m"`
	PurgeSpec        string `envconfig:"WORKER_PURGE_SPEC" default:"@every 1h"`
	PruneEventsSpec  string `envconfig:"WORKER_PRUNE_EVENTS_SPEC" default:"@every 24h"`
	RelaySpec        string `envconfig:"WORKER_RELAY_SPEC" default:"@every 15s"`
	RelayBatchSize   int    `envconfig:"WORKER_RELAY_BATCH_SIZE" default:"50"`
	RelayMaxAttempts int    `envconfig:"WORKER_RELAY_MAX_ATTEMPTS" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c CheckoutConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldMinutes) * time.Minute
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Checkout.HoldMinutes <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_HOLD_MINUTES must be > 0")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "cardshop-test",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
			CartTTL:  24 * time.Hour,
		},
		Payment: PaymentConfig{
			APIBaseURL:       "http://localhost:12111",
			APIKey:           "sk_test",
			WebhookSecret:    "whsec_test",
			SignatureMaxSkew: 5 * time.Minute,
			RequestTimeout:   2 * time.Second,
			Currency:         "usd",
			SuccessURL:       "http://localhost:3000/checkout/success",
			CancelURL:        "http://localhost:3000/cart",
			EventLockTTL:     30 * time.Second,
		},
		Checkout: CheckoutConfig{
			HoldMinutes:          10,
			ReservationRetention: 168 * time.Hour,
			EventRetention:       720 * time.Hour,
			MaxCartItems:         50,
		},
		Worker: WorkerConfig{
			Enabled: false,
		},
	}
}
