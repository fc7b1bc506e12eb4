package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Shipping     ShippingConfig
	Checkout     CheckoutConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MOTOPECAS_APP_ENV" required:"true"`
	Port         string `envconfig:"MOTOPECAS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MOTOPECAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOTOPECAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MOTOPECAS_DB_DSN"`
	Driver string `envconfig:"MOTOPECAS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MOTOPECAS_DB_HOST"`
	Port     int    `envconfig:"MOTOPECAS_DB_PORT" default:"5432"`
	User     string `envconfig:"MOTOPECAS_DB_USER"`
	Password string `envconfig:"MOTOPECAS_DB_PASSWORD"`
	Name     string `envconfig:"MOTOPECAS_DB_NAME"`
	SSLMode  string `envconfig:"MOTOPECAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOTOPECAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOTOPECAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOTOPECAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOTOPECAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOTOPECAS_REDIS_URL"`
	Address      string        `envconfig:"MOTOPECAS_REDIS_ADDR"`
	Password     string        `envconfig:"MOTOPECAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOTOPECAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOTOPECAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOTOPECAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOTOPECAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOTOPECAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOTOPECAS_REDIS_WRITE_TIMEOUT" default:"5s"`
	CartTTL      time.Duration `envconfig:"MOTOPECAS_REDIS_CART_TTL" default:"720h"`
}

// ShippingConfig configures the carrier rate-quote integration.
type ShippingConfig struct {
	CarrierURL       string        `envconfig:"MOTOPECAS_SHIPPING_CARRIER_URL" default:"https://melhorenvio.com.br/api/v2/me/shipment/calculate"`
	CarrierToken     string        `envconfig:"MOTOPECAS_SHIPPING_CARRIER_TOKEN"`
	CarrierTimeout   time.Duration `envconfig:"MOTOPECAS_SHIPPING_CARRIER_TIMEOUT" default:"10s"`
	OriginPostalCode string        `envconfig:"MOTOPECAS_SHIPPING_ORIGIN_CEP" default:"29100-010"`
	ServiceID        int           `envconfig:"MOTOPECAS_SHIPPING_SERVICE_ID" default:"1"`

	QuoteRateWindow time.Duration `envconfig:"MOTOPECAS_SHIPPING_QUOTE_RATE_WINDOW" default:"1m"`
	QuoteRateLimit  int64         `envconfig:"MOTOPECAS_SHIPPING_QUOTE_RATE_LIMIT" default:"20"`
}

// CheckoutConfig holds the order acceptance rules.
type CheckoutConfig struct {
	MinimumOrderValue string `envconfig:"MOTOPECAS_CHECKOUT_MIN_ORDER" default:"40.00"`
	PixIncentivePct   string `envconfig:"MOTOPECAS_CHECKOUT_PIX_INCENTIVE_PCT" default:"5"`
}

// MinimumOrder parses the configured minimum order value.
func (c CheckoutConfig) MinimumOrder() decimal.Decimal {
	if v, err := decimal.NewFromString(c.MinimumOrderValue); err == nil {
		return v
	}
	return decimal.NewFromInt(40)
}

// PixIncentiveRate returns the instant-payment incentive as a fraction (5 -> 0.05).
func (c CheckoutConfig) PixIncentiveRate() decimal.Decimal {
	if v, err := decimal.NewFromString(c.PixIncentivePct); err == nil {
		return v.Div(decimal.NewFromInt(100))
	}
	return decimal.New(5, -2)
}

type AdminConfig struct {
	Token string `envconfig:"MOTOPECAS_ADMIN_TOKEN"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MOTOPECAS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MOTOPECAS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		"MOTOPECAS_DB_HOST": db.Host,
		"MOTOPECAS_DB_USER": db.User,
		"MOTOPECAS_DB_NAME": db.Name,
	}
	for _, env := range []string{"MOTOPECAS_DB_HOST", "MOTOPECAS_DB_USER", "MOTOPECAS_DB_NAME"} {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either MOTOPECAS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
