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
	// EnvPrefix is applied by envconfig when resolving variables.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "VENDORHUB_DB_DSN"
	EnvDBHost = "VENDORHUB_DB_HOST"
	EnvDBUser = "VENDORHUB_DB_USER"
	EnvDBName = "VENDORHUB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Checkout     CheckoutConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENDORHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"VENDORHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENDORHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENDORHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VENDORHUB_DB_DSN"`
	Driver string `envconfig:"VENDORHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENDORHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"VENDORHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENDORHUB_DB_USER"`
	LegacyPassword string `envconfig:"VENDORHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENDORHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENDORHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENDORHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENDORHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENDORHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDORHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDORHUB_REDIS_URL"`
	Address      string        `envconfig:"VENDORHUB_REDIS_ADDR"`
	Password     string        `envconfig:"VENDORHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDORHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDORHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENDORHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENDORHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDORHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDORHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VENDORHUB_AUTO_MIGRATE" default:"false"`
}

// CheckoutConfig carries marketplace-wide defaults applied when an invoice or
// product does not specify its own rates. Rates are percentages in [0,100].
type CheckoutConfig struct {
	DefaultTaxRatePercent        string `envconfig:"VENDORHUB_CHECKOUT_TAX_RATE_PERCENT" default:"0"`
	DefaultCommissionRatePercent string `envconfig:"VENDORHUB_CHECKOUT_COMMISSION_RATE_PERCENT" default:"92"`
}

// DefaultTaxRate returns the configured tax rate as a fraction (0.08 for 8%).
func (c CheckoutConfig) DefaultTaxRate() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.DefaultTaxRatePercent))
	if err != nil {
		return decimal.Zero
	}
	return rate.Div(decimal.NewFromInt(100))
}

// DefaultTaxPercent returns the configured tax rate as a percentage in [0,100].
func (c CheckoutConfig) DefaultTaxPercent() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.DefaultTaxRatePercent))
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// DefaultCommissionRate returns the merchant-retained percentage in [0,100].
func (c CheckoutConfig) DefaultCommissionRate() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.DefaultCommissionRatePercent))
	if err != nil {
		return decimal.NewFromInt(100)
	}
	return rate
}

func (c CheckoutConfig) validate() error {
	tax, err := decimal.NewFromString(strings.TrimSpace(c.DefaultTaxRatePercent))
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", c.DefaultTaxRatePercent, err)
	}
	if tax.IsNegative() || tax.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("tax rate %q outside [0,100]", c.DefaultTaxRatePercent)
	}
	commission, err := decimal.NewFromString(strings.TrimSpace(c.DefaultCommissionRatePercent))
	if err != nil {
		return fmt.Errorf("invalid commission rate %q: %w", c.DefaultCommissionRatePercent, err)
	}
	if commission.IsNegative() || commission.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("commission rate %q outside [0,100]", c.DefaultCommissionRatePercent)
	}
	return nil
}

type RateLimitConfig struct {
	RequestsPerMinute int64 `envconfig:"VENDORHUB_RATE_LIMIT_PER_MINUTE" default:"120"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VENDORHUB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
