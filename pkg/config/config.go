package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	Pricing PricingConfig
	Session SessionConfig
	Catalog CatalogConfig
	Kitchen KitchenConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	cfg.DB.ensureDriver(cfg.Store.Backend)
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POS_APP_ENV" default:"dev"`
	Port         string `envconfig:"POS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"POS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POS_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"POS_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	// Timezone decides which calendar day "today" is in sales stats.
	Timezone string `envconfig:"POS_TIMEZONE" default:"Asia/Amman"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the key-value medium behind the transaction store.
type StoreConfig struct {
	Backend      string        `envconfig:"POS_STORE_BACKEND" default:"sqlite"`
	Timeout      time.Duration `envconfig:"POS_STORE_TIMEOUT" default:"2s"`
	PersistEmpty bool          `envconfig:"POS_STORE_PERSIST_EMPTY" default:"true"`
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StoreBackendSQLite, StoreBackendPostgres, StoreBackendRedis, StoreBackendMemory:
		return nil
	}
	return fmt.Errorf("%s must be one of %s", EnvStoreBackend, strings.Join(storeBackends, ", "))
}

// Kind returns the normalized backend name.
func (s StoreConfig) Kind() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

type DBConfig struct {
	DSN    string `envconfig:"POS_DB_DSN" default:"pos.db"`
	Driver string `envconfig:"POS_DB_DRIVER"`

	AutoMigrate bool `envconfig:"POS_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"POS_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"POS_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"POS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) ensureDriver(backend string) {
	if db.Driver != "" {
		return
	}
	if strings.EqualFold(backend, StoreBackendPostgres) {
		db.Driver = StoreBackendPostgres
		return
	}
	db.Driver = StoreBackendSQLite
}

type RedisConfig struct {
	URL          string        `envconfig:"POS_REDIS_URL"`
	Address      string        `envconfig:"POS_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"POS_REDIS_PASSWORD"`
	DB           int           `envconfig:"POS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POS_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"POS_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"POS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"POS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type PricingConfig struct {
	TaxRate float64 `envconfig:"POS_TAX_RATE" default:"0.10"`
}

func (p PricingConfig) validate() error {
	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return fmt.Errorf("%s must be in [0, 1), got %v", EnvTaxRate, p.TaxRate)
	}
	return nil
}

type SessionConfig struct {
	RestoreView bool `envconfig:"POS_SESSION_RESTORE_VIEW" default:"false"`
}

type CatalogConfig struct {
	Path string `envconfig:"POS_CATALOG_PATH"`
}

type KitchenConfig struct {
	AMQPURL  string        `envconfig:"POS_KITCHEN_AMQP_URL"`
	Exchange string        `envconfig:"POS_KITCHEN_EXCHANGE" default:"pos_kitchen"`
	Timeout  time.Duration `envconfig:"POS_KITCHEN_PUBLISH_TIMEOUT" default:"2s"`
}

// Enabled reports whether kitchen tickets should be published.
func (k KitchenConfig) Enabled() bool {
	return strings.TrimSpace(k.AMQPURL) != ""
}

// Location resolves Timezone, falling back to the host zone when unset.
func (a AppConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(a.Timezone) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}
