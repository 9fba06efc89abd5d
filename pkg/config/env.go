package config

const (
	EnvPrefix = "POS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "POS_APP_ENV"
	EnvPort           = "POS_APP_PORT"
	EnvLogLevel       = "POS_LOG_LEVEL"
	EnvStoreBackend   = "POS_STORE_BACKEND"
	EnvStoreTimeout   = "POS_STORE_TIMEOUT"
	EnvPersistEmpty   = "POS_STORE_PERSIST_EMPTY"
	EnvDBDSN          = "POS_DB_DSN"
	EnvDBDriver       = "POS_DB_DRIVER"
	EnvRedisURL       = "POS_REDIS_URL"
	EnvTaxRate        = "POS_TAX_RATE"
	EnvRestoreView    = "POS_SESSION_RESTORE_VIEW"
	EnvCatalogPath    = "POS_CATALOG_PATH"
	EnvKitchenURL     = "POS_KITCHEN_AMQP_URL"
	EnvKitchenTimeout = "POS_KITCHEN_PUBLISH_TIMEOUT"
	EnvCORSOrigins    = "POS_CORS_ORIGINS"
	EnvTimezone       = "POS_TIMEZONE"

	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMemory   = "memory"
)

var storeBackends = []string{
	StoreBackendSQLite,
	StoreBackendPostgres,
	StoreBackendRedis,
	StoreBackendMemory,
}
