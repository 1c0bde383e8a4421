package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "EVERCART_APP_ENV"
	EnvPort   = "EVERCART_APP_PORT"

	EnvDBDSN  = "EVERCART_DB_DSN"
	EnvDBHost = "EVERCART_DB_HOST"
	EnvDBUser = "EVERCART_DB_USER"
	EnvDBName = "EVERCART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
