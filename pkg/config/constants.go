package config

// EnvPrefix scopes every environment variable read by envconfig.
const EnvPrefix = "SOLBAZAAR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SOLBAZAAR_DB_DSN"
	EnvDBHost = "SOLBAZAAR_DB_HOST"
	EnvDBUser = "SOLBAZAAR_DB_USER"
	EnvDBName = "SOLBAZAAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
