package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "dispatch"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "DISPATCH_APP_ENV"
	EnvDBDSN  = "DISPATCH_DB_DSN"
	EnvDBHost = "DISPATCH_DB_HOST"
	EnvDBUser = "DISPATCH_DB_USER"
	EnvDBName = "DISPATCH_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
