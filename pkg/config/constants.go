package config

const (
	EnvPrefix = "MUSESHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MUSESHOP_DB_DSN"
	EnvDBHost = "MUSESHOP_DB_HOST"
	EnvDBUser = "MUSESHOP_DB_USER"
	EnvDBName = "MUSESHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
