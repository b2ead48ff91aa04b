package constants

// Environment names
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Table names
const (
	TableUsers         = "users"
	TableSubscriptions = "subscriptions"
)
