// Package env holds the environment variable names read by the commands
package env

const (
	// Prefix is the prefix of every environment variable of the service
	Prefix = "FIPEVAL_"

	// PlacaFipeTokenSuffix is the suffix of the plate registry API token variable
	PlacaFipeTokenSuffix = "PLACAFIPE_TOKEN"

	// RedisURLSuffix is the suffix of the redis connection URL variable
	RedisURLSuffix = "REDIS_URL"
)
