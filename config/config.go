package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL              string
	RedisAddress       string
	ListenAddress      string
	AdminSeedUsername  string
	AdminSeedPassword  string
	AllowedCORSOrigins []string
}
