package config

import "os"

// Settings holds the environment-driven configuration for the HTTP
// dispatcher binary, the same getenv-with-default idiom the teacher used
// inline across its config/*.go files, collected into one struct instead
// of scattered package vars so server.go has one thing to load at boot.
type Settings struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RabbitMQURL string
	PostgresDSN string
	RedisAddr   string
	OutputDir   string
	TenantID    string
}

// Load reads Settings from the environment, defaulting to a fully local
// setup (in-memory repository, filesystem blob sink, no broker/cache)
// so the dispatcher runs with zero external services for local dev.
func Load() Settings {
	return Settings{
		Port:        getenv("SEOAUDIT_PORT", "8080"),
		MongoURI:    getenv("SEOAUDIT_MONGO_URI", ""),
		MongoDB:     getenv("SEOAUDIT_MONGO_DB", "seoaudit"),
		RabbitMQURL: getenv("SEOAUDIT_RABBITMQ_URL", ""),
		PostgresDSN: getenv("SEOAUDIT_POSTGRES_DSN", ""),
		RedisAddr:   getenv("SEOAUDIT_REDIS_ADDR", ""),
		OutputDir:   getenv("SEOAUDIT_OUTPUT_DIR", "./seoaudit-reports"),
		TenantID:    getenv("SEOAUDIT_TENANT", "default"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
