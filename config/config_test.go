package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsWhenEnvUnset(t *testing.T) {
	for _, key := range []string{
		"SEOAUDIT_PORT", "SEOAUDIT_MONGO_URI", "SEOAUDIT_MONGO_DB",
		"SEOAUDIT_RABBITMQ_URL", "SEOAUDIT_POSTGRES_DSN", "SEOAUDIT_REDIS_ADDR",
		"SEOAUDIT_OUTPUT_DIR", "SEOAUDIT_TENANT",
	} {
		// t.Setenv's own cleanup restores whatever was there before this
		// test, and the empty value makes getenv fall through to its
		// default exactly like an unset var would.
		t.Setenv(key, "")
	}

	settings := Load()

	assert.Equal(t, "8080", settings.Port)
	assert.Equal(t, "", settings.MongoURI)
	assert.Equal(t, "seoaudit", settings.MongoDB)
	assert.Equal(t, "", settings.RabbitMQURL)
	assert.Equal(t, "", settings.PostgresDSN)
	assert.Equal(t, "", settings.RedisAddr)
	assert.Equal(t, "./seoaudit-reports", settings.OutputDir)
	assert.Equal(t, "default", settings.TenantID)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SEOAUDIT_PORT", "9090")
	t.Setenv("SEOAUDIT_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SEOAUDIT_TENANT", "acme")

	settings := Load()

	assert.Equal(t, "9090", settings.Port)
	assert.Equal(t, "mongodb://localhost:27017", settings.MongoURI)
	assert.Equal(t, "acme", settings.TenantID)
}

func TestGetenv_FallsBackWhenEmpty(t *testing.T) {
	t.Setenv("SEOAUDIT_TEST_KEY", "")
	assert.Equal(t, "fallback", getenv("SEOAUDIT_TEST_KEY", "fallback"))
}

func TestGetenv_ReturnsSetValue(t *testing.T) {
	t.Setenv("SEOAUDIT_TEST_KEY", "value")
	assert.Equal(t, "value", getenv("SEOAUDIT_TEST_KEY", "fallback"))
}
