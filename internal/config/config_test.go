package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "wellnesshub", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 60, cfg.Auth.JWTExpireMinute)
	assert.Equal(t, "whisper-large-v3", cfg.LLM.TranscribeModel)
	assert.Equal(t, "wellness.message.persist", cfg.RabbitMQ.MessagePersistQueue)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRE_MINUTE", "15")
	t.Setenv("LLM_MODEL", "llama-guard")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.JWTExpireMinute)
	assert.Equal(t, "llama-guard", cfg.LLM.Model)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestMySQLDSN(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.MySQL.User = "hub"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "wellness"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "hub:pw@tcp(db:3307)/wellness?parseTime=true", cfg.MySQLDSN())
}

func TestHTTPAddr(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 8081
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr())
}
