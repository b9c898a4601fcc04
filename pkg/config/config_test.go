package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, 3*time.Second, cfg.Session.FlashTTL)
	assert.Equal(t, "sf_session", cfg.Session.CookieName)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_EnvSobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://api.zervidtronics.co/api/")
	v.Set("STORAGE_DRIVER", "redis")
	v.Set("HTTP_PORT", "9090")
	v.Set("FLASH_SECONDS", 5)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://api.zervidtronics.co/api", cfg.API.BaseURL)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Session.FlashTTL)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "cookies")
	_, err := fromViper(v)
	require.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "sf", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/sf?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
