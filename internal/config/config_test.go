package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STORAGE_TYPE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://ops.example.com")
	t.Setenv("GOTENBERG_ENABLED", "true")
	t.Setenv("LEAD_ADMIN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Gotenberg.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", DBName: "leads"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=leads sslmode=disable", pg.DSN())

	socket := DatabaseConfig{Driver: "postgres", Host: "/cloudsql/x", User: "u", Password: "p", DBName: "leads"}
	assert.Equal(t, "host=/cloudsql/x user=u password=p dbname=leads sslmode=disable", socket.DSN())

	my := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "u", Password: "p", DBName: "leads"}
	assert.Equal(t, "u:p@tcp(db:3306)/leads?charset=utf8mb4&parseTime=True&loc=Local", my.DSN())

	lite := DatabaseConfig{Driver: "sqlite", SQLitePath: "file::memory:"}
	assert.Equal(t, "file::memory:", lite.DSN())
}
