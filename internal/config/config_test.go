package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
user = "booking"
dbname = "courts"

[auth]
jwt_secret = "file-secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Minute, cfg.Booking.HoldDuration())
	assert.Equal(t, "America/Santiago", cfg.Booking.Timezone)
	assert.Equal(t, "https://webpay.cl", cfg.Booking.DefaultPaymentLink)
	assert.Equal(t, "+56912345678", cfg.Contact.DefaultWhatsApp)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Booking.ReaperEnabled)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Equal(t, "host=db port=5432 user=booking password= dbname=courts sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_PASSWORD", "s3cret")

	path := writeConfig(t, `
[database]
host = "db"
password = "from-file"

[auth]
jwt_secret = "file-secret"

[server]
trusted_proxies = ["10.0.0.0/8", "127.0.0.1"]

[booking]
hold_minutes = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 15*time.Minute, cfg.Booking.HoldDuration())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	tests := []struct {
		name string
		body string
	}{
		{name: "missing jwt secret", body: `[booking]
timezone = "America/Santiago"`},
		{name: "unknown timezone", body: `[auth]
jwt_secret = "x"
[booking]
timezone = "Mars/Olympus"`},
		{name: "negative hold", body: `[auth]
jwt_secret = "x"
[booking]
hold_minutes = -5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
