package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.CacheTTL)
	assert.Equal(t, "local", cfg.ImageStore)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ENV", "production")
	t.Setenv("BASE_URL", "https://fnp.example.com/")
	t.Setenv("CACHE_TTL", "3s")
	t.Setenv("IMAGE_STORE", "minio")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "a")
	t.Setenv("MINIO_SECRET_KEY", "b")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://fnp.example.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.MinioUseSSL)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate_ImageStore(t *testing.T) {
	cfg := &Config{JWTSecret: "s", ImageStore: "drive"}
	assert.ErrorContains(t, cfg.Validate(), "GOOGLE_APPLICATION_CREDENTIALS")

	cfg.DriveCredentials = "/tmp/creds.json"
	assert.ErrorContains(t, cfg.Validate(), "DRIVE_FOLDER_ID")

	cfg.DriveFolderID = "folder"
	assert.NoError(t, cfg.Validate())

	cfg.ImageStore = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@h/db"}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h/db", dsn)

	cfg = &Config{DBHost: "h", DBPort: "5432", DBUser: "u", DBName: "fnp", DBSSLMode: "disable"}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=h port=5432 user=u password= dbname=fnp sslmode=disable", dsn)

	_, err = (&Config{}).DSN()
	assert.Error(t, err)
}
