package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"metrics_addr":                   ":9100",
		"log_level":                      "debug",
		"database_dsn":                   "postgres://db",
		"db_max_open_conns":              20,
		"db_conn_max_lifetime":           "1h",
		"session_ttl":                    "2h",
		"session_prune_interval":         60000000000,
		"session_table_name":             "sessions",
		"session_create_table":           false,
		"secret_key":                     "my_secret_key",
		"upload_token_validity_duration": "48h",
		"presign_validity_duration":      "5m",
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "base_endpoint",
		"admin_username":                 "root",
		"admin_password":                 "hunter2",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{SessionCreateTable: true, DBMaxIdleConns: 3}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, ":9100", cfg.MetricsAddr)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, 20, cfg.DBMaxOpenConns)
		assert.Equal(t, 3, cfg.DBMaxIdleConns, "keys missing from the file keep their value")
		assert.Equal(t, time.Hour, cfg.DBConnMaxLifetime)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
		assert.Equal(t, time.Minute, cfg.SessionPruneInterval)
		assert.Equal(t, "sessions", cfg.SessionTableName)
		assert.False(t, cfg.SessionCreateTable)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 48*time.Hour, cfg.UploadTokenValidityDuration)
		assert.Equal(t, 5*time.Minute, cfg.PresignValidityDuration)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, "root", cfg.AdminUsername)
		assert.Equal(t, "hunter2", cfg.AdminPassword)
	})

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrGRPC: "defaults:1234",
			DatabaseDSN:      "dsn",
			SecretKey:        "key",
			SessionTTL:       3 * time.Minute,
			S3Bucket:         "s3bucket",
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrGRPC)
		assert.Equal(t, "dsn", cfg.DatabaseDSN)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 3*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "s3bucket", cfg.S3Bucket)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "nope.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
