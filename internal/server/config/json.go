package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/contentdesk/internal/flagx"
	"github.com/dmitrijs2005/contentdesk/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// strings such as "15m" as well as integer nanoseconds. Keys missing from the
// file keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 string         `json:"metrics_addr"`
	LogLevel                    string         `json:"log_level"`
	DatabaseDSN                 string         `json:"database_dsn"`
	DBMaxOpenConns              int            `json:"db_max_open_conns"`
	DBMaxIdleConns              int            `json:"db_max_idle_conns"`
	DBConnMaxLifetime           timex.Duration `json:"db_conn_max_lifetime"`
	SessionTTL                  timex.Duration `json:"session_ttl"`
	SessionPruneInterval        timex.Duration `json:"session_prune_interval"`
	SessionTableName            string         `json:"session_table_name"`
	SessionCreateTable          bool           `json:"session_create_table"`
	SecretKey                   string         `json:"secret_key"`
	UploadTokenValidityDuration timex.Duration `json:"upload_token_validity_duration"`
	PresignValidityDuration     timex.Duration `json:"presign_validity_duration"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	AdminUsername               string         `json:"admin_username"`
	AdminPassword               string         `json:"admin_password"`
}

func toJsonConfig(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrGRPC:            c.EndpointAddrGRPC,
		MetricsAddr:                 c.MetricsAddr,
		LogLevel:                    c.LogLevel,
		DatabaseDSN:                 c.DatabaseDSN,
		DBMaxOpenConns:              c.DBMaxOpenConns,
		DBMaxIdleConns:              c.DBMaxIdleConns,
		DBConnMaxLifetime:           timex.Duration{Duration: c.DBConnMaxLifetime},
		SessionTTL:                  timex.Duration{Duration: c.SessionTTL},
		SessionPruneInterval:        timex.Duration{Duration: c.SessionPruneInterval},
		SessionTableName:            c.SessionTableName,
		SessionCreateTable:          c.SessionCreateTable,
		SecretKey:                   c.SecretKey,
		UploadTokenValidityDuration: timex.Duration{Duration: c.UploadTokenValidityDuration},
		PresignValidityDuration:     timex.Duration{Duration: c.PresignValidityDuration},
		S3RootUser:                  c.S3RootUser,
		S3RootPassword:              c.S3RootPassword,
		S3Bucket:                    c.S3Bucket,
		S3Region:                    c.S3Region,
		S3BaseEndpoint:              c.S3BaseEndpoint,
		AdminUsername:               c.AdminUsername,
		AdminPassword:               c.AdminPassword,
	}
}

// parseJson loads the JSON file named by the -c or -config flag into config.
// Without either flag nothing is loaded. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := toJsonConfig(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.MetricsAddr = c.MetricsAddr
	config.LogLevel = c.LogLevel
	config.DatabaseDSN = c.DatabaseDSN
	config.DBMaxOpenConns = c.DBMaxOpenConns
	config.DBMaxIdleConns = c.DBMaxIdleConns
	config.DBConnMaxLifetime = c.DBConnMaxLifetime.Duration
	config.SessionTTL = c.SessionTTL.Duration
	config.SessionPruneInterval = c.SessionPruneInterval.Duration
	config.SessionTableName = c.SessionTableName
	config.SessionCreateTable = c.SessionCreateTable
	config.SecretKey = c.SecretKey
	config.UploadTokenValidityDuration = c.UploadTokenValidityDuration.Duration
	config.PresignValidityDuration = c.PresignValidityDuration.Duration
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.AdminUsername = c.AdminUsername
	config.AdminPassword = c.AdminPassword
}
