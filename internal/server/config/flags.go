package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-m string     metrics HTTP bind address (e.g., ":9090")
//	-d string     PostgreSQL DSN
//	-s string     secret key for upload tokens
//	-t int        upload token validity, minutes
//	-x duration   session TTL (e.g., "24h")
//	-i duration   session prune interval (e.g., "15m")
//	-l string     log level (debug, info, warn, error)
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// os.Args is first filtered with flagx.FilterArgs so flags owned by other
// components (-c/-config) do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-s", "-t", "-x", "-i", "-l", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to serve metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	uploadTokenValidityDuration := fs.Int("t", int(config.UploadTokenValidityDuration.Minutes()), "upload_token_validity_duration (in minutes)")

	fs.DurationVar(&config.SessionTTL, "x", config.SessionTTL, "session TTL")
	fs.DurationVar(&config.SessionPruneInterval, "i", config.SessionPruneInterval, "session prune interval")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.UploadTokenValidityDuration = time.Duration(*uploadTokenValidityDuration) * time.Minute
}
