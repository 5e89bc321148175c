package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/caresupport/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g., ":50061")
//	-w string     health endpoint bind address; empty disables it
//	-b string     storage backend (postgres|memory)
//	-d string     PostgreSQL DSN
//	-s string     token HMAC secret key
//	-t duration   token validity (e.g., "12h")
//	-m int        minimum password length
//	-l string     log level
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("idp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run the gRPC server")
	fs.StringVar(&cfg.EndpointAddrHTTP, "w", cfg.EndpointAddrHTTP, "address and port to run the health endpoint")
	fs.StringVar(&cfg.Storage, "b", cfg.Storage, "storage backend (postgres|memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenValidityDuration, "t", cfg.TokenValidityDuration, "token validity")
	fs.IntVar(&cfg.MinPasswordLength, "m", cfg.MinPasswordLength, "minimum password length")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, []string{"-a", "-w", "-b", "-d", "-s", "-t", "-m", "-l"}))
}
