package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/caresupport/internal/flagx"
)

var clientFlags = []string{"-a", "-p", "-d", "-t", "-n", "-l", "-r", "-b"}

// parseFlags overlays cfg with command-line flags. Unknown flags are
// filtered out first so the JSON loader's -c/-config can share args.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.IdentityEndpointAddr, "a", cfg.IdentityEndpointAddr, "address and port of the identity service")
	fs.StringVar(&cfg.Provider, "p", cfg.Provider, "identity provider (grpc|memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite database path")
	fs.DurationVar(&cfg.CallTimeout, "t", cfg.CallTimeout, "identity call timeout")
	fs.IntVar(&cfg.RecentCheckIns, "n", cfg.RecentCheckIns, "number of recent check-ins to show")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.ReportDir, "r", cfg.ReportDir, "report directory")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for reports")

	return fs.Parse(flagx.FilterArgs(args, clientFlags))
}
