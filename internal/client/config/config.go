package config

import (
	"fmt"
	"time"
)

const (
	ProviderGRPC   = "grpc"
	ProviderMemory = "memory"
)

type Config struct {
	IdentityEndpointAddr string
	Provider             string
	DatabaseDSN          string
	CallTimeout          time.Duration
	RecentCheckIns       int
	LogLevel             string

	ReportDir      string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.IdentityEndpointAddr = "127.0.0.1:50061"
	c.Provider = ProviderGRPC
	c.CallTimeout = 10 * time.Second
	c.RecentCheckIns = 5
	c.LogLevel = "info"
	c.ReportDir = "reports"
	c.S3Region = "us-east-1"
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGRPC, ProviderMemory:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.RecentCheckIns <= 0 {
		return fmt.Errorf("recent_check_ins must be positive, got %d", c.RecentCheckIns)
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call_timeout must not be negative")
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config in args, then flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
