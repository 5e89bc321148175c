package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/caresupport/internal/flagx"
	"github.com/dmitrijs2005/caresupport/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Durations accept both "24h" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	Storage               *string         `json:"storage"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	MinPasswordLength     *int            `json:"min_password_length"`
	LogLevel              *string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config in args, if any, and copies
// the fields it sets into cfg.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for dst, v := range map[*string]*string{
		&cfg.EndpointAddrGRPC: jc.EndpointAddrGRPC,
		&cfg.EndpointAddrHTTP: jc.EndpointAddrHTTP,
		&cfg.Storage:          jc.Storage,
		&cfg.DatabaseDSN:      jc.DatabaseDSN,
		&cfg.SecretKey:        jc.SecretKey,
		&cfg.LogLevel:         jc.LogLevel,
	} {
		if v != nil {
			*dst = *v
		}
	}
	if jc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.MinPasswordLength != nil {
		cfg.MinPasswordLength = *jc.MinPasswordLength
	}
	return nil
}
