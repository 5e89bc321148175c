package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/caresupport/internal/flagx"
	"github.com/dmitrijs2005/caresupport/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero".
type JsonConfig struct {
	IdentityEndpointAddr *string         `json:"identity_endpoint_addr"`
	Provider             *string         `json:"provider"`
	DatabaseDSN          *string         `json:"database_dsn"`
	CallTimeout          *timex.Duration `json:"call_timeout"`
	RecentCheckIns       *int            `json:"recent_check_ins"`
	LogLevel             *string         `json:"log_level"`
	ReportDir            *string         `json:"report_dir"`
	S3Bucket             *string         `json:"s3_bucket"`
	S3Region             *string         `json:"s3_region"`
	S3BaseEndpoint       *string         `json:"s3_base_endpoint"`
	S3AccessKey          *string         `json:"s3_access_key"`
	S3SecretKey          *string         `json:"s3_secret_key"`
}

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

	setString(&cfg.IdentityEndpointAddr, jc.IdentityEndpointAddr)
	setString(&cfg.Provider, jc.Provider)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.ReportDir, jc.ReportDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.CallTimeout != nil {
		cfg.CallTimeout = jc.CallTimeout.Duration
	}
	if jc.RecentCheckIns != nil {
		cfg.RecentCheckIns = *jc.RecentCheckIns
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
