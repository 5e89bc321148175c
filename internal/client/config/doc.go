// Package config loads runtime configuration for the CareSupport client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the identity service
//	-p string     identity provider: "grpc" or "memory"
//	-d string     SQLite database path; empty keeps diary data in memory
//	-t duration   timeout for a single identity provider call
//	-n int        how many check-ins "recent" shows
//	-l string     log level (debug, info, warn, error)
//	-r string     directory for caregiver reports
//	-b string     S3 bucket for caregiver reports; empty writes to -r
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds. Keys that are absent keep their earlier value.
//
//	{
//	  "identity_endpoint_addr": "127.0.0.1:50061",
//	  "provider": "grpc",
//	  "database_dsn": "care.db",
//	  "call_timeout": "10s",
//	  "recent_check_ins": 5,
//	  "log_level": "info",
//	  "report_dir": "reports",
//	  "s3_bucket": "care-reports",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
package config
