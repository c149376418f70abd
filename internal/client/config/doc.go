// Package config loads runtime configuration for the colis client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: the one named by -e/-env, else ./.env when present.
//     Real environment variables win over the file (godotenv never overrides).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// After loading, an empty BaseURL or zero Timeout is filled from the
// environment table (development or production).
//
// Supported flags
//
//	-a string     backend base URL
//	-t int        request timeout (seconds)
//	-m string     session storage mode: plain, secure or auto
//	-d string     data directory (local store, device secret, log)
//	-env-name     development or production
//
// Environment variables
//
//	COLIS_ENV                 development or production
//	COLIS_API_URL             backend base URL, overrides the environment default
//	COLIS_STORAGE_PASSPHRASE  secret for secure session storage
//	COLIS_LOG_LEVEL           debug, info, warn or error
//
// # JSON schema
//
//	{
//	  "environment": "production",
//	  "base_url": "http://127.0.0.1:8080",
//	  "timeout": "20s",
//	  "data_dir": "/var/lib/colis",
//	  "storage_mode": "secure",
//	  "requests_per_second": 5,
//	  "log_level": "debug"
//	}
package config
