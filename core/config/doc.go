// Package config provides configuration management for the application.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP gateway settings (port, API key)
//   - Storage: MinIO/S3 endpoint, credentials and connection settings
//   - Log: Logging level and format
//
// Storage keys answer both to the generic STORAGE_* names and to the
// MINIO_* environment variables honored by the storage client.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
