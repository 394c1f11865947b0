// Package config provides configuration management for the asset catalog.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Default values come from the `default` struct tags of
// each section.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, API key)
//   - Database: catalog store connection (driver, host, name)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Catalog: snapshot location and report output
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Catalog.ReportDir)
package config
