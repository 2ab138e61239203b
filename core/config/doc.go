// Package config provides configuration management for fnum.
//
// It uses Viper to read environment variables (optionally from a .env file
// loaded with godotenv) on top of defaults declared in `default:` struct tags.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO bucket that galleries are published to
//   - Log: logging level and format
//   - Database: rename journal (sqlite or MySQL)
//   - Numbering: gallery root, suffixes and artifact names
//
// List values such as NUMBERING_SUFFIXES are comma separated.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Numbering.Root)
package config
