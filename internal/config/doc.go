// Package config provides configuration management for panels-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to http.ClientConfig
//
// # Default Settings
//
// Use DefaultSettings() to get the stock behaviour:
//
//	settings := config.DefaultSettings()
//	// Reads media-1a-i-p~s.json from the working directory
//	// Downloads to ./downloads
//	// At most 5 simultaneous requests per host
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DownloadsPath = "/custom/path"
//	err := settings.Save("/path/to/config.json")
package config
