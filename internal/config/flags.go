package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a drive API base URL
//	-d local cache database DSN
//	-t static drive bearer token
//	-folder remote drive folder path
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval background sync interval (e.g., "5m")
//	-notify-dir cross-instance notification directory
func ParseFlags() *ClientConfig {
	var baseURL string
	var databaseDSN string
	var token string
	var folderPath string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var notifyDir string

	flag.StringVar(&baseURL, "a", "", "Drive API base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local cache database DSN")
	flag.StringVar(&token, "t", "", "Static drive bearer token")
	flag.StringVar(&folderPath, "folder", "", "Remote drive folder path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.StringVar(&notifyDir, "notify-dir", "", "Cross-instance notification directory")

	flag.Parse()

	return &ClientConfig{
		App: App{
			Token:      token,
			FolderPath: folderPath,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Notify:       Notify{Dir: notifyDir},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}
}
