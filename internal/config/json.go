package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type clientJSONConfig struct {
	App struct {
		Token      string `json:"drive_token"`
		FolderPath string `json:"folder_path"`
	} `json:"app,omitempty"`

	Adapter struct {
		BaseURL             string   `json:"base_url"`
		RequestTimeout      Duration `json:"request_timeout"`
		DownloadConcurrency int      `json:"download_concurrency"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		RetryBudget      int      `json:"retry_budget"`
		RetryBackoff     Duration `json:"retry_backoff"`
		StaleCursorAfter Duration `json:"stale_cursor_after"`
		DivergenceAfter  Duration `json:"divergence_after"`
	} `json:"sync,omitempty"`

	Notify struct {
		Dir string `json:"dir"`
	} `json:"notify,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg clientJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		App: App{
			Token:      jsonCfg.App.Token,
			FolderPath: jsonCfg.App.FolderPath,
		},
		Adapter: Adapter{
			BaseURL:             jsonCfg.Adapter.BaseURL,
			RequestTimeout:      time.Duration(jsonCfg.Adapter.RequestTimeout),
			DownloadConcurrency: jsonCfg.Adapter.DownloadConcurrency,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Sync: Sync{
			RetryBudget:      jsonCfg.Sync.RetryBudget,
			RetryBackoff:     time.Duration(jsonCfg.Sync.RetryBackoff),
			StaleCursorAfter: time.Duration(jsonCfg.Sync.StaleCursorAfter),
			DivergenceAfter:  time.Duration(jsonCfg.Sync.DivergenceAfter),
		},
		Notify:  Notify{Dir: jsonCfg.Notify.Dir},
		Workers: Workers{SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval)},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
