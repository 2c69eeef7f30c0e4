// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [ClientConfig] satisfies all
// invariants the client relies on at startup. Defaults have already been
// applied, so only values that cannot be defaulted are checked.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.Token == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
