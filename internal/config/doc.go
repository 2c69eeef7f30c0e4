// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges, and validates the go-readsync client
// configuration.
//
// Values are collected from three sources and merged in priority order
// (first non-zero value wins, earlier sources win):
//  1. Environment variables (caarlos0/env tags)
//  2. Command-line flags
//  3. An optional JSON file, whose path is resolved from sources 1 and 2
//
// The merge itself is performed with dario.cat/mergo through the builder in
// config_builder.go. [GetClientConfig] is the single entry point used by
// cmd/client.
package config
