// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires the local cache, the remote drive adapter, the sync coordinator,
// the cross-instance notifier, and the background sync job into a single
// process lifecycle.
package client
