// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the local store, credential store, remote adapters, the sync
// engine and background workers into a single process lifecycle.
package client
