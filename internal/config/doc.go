// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for courier.
//
// Configuration is read from a TOML file, then overridden by environment
// variables (optionally supplied through a .env file in the working
// directory), then defaulted and validated.
//
// File location (in order of precedence):
//   - the --config flag
//   - $COURIER_CONFIG
//   - ~/.courier/config.toml
//
// Example config.toml:
//
//	[api]
//	base_url = "http://localhost:8787"
//	timeout_secs = 15
//
//	[profile]
//	name = "ana"
//
//	[history]
//	default_limit = 50
//
// Keys can be read and written with dot notation, which is what
// "courier config get/set" uses:
//
//	v, _ := cfg.Get("api.base_url")
//	_ = cfg.Set("history.default_limit", "20")
package config
