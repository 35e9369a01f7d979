// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/config"
)

// =============================================================================
// REQUEST RESULTS
// =============================================================================

// MessageSentMsg carries the result of SendMessage.
type MessageSentMsg struct {
	Request  api.MessageRequest
	Response *api.MessageResponse
	Err      error
}

// HealthCheckedMsg carries the result of HealthCheck.
type HealthCheckedMsg struct {
	Response *api.Response
	Err      error
}

// ConnectionTestedMsg carries the result of TestConnection.
type ConnectionTestedMsg struct {
	OK bool
}

// HistoryLoadedMsg carries the result of GetHistory.
type HistoryLoadedMsg struct {
	Response *api.HistoryResponse
	Err      error
}

// HistoryLookupMsg carries the result of GetHistoryByID.
type HistoryLookupMsg struct {
	ID       string
	Response *api.HistoryResponse
	Err      error
}

// HistoryClearedMsg carries the result of ClearHistory.
type HistoryClearedMsg struct {
	Response *api.Response
	Err      error
}

// =============================================================================
// BACKGROUND EVENTS
// =============================================================================

// ProfileSavedMsg reports whether the profile was written to disk.
type ProfileSavedMsg struct {
	Name string
	Err  error
}

// ConfigReloadedMsg is delivered when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
