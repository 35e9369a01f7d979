// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the courier TUI:
// the header, the status bar with page tabs, the history table, and the
// markdown and JSON renderers used for replies.
package components
