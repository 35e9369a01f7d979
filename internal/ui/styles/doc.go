// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the courier TUI.

All colors use Lip Gloss AdaptiveColor so the palette follows the terminal
background. The background can be forced with the ui.theme config key
("dark" or "light"); "auto" asks termenv.

# Color System (colors.go)

	Brand    - header brand and active page tab
	Accent   - focused inputs and selections
	Success  - connected badge, success envelopes
	Danger   - error lines and unreachable badge
	Warning  - pending confirmations

Text uses a three-level hierarchy: TextPrimary, TextSecondary, TextMuted.

# Theme System (theme.go)

	theme := styles.NewThemeFor(cfg.UI.Theme)
	header := theme.Header.Render("courier")
*/
package styles
