// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewThemeFor.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds the styled components for the application.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// FRAME
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderURL   lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	StatusBar   lipgloss.Style
	ShortcutKey lipgloss.Style
	ShortcutDsc lipgloss.Style

	// ==========================================================================
	// CONTENT
	// ==========================================================================

	Title        lipgloss.Style
	Label        lipgloss.Style
	InputBox     lipgloss.Style
	InputFocused lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	ResponseBox  lipgloss.Style
	Metadata     lipgloss.Style
	Muted        lipgloss.Style
	Spinner      lipgloss.Style

	// ==========================================================================
	// STATUS
	// ==========================================================================

	ErrorText      lipgloss.Style
	SuccessText    lipgloss.Style
	WarningText    lipgloss.Style
	BadgeConnected lipgloss.Style
	BadgeOffline   lipgloss.Style
	BadgeUnknown   lipgloss.Style

	// ==========================================================================
	// HISTORY TABLE
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
}

// NewTheme creates a theme from the detected terminal background.
func NewTheme() *Theme {
	return NewThemeFor(ThemeAuto)
}

// NewThemeFor creates a theme for the named background. Unknown names act like "auto".
func NewThemeFor(name string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(name) {
	case ThemeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ThemeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().Bold(true).Foreground(Brand)
	t.HeaderURL = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Brand).
		Padding(0, 1)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Brand)
	t.ShortcutDsc = lipgloss.NewStyle().Foreground(TextMuted)

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).MarginBottom(1)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)

	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputFocused = t.InputBox.BorderForeground(Accent)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2)
	t.ButtonActive = t.Button.
		Bold(true).
		Foreground(TextInverse).
		Background(Accent)

	t.ResponseBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Brand).
		Padding(0, 1)
	t.Metadata = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Spinner = lipgloss.NewStyle().Foreground(Accent)

	t.ErrorText = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	t.SuccessText = lipgloss.NewStyle().Foreground(Success)
	t.WarningText = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(TextInverse)
	t.BadgeConnected = badge.Background(Success)
	t.BadgeOffline = badge.Background(Danger)
	t.BadgeUnknown = badge.Background(Overlay).Foreground(TextPrimary)

	t.TableHeader = lipgloss.NewStyle().Bold(true).Foreground(Brand).Underline(true)
	t.TableRow = lipgloss.NewStyle().Foreground(TextPrimary)
	t.TableSelected = lipgloss.NewStyle().Foreground(TextInverse).Background(Accent)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
