// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/courier/internal/ui/styles"
)

// =============================================================================
// STATUS
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an ASCII indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Connection is the result of the last connectivity check.
type Connection int

const (
	ConnectionUnknown Connection = iota
	ConnectionOnline
	ConnectionOffline
)

func (c Connection) String() string {
	switch c {
	case ConnectionOnline:
		return "ONLINE"
	case ConnectionOffline:
		return "OFFLINE"
	default:
		return "UNKNOWN"
	}
}

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders page tabs, the connection badge and status text.
type StatusBar struct {
	Tabs          []string
	Active        int
	Status        Status
	Connection    Connection
	Message       string
	Shortcuts     []Shortcut
	ShowShortcuts bool
	Width         int
	theme         *styles.Theme
}

// NewStatusBar creates a StatusBar for the given tab titles.
func NewStatusBar(theme *styles.Theme, tabs ...string) *StatusBar {
	return &StatusBar{
		Tabs:          tabs,
		Status:        StatusReady,
		ShowShortcuts: true,
		Width:         80,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetActive selects the highlighted tab. Out of range values are ignored.
func (s *StatusBar) SetActive(i int) {
	if i >= 0 && i < len(s.Tabs) {
		s.Active = i
	}
}

// SetStatus updates the status and its message.
func (s *StatusBar) SetStatus(status Status, message string) {
	s.Status = status
	s.Message = message
}

// SetConnection updates the connection badge.
func (s *StatusBar) SetConnection(c Connection) {
	s.Connection = c
}

// TabsView renders only the tab strip.
func (s *StatusBar) TabsView() string {
	parts := make([]string, 0, len(s.Tabs))
	for i, title := range s.Tabs {
		label := title
		if i < 9 {
			label = string(rune('1'+i)) + " " + title
		}
		if i == s.Active {
			parts = append(parts, s.theme.TabActive.Render(label))
		} else {
			parts = append(parts, s.theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// badge renders the connection badge.
func (s *StatusBar) badge() string {
	switch s.Connection {
	case ConnectionOnline:
		return s.theme.BadgeConnected.Render(s.Connection.String())
	case ConnectionOffline:
		return s.theme.BadgeOffline.Render(s.Connection.String())
	default:
		return s.theme.BadgeUnknown.Render(s.Connection.String())
	}
}

// View renders the two-line status bar: tabs plus badge, then status and shortcuts.
func (s *StatusBar) View() string {
	width := s.Width
	if width < 20 {
		width = 20
	}

	// StatusBar style pads one column on each side.
	inner := width - 2

	tabs := s.TabsView()
	badge := s.badge()
	gap := inner - lipgloss.Width(tabs) - lipgloss.Width(badge)
	top := tabs + spaces(gap) + badge
	if gap < 1 {
		top = tabs + " " + badge
	}

	status := s.Status.Icon() + " " + s.Status.String()
	if s.Message != "" {
		status += ": " + s.Message
	}
	switch s.Status {
	case StatusError:
		status = s.theme.ErrorText.Render(status)
	case StatusLoading:
		status = s.theme.Spinner.Render(status)
	}

	bottom := status
	if s.ShowShortcuts && len(s.Shortcuts) > 0 && s.theme.GetLayoutMode() != styles.LayoutNarrow {
		hints := make([]string, 0, len(s.Shortcuts))
		for _, sc := range s.Shortcuts {
			hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDsc.Render(sc.Desc))
		}
		hint := strings.Join(hints, "  ")
		if lipgloss.Width(status)+lipgloss.Width(hint)+2 <= inner {
			bottom = status + spaces(inner-lipgloss.Width(status)-lipgloss.Width(hint)) + hint
		}
	}

	return s.theme.StatusBar.Width(width).Render(top + "\n" + bottom)
}
