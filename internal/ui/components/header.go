// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/courier/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the single-line title bar: brand on the left, API URL on the right.
type Header struct {
	Title  string
	APIURL string
	Name   string
	Width  int
	theme  *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "courier",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetAPIURL updates the displayed backend URL.
func (h *Header) SetAPIURL(url string) {
	h.APIURL = url
}

// SetName updates the displayed profile name.
func (h *Header) SetName(name string) {
	h.Name = name
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}

	brand := h.theme.HeaderBrand.Render("< " + h.Title + " >")
	if h.Name != "" {
		brand += " " + h.theme.Muted.Render("as "+h.Name)
	}

	right := ""
	if h.APIURL != "" {
		// Leave room for brand plus one space and the header padding.
		room := width - lipgloss.Width(brand) - 3
		if room > 3 {
			right = h.theme.HeaderURL.Render(truncate(h.APIURL, room))
		}
	}

	gap := width - lipgloss.Width(brand) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := brand + spaces(gap) + right
	return h.theme.Header.Width(width).Render(line)
}
