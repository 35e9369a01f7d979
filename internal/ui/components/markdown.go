// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders reply text with glamour. Renderers are cached per wrap
// width. A zero value is ready to use.
type Markdown struct {
	// Disabled turns rendering off; Render then returns its input trimmed.
	Disabled bool

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

func (m *Markdown) renderer(width int) *glamour.TermRenderer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	if m.renderers == nil {
		m.renderers = make(map[int]*glamour.TermRenderer)
	}
	m.renderers[width] = r
	return r
}

// Render renders content wrapped at width. The original content is returned
// when rendering is disabled or fails.
func (m *Markdown) Render(content string, width int) string {
	if m.Disabled || strings.TrimSpace(content) == "" {
		return strings.TrimSpace(content)
	}
	if width < 20 {
		width = 20
	}
	r := m.renderer(width)
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
