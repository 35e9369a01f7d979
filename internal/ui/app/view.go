// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/courier/internal/api"
)

// chromeHeight is the number of rows taken by header, status bar and help.
const chromeHeight = 6

// View renders the current page inside the header and status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.page {
	case PageHome:
		body = m.homeView()
	case PageHealth:
		body = m.healthView()
	case PageHistory:
		body = m.historyView()
	case PageMessage:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.status.View(),
		m.theme.App.Render(body),
		m.help.View(m.keys),
	)
}

// =============================================================================
// HOME
// =============================================================================

func (m Model) homeView() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Send a message"))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.inputBox(m.nameInput.View(), m.focus == focusName))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Message"))
	b.WriteString("\n")
	b.WriteString(m.inputBox(m.messageInput.View(), m.focus == focusMessage))
	b.WriteString("\n")

	if m.home.loading {
		b.WriteString(m.spinner.View() + " " + m.theme.Muted.Render("Sending..."))
	} else if m.focus == focusSend {
		b.WriteString(m.theme.ButtonActive.Render("Send"))
	} else {
		b.WriteString(m.theme.Button.Render("Send"))
	}
	b.WriteString("\n")

	if m.home.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.ErrorText.Render(m.home.errText))
		b.WriteString("\n")
	}

	if m.home.reply != nil {
		b.WriteString("\n")
		b.WriteString(m.replyBox(m.home.reply))
	}
	return b.String()
}

func (m Model) inputBox(content string, focused bool) string {
	style := m.theme.InputBox
	if focused {
		style = m.theme.InputFocused
	}
	return style.Width(m.contentWidth()).Render(content)
}

func (m Model) replyBox(reply *api.MessageResponseData) string {
	width := m.contentWidth()
	text := m.markdown.Render(reply.Message, width-4)
	if meta := metadataLine(reply.Metadata); meta != "" {
		text += "\n" + m.theme.Metadata.Render(meta)
	}
	return m.theme.ResponseBox.Width(width).Render(text)
}

// metadataLine summarizes reply metadata on one line.
func metadataLine(meta *api.MessageMetadata) string {
	if meta == nil {
		return ""
	}
	line := fmt.Sprintf("words: %d | question: %t | greeting: %t", meta.WordCount, meta.HasQuestion, meta.HasGreeting)
	if meta.ResponseType != "" {
		line += " | type: " + meta.ResponseType
	}
	return line
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// HEALTH
// =============================================================================

func (m Model) healthView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Service health"))
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Backend: "))
	if m.client != nil {
		b.WriteString(m.client.BaseURL())
	}
	b.WriteString("  ")
	b.WriteString(m.status.Connection.String())
	b.WriteString("\n\n")

	switch {
	case m.health.loading:
		b.WriteString(m.spinner.View() + " " + m.theme.Muted.Render("Checking..."))
	case m.health.body == "" && m.health.errText == "":
		b.WriteString(m.theme.Muted.Render("Press enter to check the service."))
	}

	if m.health.errText != "" {
		b.WriteString(m.theme.ErrorText.Render(m.health.errText))
		b.WriteString("\n")
	}
	if m.health.body != "" {
		b.WriteString(m.theme.ResponseBox.Width(m.contentWidth()).Render(m.health.body))
		b.WriteString("\n")
		b.WriteString(m.theme.Metadata.Render("checked " + m.health.checked.Format("15:04:05")))
	}
	return b.String()
}

// =============================================================================
// HISTORY
// =============================================================================

func (m Model) historyView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("History"))
	b.WriteString("\n")

	if m.history.confirmClear {
		b.WriteString(m.theme.WarningText.Render("Clear all history? (y/n)"))
		b.WriteString("\n\n")
	}
	if m.history.lookupActive {
		b.WriteString(m.inputBox(m.lookupInput.View(), true))
		b.WriteString("\n")
	}
	if m.history.loading || m.history.clearing {
		b.WriteString(m.spinner.View() + " " + m.theme.Muted.Render("Loading..."))
		b.WriteString("\n")
	}
	if m.history.errText != "" {
		b.WriteString(m.theme.ErrorText.Render(m.history.errText))
		b.WriteString("\n")
	}
	if m.history.notice != "" {
		b.WriteString(m.theme.SuccessText.Render(m.history.notice))
		b.WriteString("\n")
	}

	if m.history.detail != nil {
		b.WriteString(m.itemDetail(m.history.detail))
		return b.String()
	}
	b.WriteString(m.table.View())
	return b.String()
}

func (m Model) itemDetail(item *api.HistoryItem) string {
	lines := []string{
		m.theme.Label.Render("id: ") + item.ID.String(),
		m.theme.Label.Render("when: ") + item.Timestamp,
		m.theme.Label.Render("name: ") + item.Input.Name,
		m.theme.Label.Render("message: ") + item.Input.Message,
		m.theme.Label.Render("reply: ") + item.Output,
	}
	if meta := metadataLine(item.Metadata); meta != "" {
		lines = append(lines, m.theme.Metadata.Render(meta))
	}
	if item.ClientInfo != nil && item.ClientInfo.UserAgent != "" {
		lines = append(lines, m.theme.Muted.Render("client: "+item.ClientInfo.UserAgent))
	}
	return m.theme.ResponseBox.Width(m.contentWidth()).Render(strings.Join(lines, "\n"))
}

// =============================================================================
// MESSAGE
// =============================================================================

// refreshViewport renders the last reply into the Message page viewport.
func (m *Model) refreshViewport() {
	if m.lastReply == nil {
		m.viewport.SetContent(m.theme.Muted.Render("No reply yet. Send a message from the Home page."))
		return
	}
	var b strings.Builder
	b.WriteString(m.markdown.Render(m.lastReply.Message, m.viewport.Width-2))
	b.WriteString("\n\n")
	if meta := metadataLine(m.lastReply.Metadata); meta != "" {
		b.WriteString(m.theme.Metadata.Render(meta))
		b.WriteString("\n")
	}
	if m.lastReply.Timestamp != "" {
		b.WriteString(m.theme.Muted.Render("at " + m.lastReply.Timestamp))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}
