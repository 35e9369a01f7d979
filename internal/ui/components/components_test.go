// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/ui/styles"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(styles.NewThemeFor(styles.ThemeDark))
	h.SetWidth(80)
	h.SetAPIURL("http://localhost:8787")
	h.SetName("ada")

	view := h.View()
	if !strings.Contains(view, "courier") {
		t.Errorf("header should contain brand, got %q", view)
	}
	if !strings.Contains(view, "http://localhost:8787") {
		t.Errorf("header should contain API URL, got %q", view)
	}
	if !strings.Contains(view, "ada") {
		t.Errorf("header should contain profile name, got %q", view)
	}
}

func TestHeaderNarrowDropsURL(t *testing.T) {
	h := NewHeader(styles.NewThemeFor(styles.ThemeDark))
	h.SetWidth(10)
	h.SetAPIURL("http://a-very-long-host.example.com:8787")

	view := h.View()
	if strings.Contains(view, "example.com:8787") {
		t.Errorf("narrow header should not fit the full URL, got %q", view)
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusLoading, "Loading..."},
		{StatusError, "Error"},
		{Status(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestConnectionString(t *testing.T) {
	if ConnectionOnline.String() != "ONLINE" || ConnectionOffline.String() != "OFFLINE" || ConnectionUnknown.String() != "UNKNOWN" {
		t.Error("unexpected connection labels")
	}
}

func TestStatusBarView(t *testing.T) {
	theme := styles.NewThemeFor(styles.ThemeDark)
	theme.SetSize(120, 40)
	sb := NewStatusBar(theme, "Home", "Health", "History", "Message")
	sb.SetWidth(120)
	sb.SetActive(2)
	sb.SetConnection(ConnectionOnline)
	sb.SetStatus(StatusError, "boom")
	sb.Shortcuts = []Shortcut{{Key: "enter", Desc: "send"}}

	view := sb.View()
	for _, want := range []string{"1 Home", "3 History", "ONLINE", "boom", "send"} {
		if !strings.Contains(view, want) {
			t.Errorf("status bar missing %q:\n%s", want, view)
		}
	}
	if sb.Active != 2 {
		t.Errorf("Active = %d, want 2", sb.Active)
	}

	sb.SetActive(10)
	if sb.Active != 2 {
		t.Errorf("out of range SetActive changed Active to %d", sb.Active)
	}
}

// =============================================================================
// JSON VIEW TESTS
// =============================================================================

func TestPrettyJSON(t *testing.T) {
	got := PrettyJSON([]byte(`{"status":"ok","n":1}`))
	want := "{\n  \"status\": \"ok\",\n  \"n\": 1\n}"
	if got != want {
		t.Errorf("PrettyJSON = %q, want %q", got, want)
	}

	if got := PrettyJSON([]byte("not json")); got != "not json" {
		t.Errorf("invalid JSON should pass through, got %q", got)
	}
}

func TestJSONViewRender(t *testing.T) {
	plain := JSONView{}.Render([]byte(`{"a":true}`))
	if plain != "{\n  \"a\": true\n}" {
		t.Errorf("plain render = %q", plain)
	}

	colored := JSONView{Highlight: true}.Render([]byte(`{"a":true}`))
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("highlighted render should contain ANSI escapes, got %q", colored)
	}
	if !strings.Contains(colored, "true") {
		t.Errorf("highlighted render lost content: %q", colored)
	}
}

func TestJSONViewRenderValue(t *testing.T) {
	got := JSONView{}.RenderValue(map[string]int{"x": 1})
	if got != "{\n  \"x\": 1\n}" {
		t.Errorf("RenderValue = %q", got)
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownRender(t *testing.T) {
	var md Markdown
	out := md.Render("hello **world**", 60)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("markdown output lost content: %q", out)
	}
}

func TestMarkdownDisabled(t *testing.T) {
	md := Markdown{Disabled: true}
	if got := md.Render("  *hi*  ", 60); got != "*hi*" {
		t.Errorf("disabled render = %q, want %q", got, "*hi*")
	}
	if got := (&Markdown{}).Render("   ", 60); got != "" {
		t.Errorf("blank content should render empty, got %q", got)
	}
}

// =============================================================================
// HISTORY TABLE TESTS
// =============================================================================

func sampleHistory() *api.HistoryResponseData {
	return &api.HistoryResponseData{
		History: []api.HistoryItem{
			{
				ID:        "2",
				Input:     api.HistoryInput{Name: "ada", Message: "how are you?\nfine"},
				Timestamp: "2025-01-02T03:04:05Z",
				Metadata:  &api.MessageMetadata{ResponseType: api.ResponseTypeQuestion},
			},
			{
				ID:        "1",
				Input:     api.HistoryInput{Name: "grace", Message: "hello"},
				Timestamp: "not a time",
			},
		},
		Stats: api.HistoryStats{TotalMessages: 2, SuccessfulMessages: 2, AverageWordCount: 2.5},
		Total: 2,
	}
}

func TestHistoryTableSelection(t *testing.T) {
	tbl := NewHistoryTable(styles.NewThemeFor(styles.ThemeDark))
	if tbl.SelectedItem() != nil {
		t.Fatal("empty table should have no selection")
	}

	tbl.SetData(sampleHistory())
	if got := tbl.SelectedItem().ID; got != "2" {
		t.Errorf("initial selection = %q, want 2", got)
	}

	tbl.MoveDown()
	tbl.MoveDown()
	if got := tbl.SelectedItem().ID; got != "1" {
		t.Errorf("selection after MoveDown = %q, want 1", got)
	}

	tbl.MoveUp()
	tbl.MoveUp()
	if tbl.Selected != 0 {
		t.Errorf("Selected = %d, want 0", tbl.Selected)
	}

	tbl.Selected = 1
	tbl.SetData(&api.HistoryResponseData{History: sampleHistory().History[:1]})
	if tbl.Selected != 0 {
		t.Errorf("SetData should clamp selection, got %d", tbl.Selected)
	}

	tbl.SetData(nil)
	if len(tbl.Items) != 0 || tbl.Stats != nil {
		t.Error("SetData(nil) should clear the table")
	}
}

func TestHistoryTableRow(t *testing.T) {
	tbl := NewHistoryTable(styles.NewThemeFor(styles.ThemeDark))
	tbl.SetWidth(80)
	data := sampleHistory()

	row := tbl.Row(data.History[0])
	if strings.Contains(row, "\n") {
		t.Errorf("row should be a single line: %q", row)
	}
	if !strings.Contains(row, "ada") || !strings.Contains(row, "question") {
		t.Errorf("row missing fields: %q", row)
	}
	if w := lipgloss.Width(row); w > 80 {
		t.Errorf("row width %d exceeds table width", w)
	}

	// Unparseable timestamps are shown verbatim.
	if row := tbl.Row(data.History[1]); !strings.Contains(row, "not a time") {
		t.Errorf("row should keep raw timestamp: %q", row)
	}
}

func TestHistoryTableView(t *testing.T) {
	tbl := NewHistoryTable(styles.NewThemeFor(styles.ThemeDark))
	if !strings.Contains(tbl.View(), "No history yet.") {
		t.Error("empty table should say so")
	}

	tbl.SetData(sampleHistory())
	view := tbl.View()
	for _, want := range []string{"2 total", "avg 2.50 words", "Name", "grace"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
