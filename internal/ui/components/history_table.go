// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/ui/styles"
	"github.com/jeranaias/courier/internal/util"
)

// =============================================================================
// HISTORY TABLE
// =============================================================================

// Column widths; the message preview takes the remaining width.
const (
	colWhen = 19
	colName = 14
	colType = 10
)

// HistoryTable lists history items newest first with a movable selection.
type HistoryTable struct {
	Items    []api.HistoryItem
	Stats    *api.HistoryStats
	Total    int
	Selected int
	Width    int
	theme    *styles.Theme
}

// NewHistoryTable creates an empty table.
func NewHistoryTable(theme *styles.Theme) *HistoryTable {
	return &HistoryTable{Width: 80, theme: theme}
}

// SetWidth updates the table width.
func (t *HistoryTable) SetWidth(width int) {
	t.Width = width
}

// SetData replaces the table contents and clamps the selection.
func (t *HistoryTable) SetData(data *api.HistoryResponseData) {
	if data == nil {
		t.Items, t.Stats, t.Total = nil, nil, 0
		t.Selected = 0
		return
	}
	t.Items = data.History
	stats := data.Stats
	t.Stats = &stats
	t.Total = data.Total
	if t.Selected >= len(t.Items) {
		t.Selected = len(t.Items) - 1
	}
	if t.Selected < 0 {
		t.Selected = 0
	}
}

// MoveUp moves the selection one row up.
func (t *HistoryTable) MoveUp() {
	if t.Selected > 0 {
		t.Selected--
	}
}

// MoveDown moves the selection one row down.
func (t *HistoryTable) MoveDown() {
	if t.Selected < len(t.Items)-1 {
		t.Selected++
	}
}

// SelectedItem returns the selected item, or nil when the table is empty.
func (t *HistoryTable) SelectedItem() *api.HistoryItem {
	if t.Selected < 0 || t.Selected >= len(t.Items) {
		return nil
	}
	return &t.Items[t.Selected]
}

// StatsLine summarizes the history stats.
func (t *HistoryTable) StatsLine() string {
	if t.Stats == nil {
		return ""
	}
	return fmt.Sprintf("%d total, %d successful, error rate %.2f%%, avg %.2f words",
		t.Stats.TotalMessages, t.Stats.SuccessfulMessages, t.Stats.ErrorRate, t.Stats.AverageWordCount)
}

// Row formats one item as a fixed-width plain text row.
func (t *HistoryTable) Row(item api.HistoryItem) string {
	when := item.Timestamp
	if ts := api.ParseTimestamp(item.Timestamp); !ts.IsZero() {
		when = ts.Local().Format("2006-01-02 15:04:05")
	}
	kind := ""
	if item.Metadata != nil {
		kind = item.Metadata.ResponseType
	}
	msgWidth := t.Width - colWhen - colName - colType - 6
	if msgWidth < 10 {
		msgWidth = 10
	}
	return strings.Join([]string{
		util.PadRight(util.Preview(when, colWhen), colWhen),
		util.PadRight(util.Preview(item.Input.Name, colName), colName),
		util.PadRight(kind, colType),
		util.Preview(item.Input.Message, msgWidth),
	}, "  ")
}

func (t *HistoryTable) header() string {
	return strings.Join([]string{
		util.PadRight("When", colWhen),
		util.PadRight("Name", colName),
		util.PadRight("Type", colType),
		"Message",
	}, "  ")
}

// View renders the table with its stats line.
func (t *HistoryTable) View() string {
	var b strings.Builder
	if line := t.StatsLine(); line != "" {
		b.WriteString(t.theme.Metadata.Render(line))
		b.WriteString("\n\n")
	}
	if len(t.Items) == 0 {
		b.WriteString(t.theme.Muted.Render("No history yet."))
		return b.String()
	}

	b.WriteString(t.theme.TableHeader.Render(t.header()))
	b.WriteString("\n")
	for i, item := range t.Items {
		row := t.Row(item)
		if i == t.Selected {
			b.WriteString(t.theme.TableSelected.Render(row))
		} else {
			b.WriteString(t.theme.TableRow.Render(row))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
