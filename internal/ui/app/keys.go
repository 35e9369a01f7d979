// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the interface.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Home      key.Binding
	Health    key.Binding
	History   key.Binding
	Message   key.Binding
	Refresh   key.Binding
	Clear     key.Binding
	Lookup    key.Binding
	Up        key.Binding
	Down      key.Binding
	Confirm   key.Binding
	Deny      key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Home: key.NewBinding(
			key.WithKeys("f1", "alt+1"),
			key.WithHelp("F1", "home"),
		),
		Health: key.NewBinding(
			key.WithKeys("f2", "alt+2"),
			key.WithHelp("F2", "health"),
		),
		History: key.NewBinding(
			key.WithKeys("f3", "alt+3"),
			key.WithHelp("F3", "history"),
		),
		Message: key.NewBinding(
			key.WithKeys("f4", "alt+4"),
			key.WithHelp("F4", "last reply"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear history"),
		),
		Lookup: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find by id"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Refresh, k.Home, k.Health, k.History, k.Message, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Health, k.History, k.Message},
		{k.NextField, k.PrevField, k.Submit, k.Refresh},
		{k.Up, k.Down, k.Lookup, k.Clear},
		{k.Help, k.Back, k.Quit},
	}
}
