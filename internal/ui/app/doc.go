// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the courier terminal interface: a Bubble Tea model with
// four pages (Home, Health, History, Message) driven by the api client.
//
// Every backend call runs as a tea.Cmd and reports back through a typed
// message. A page accepts one request at a time while it is loading, and
// whichever reply arrives last is what the page shows.
package app
