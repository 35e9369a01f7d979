// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the courier packages.
//
// String helpers are display-width aware (CJK names and messages render as
// two columns per rune), so tables and previews line up in the terminal:
//
//	row := util.PadRight(util.TruncateWidth(item.Input.Name, 12), 12)
//
// AtomicWriteFile is used for every file courier writes to its config
// directory so that a crash never leaves a half-written config or history file.
package util
