// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements courier's command line surface.

Parse turns os.Args into a Command and Args. Each command has a Handle
function that takes an Env (output streams, config, api client) and
returns an error; GetExitCode maps that error to the process exit status.

# Commands

	courier [tui]                       Start the terminal interface
	courier send --name N message...    Send one message
	courier history [--limit N] [--id]  List history or show one item
	courier clear --confirm             Clear history
	courier health                      Call /api/health
	courier ping                        Connectivity check
	courier repl                        Line-oriented session
	courier config [show|get|set|path|keys|reset]
	courier serve [--addr :8787]        Run the reference backend
	courier setup [--yes]               Save a name and backend URL
	courier version | help

# Exit Codes

	0  success
	1  general error, including success:false replies
	2  usage error
	3  configuration error
	5  network error
	7  not found
	8  timeout

# JSON Output

With --json every command prints one object:

	{"success": true, "data": {...}, "error": null, "timestamp": "...", "command": "send"}
*/
package cli
