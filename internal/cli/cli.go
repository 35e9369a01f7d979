// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdSend
	CmdHistory
	CmdClear
	CmdHealth
	CmdPing
	CmdRepl
	CmdConfig
	CmdServe
	CmdSetup
	CmdVersion
	CmdHelp
	CmdUnknown
)

var commandNames = map[Command]string{
	CmdTUI:     "tui",
	CmdSend:    "send",
	CmdHistory: "history",
	CmdClear:   "clear",
	CmdHealth:  "health",
	CmdPing:    "ping",
	CmdRepl:    "repl",
	CmdConfig:  "config",
	CmdServe:   "serve",
	CmdSetup:   "setup",
	CmdVersion: "version",
	CmdHelp:    "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	URL        string
	Name       string
	JSON       bool
	Verbose    bool
	Quiet      bool
	ConfigPath string
	LogLevel   string

	// Subcommand is the first word after the command, e.g. "get" in "config get".
	Subcommand string

	// Raw holds the command's arguments after global flags are removed.
	Raw []string

	// Unknown is the unrecognized command word, set with CmdUnknown.
	Unknown string
}

const usageText = `courier - message processor client

Usage:
  courier [tui]                         Start the terminal interface (default)
  courier send [--name N] message...    Send a message and print the reply
    --raw                               Print the reply envelope as highlighted JSON
  courier history [--limit N]           List processed messages, newest first
  courier history --id ID               Show one history item
  courier clear --confirm               Delete all history on the backend
  courier health                        Show the backend health report
  courier ping                          Check that the backend answers
  courier repl                          Interactive line mode
  courier config show                   Print the effective configuration
  courier config get KEY                Print one value (dot notation)
  courier config set KEY VALUE          Change one value and save
  courier config path                   Print the config file location
  courier config keys                   List every key
  courier config reset --confirm        Restore defaults
  courier serve [--addr :8787]          Run the reference backend
  courier setup                         Choose a name and backend, save them
  courier version                       Print version information
  courier help                          Show this help

Global flags:
  --url URL          Backend URL (overrides profile.api_url and api.base_url)
  --name NAME        Sender name (overrides profile.name)
  --config PATH      Config file (default ~/.courier/config.toml)
  --log-level LEVEL  debug, info, warn or error
  --json             Machine-readable output
  -v, --verbose      Debug logging
  -q, --quiet        Suppress non-essential output

Environment:
  COURIER_API_URL, COURIER_NAME, COURIER_TIMEOUT, COURIER_LOG_LEVEL,
  COURIER_LOG_FORMAT, COURIER_SERVER_ADDR, COURIER_HOME, COURIER_CONFIG

Examples:
  courier send --name ada "hello there"
  courier history --limit 10 --json
  courier --url http://localhost:9000 ping
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "courier %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  built:  %s\n", BuildDate)
	fmt.Fprintf(w, "  go:     %s\n", runtime.Version())
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command line arguments, not including the program name.
func Parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	word, rest := remaining[0], remaining[1:]
	args.Raw = rest
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		args.Subcommand = rest[0]
	}

	switch strings.ToLower(word) {
	case "tui", "ui":
		return CmdTUI, args
	case "send", "s":
		return CmdSend, args
	case "history", "hist":
		return CmdHistory, args
	case "clear":
		return CmdClear, args
	case "health":
		return CmdHealth, args
	case "ping":
		return CmdPing, args
	case "repl", "chat":
		return CmdRepl, args
	case "config", "cfg":
		return CmdConfig, args
	case "serve", "server":
		return CmdServe, args
	case "setup", "init":
		return CmdSetup, args
	case "version", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		args.Unknown = word
		return CmdUnknown, args
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Global flags may appear anywhere on the command line.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	value := func(i *int) string {
		if *i+1 < len(argv) {
			*i++
			return argv[*i]
		}
		return ""
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		switch arg {
		case "--json":
			args.JSON = true
		case "-v", "--verbose":
			args.Verbose = true
		case "-q", "--quiet":
			args.Quiet = true
		case "--url":
			args.URL = value(&i)
		case "--name":
			args.Name = value(&i)
		case "--config":
			args.ConfigPath = value(&i)
		case "--log-level":
			args.LogLevel = value(&i)
		default:
			switch {
			case strings.HasPrefix(arg, "--url="):
				args.URL = strings.TrimPrefix(arg, "--url=")
			case strings.HasPrefix(arg, "--name="):
				args.Name = strings.TrimPrefix(arg, "--name=")
			case strings.HasPrefix(arg, "--config="):
				args.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--log-level="):
				args.LogLevel = strings.TrimPrefix(arg, "--log-level=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, args
}

// =============================================================================
// SIMPLE HANDLERS
// =============================================================================

// VersionData is the JSON payload of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion handles the "version" command.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(env.Stdout)
	}
	PrintVersion(env.Stdout)
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp(env *Env) error {
	PrintUsage(env.Stdout)
	return nil
}

// HandleUnknown reports an unrecognized command.
func HandleUnknown(env *Env, args Args) error {
	return &UsageError{Message: fmt.Sprintf("unknown command %q (run 'courier help')", args.Unknown)}
}
