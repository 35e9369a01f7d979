// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/config"
)

// =============================================================================
// LINE EDITOR
// =============================================================================

// lineEditor wraps liner with a persisted input history.
type lineEditor struct {
	line        *liner.State
	historyFile string
}

func newLineEditor() *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeSlash)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &lineEditor{line: line, historyFile: filepath.Join(dir, "repl_history")}
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.line.ReadHistory(f)
		f.Close()
	}
	return e
}

func (e *lineEditor) read(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

func (e *lineEditor) close() {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = e.line.WriteHistory(f)
			f.Close()
		}
	}
	e.line.Close()
}

var slashCommands = []string{"/name", "/url", "/history", "/clear", "/health", "/ping", "/help", "/quit"}

func completeSlash(line string) []string {
	if !strings.HasPrefix(line, "/") {
		return nil
	}
	var out []string
	for _, c := range slashCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// SESSION
// =============================================================================

// Session executes REPL input lines against an Env.
type Session struct {
	Env  *Env
	Args Args
}

// Exec runs one input line. It returns false when the session should end.
// Plain text is sent as a message under the current name.
func (s *Session) Exec(ctx context.Context, input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return true, nil
	}
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return false, nil
	}
	if !strings.HasPrefix(input, "/") {
		name, err := senderName(s.Env)
		if err != nil {
			return true, err
		}
		return true, sendMessage(ctx, s.Env, Args{Quiet: s.Args.Quiet}, name, input, false)
	}

	parts := strings.Fields(input)
	command, rest := strings.ToLower(parts[0]), parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		printReplHelp(s.Env)
	case "/quit", "/q", "/exit":
		return false, nil
	case "/name":
		if len(rest) == 0 {
			fmt.Fprintln(s.Env.Stdout, RenderKeyValue("name", s.Env.Config.Profile.Name))
			return true, nil
		}
		name := strings.Join(rest, " ")
		s.Env.Config.Profile.Name = name
		fmt.Fprintf(s.Env.Stdout, "%s name set to %s\n", RenderStatus(true), name)
		return true, s.saveProfile(func(p *config.ProfileConfig) { p.Name = name })
	case "/url":
		if len(rest) == 0 {
			fmt.Fprintln(s.Env.Stdout, RenderKeyValue("url", s.Env.Client.BaseURL()))
			return true, nil
		}
		url := api.NormalizeBaseURL(rest[0])
		check := s.Env.Config.Clone()
		check.Profile.APIURL = url
		if err := check.Validate(); err != nil {
			return true, &ValidationError{Field: "url", Value: rest[0], Reason: err.Error()}
		}
		s.Env.Client.SetBaseURL(url)
		s.Env.Config.Profile.APIURL = url
		fmt.Fprintf(s.Env.Stdout, "%s url set to %s\n", RenderStatus(true), url)
		return true, s.saveProfile(func(p *config.ProfileConfig) { p.APIURL = url })
	case "/history":
		raw := []string{}
		if len(rest) > 0 {
			raw = append(raw, "--limit", rest[0])
		}
		return true, HandleHistory(ctx, s.Env, Args{Raw: raw, Quiet: s.Args.Quiet})
	case "/clear":
		if len(rest) == 0 || (rest[0] != "yes" && rest[0] != "confirm") {
			fmt.Fprintln(s.Env.Stdout, WarningStyle.Render("type /clear yes to delete all history"))
			return true, nil
		}
		return true, HandleClear(ctx, s.Env, Args{Raw: []string{"--confirm"}})
	case "/health":
		return true, HandleHealth(ctx, s.Env, Args{})
	case "/ping":
		return true, HandlePing(ctx, s.Env, Args{})
	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
	return true, nil
}

// saveProfile writes a name or URL the user chose in the session. Only the
// changed key is written; flag and environment overrides stay off disk.
func (s *Session) saveProfile(update func(p *config.ProfileConfig)) error {
	if s.Env.ConfigPath == "" {
		return nil
	}
	if err := config.UpdateProfile(s.Env.ConfigPath, update); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

func printReplHelp(env *Env) {
	fmt.Fprintln(env.Stdout, TitleStyle.Render("Commands"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/name [NAME]", "show or change the sender name"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/url [URL]", "show or change the backend"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/history [N]", "show recent history"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/clear yes", "delete all history"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/health", "check backend health"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/ping", "test connectivity"))
	fmt.Fprintln(env.Stdout, RenderKeyValue("/quit", "leave"))
	fmt.Fprintln(env.Stdout, DimStyle.Render("Anything else is sent as a message."))
}

// HandleRepl handles "courier repl".
func HandleRepl(ctx context.Context, env *Env, args Args) error {
	if err := RequiresTTY("run the repl"); err != nil {
		return err
	}

	editor := newLineEditor()
	defer editor.close()

	session := &Session{Env: env, Args: args}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s\n", TitleStyle.Render("courier"), DimStyle.Render(env.Client.BaseURL()))
		fmt.Fprintln(env.Stdout, DimStyle.Render("Type /help for commands, /quit to leave."))
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		name := env.Config.Profile.Name
		if name == "" {
			name = "anonymous"
		}
		input, err := editor.read(PromptStyle.Render(name + "> "))
		if err != nil {
			// Ctrl+C, Ctrl+D and closed input all end the session.
			if !errors.Is(err, liner.ErrPromptAborted) {
				env.Logger.Debug("repl input closed", "error", err)
			}
			fmt.Fprintln(env.Stdout)
			return nil
		}

		more, err := session.Exec(ctx, input)
		if err != nil {
			printReplError(env, err)
		}
		if !more {
			return nil
		}
	}
}

func printReplError(env *Env, err error) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		fmt.Fprintln(env.Stdout, ErrorStyle.Render(rejected.Error()))
		return
	}
	if api.IsNetwork(err) {
		fmt.Fprintf(env.Stdout, "%s %v\n", ErrorStyle.Render("[offline]"), err)
		return
	}
	fmt.Fprintf(env.Stdout, "%s %v\n", ErrorStyle.Render("[error]"), err)
}
