// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/courier/internal/config"
)

// SetupResult is the JSON payload of the setup command.
type SetupResult struct {
	Name       string `json:"name"`
	APIURL     string `json:"api_url"`
	Reachable  bool   `json:"reachable"`
	ConfigPath string `json:"config_path"`
}

// HandleSetup handles "courier setup". It asks for a sender name and a
// backend URL, checks the backend, and stores both in the profile section
// of the config file. Answers come from env.Stdin so the flow can be piped:
//
//	printf 'ada\nhttp://localhost:8787\n' | courier setup
//
// With --yes the current values are kept and nothing is read.
func HandleSetup(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "yes", "y")
	unattended := p.BoolFlag("yes") || p.BoolFlag("y")
	out := env.Stdout
	if args.JSON {
		out = env.Stderr
	}
	reader := bufio.NewReader(env.Stdin)

	fmt.Fprintln(out, TitleStyle.Render("courier setup"))
	fmt.Fprintln(out, RenderSeparator())

	// Step 1: the config directory must be writable.
	dir := filepath.Dir(env.ConfigPath)
	if err := checkWritable(dir); err != nil {
		fmt.Fprintf(out, "  %s config dir: %s\n", RenderStatus(false), dir)
		return &ConfigError{Err: err}
	}
	fmt.Fprintf(out, "  %s config dir: %s\n", RenderStatus(true), dir)

	// Step 2: name and URL.
	name := env.Config.Profile.Name
	url := env.Client.BaseURL()
	if !unattended {
		name = ask(out, reader, "Your name", name)
		url = ask(out, reader, "Backend URL", url)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &UsageError{Message: "name is required"}
	}

	check := env.Config.Clone()
	check.Profile.Name = name
	check.Profile.APIURL = url
	if err := check.Validate(); err != nil {
		return &ValidationError{Field: "profile", Reason: err.Error()}
	}

	// Step 3: reachability is reported but not required.
	env.Client.SetBaseURL(url)
	reachable := env.Client.TestConnection(ctx)
	if reachable {
		fmt.Fprintf(out, "  %s backend: %s\n", RenderStatus(true), env.Client.BaseURL())
	} else {
		fmt.Fprintf(out, "  %s backend: %s %s\n", RenderStatus(false), env.Client.BaseURL(),
			DimStyle.Render("(saved anyway; start one with 'courier serve')"))
	}

	// Step 4: save.
	if err := config.SaveProfile(env.ConfigPath, name, env.Client.BaseURL()); err != nil {
		return &ConfigError{Err: err}
	}
	env.Config.Profile.Name = name
	env.Config.Profile.APIURL = env.Client.BaseURL()
	fmt.Fprintf(out, "  %s saved: %s\n", RenderStatus(true), env.ConfigPath)

	if args.JSON {
		return NewJSONResponse("setup", SetupResult{
			Name:       name,
			APIURL:     env.Client.BaseURL(),
			Reachable:  reachable,
			ConfigPath: env.ConfigPath,
		}).Print(env.Stdout)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'courier' to open the interface.")
	return nil
}

// ask prints a prompt with a default and reads one line. EOF or an empty
// answer keeps the default.
func ask(out io.Writer, r *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Fprintf(out, "%s %s: ", PromptStyle.Render(label), DimStyle.Render("["+def+"]"))
	} else {
		fmt.Fprintf(out, "%s: ", PromptStyle.Render(label))
	}
	line, _ := r.ReadString('\n')
	if line = strings.TrimSpace(line); line != "" {
		return line
	}
	return def
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".courier-setup-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
