// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/config"
	"github.com/jeranaias/courier/internal/ui/components"
)

// Env is what command handlers run against.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Config     *config.Config
	ConfigPath string
	Client     *api.Client
	Logger     *slog.Logger

	// Pretty enables markdown and highlighted JSON on stdout.
	Pretty bool
	Width  int

	markdown *components.Markdown
}

// NewEnv builds an Env for cfg, applying the --url and --name overrides
// from args. A nil cfg means defaults.
func NewEnv(cfg *config.Config, configPath string, args Args, logger *slog.Logger) *Env {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if args.URL != "" {
		cfg.Profile.APIURL = args.URL
	}
	if args.Name != "" {
		cfg.Profile.Name = args.Name
	}

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "courier/" + Version
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:   cfg.ActiveAPIURL(),
		Timeout:   cfg.Timeout(),
		UserAgent: userAgent,
		Logger:    logger,
	})

	pretty := IsStdoutTTY() && !args.JSON
	return &Env{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Config:     cfg,
		ConfigPath: configPath,
		Client:     client,
		Logger:     logger,
		Pretty:     pretty,
		Width:      GetTerminalWidth(),
		markdown:   &components.Markdown{Disabled: !pretty || !cfg.UI.RenderMarkdown},
	}
}

// renderReply formats reply text for the terminal.
func (e *Env) renderReply(text string) string {
	if e.markdown == nil {
		return strings.TrimSpace(text)
	}
	return e.markdown.Render(text, e.Width-4)
}

// renderJSON formats raw JSON, highlighted when output is pretty.
func (e *Env) renderJSON(raw []byte) string {
	return components.JSONView{Highlight: e.Pretty && e.Config.UI.HighlightJSON}.Render(raw)
}
