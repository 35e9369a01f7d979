// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/courier/internal/config"
)

// reloadDebounce coalesces bursts of writes from editors.
const reloadDebounce = 250 * time.Millisecond

// Run starts the interface and blocks until the user quits or ctx is done.
// When opts.Config.UI.WatchConfig is set and ConfigPath is known, edits to
// the config file are applied live.
func Run(ctx context.Context, opts Options) error {
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	if opts.Config.UI.WatchConfig && opts.ConfigPath != "" && opts.Reloads == nil {
		reloads := make(chan ConfigReloadedMsg, 1)
		w, err := config.Watch(opts.ConfigPath, reloadDebounce, func(cfg *config.Config, err error) {
			msg := ConfigReloadedMsg{Config: cfg, Err: err}
			select {
			case reloads <- msg:
			default:
				// Replace a pending reload with the newer one.
				select {
				case <-reloads:
				default:
				}
				reloads <- msg
			}
		})
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("config watch disabled", "path", opts.ConfigPath, "error", err)
			}
		} else {
			defer w.Close()
			opts.Reloads = reloads
		}
	}

	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
