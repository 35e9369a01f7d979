// courier - a terminal client for the courier message service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jeranaias/courier/internal/cli"
	"github.com/jeranaias/courier/internal/config"
	"github.com/jeranaias/courier/internal/logging"
	"github.com/jeranaias/courier/internal/ui/app"
	"github.com/jeranaias/courier/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args := cli.Parse(argv)

	// Help and version work without a readable config.
	switch cmd {
	case cli.CmdHelp:
		env := cli.NewEnv(nil, "", args, logging.Discard())
		return finish(cmd, args, cli.HandleHelp(env))
	case cli.CmdVersion:
		env := cli.NewEnv(nil, "", args, logging.Discard())
		return finish(cmd, args, cli.HandleVersion(env, args))
	case cli.CmdUnknown:
		env := cli.NewEnv(nil, "", args, logging.Discard())
		return finish(cmd, args, cli.HandleUnknown(env, args))
	}

	cfg, configPath, err := loadConfig(args)
	if err != nil {
		return finish(cmd, args, &cli.ConfigError{Err: err})
	}
	config.SetGlobal(cfg)

	logger, closer, err := setupLogging(cmd, cfg, args)
	if err != nil {
		return finish(cmd, args, &cli.ConfigError{Err: err})
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.NewEnv(cfg, configPath, args, logger)
	logger.Debug("starting", "command", cmd.String(), "url", env.Client.BaseURL(), "config", configPath)

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(ctx, env, args)
	case cli.CmdSend:
		err = cli.HandleSend(ctx, env, args)
	case cli.CmdHistory:
		err = cli.HandleHistory(ctx, env, args)
	case cli.CmdClear:
		err = cli.HandleClear(ctx, env, args)
	case cli.CmdHealth:
		err = cli.HandleHealth(ctx, env, args)
	case cli.CmdPing:
		err = cli.HandlePing(ctx, env, args)
	case cli.CmdRepl:
		err = cli.HandleRepl(ctx, env, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(env, args)
	case cli.CmdServe:
		err = cli.HandleServe(ctx, env, args)
	case cli.CmdSetup:
		err = cli.HandleSetup(ctx, env, args)
	}
	return finish(cmd, args, err)
}

func runTUI(ctx context.Context, env *cli.Env, args cli.Args) error {
	if err := cli.RequiresTTY("open the interface"); err != nil {
		return err
	}
	return app.Run(ctx, app.Options{
		Client:     env.Client,
		Config:     env.Config,
		ConfigPath: env.ConfigPath,
		Theme:      styles.NewThemeFor(env.Config.UI.Theme),
		Logger:     env.Logger,

		// Environment overrides are re-applied by every reload already.
		URLOverride:  args.URL,
		NameOverride: args.Name,
	})
}

// finish reports err and returns the process exit code.
func finish(cmd cli.Command, args cli.Args, err error) int {
	if err == nil {
		return cli.ExitSuccess
	}
	out := os.Stderr
	if args.JSON {
		out = os.Stdout
	}
	cli.DisplayError(out, cmd.String(), err, args.JSON)
	return cli.GetExitCode(err)
}

// loadConfig reads the config file named by --config or the default location.
func loadConfig(args cli.Args) (*config.Config, string, error) {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// setupLogging logs to a file while the full-screen interface owns the
// terminal and to stderr otherwise.
func setupLogging(cmd cli.Command, cfg *config.Config, args cli.Args) (*slog.Logger, io.Closer, error) {
	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	switch {
	case args.LogLevel != "":
		opts.Level = args.LogLevel
	case args.Verbose:
		opts.Level = logging.LevelDebug
	case args.Quiet:
		opts.Level = logging.LevelError
	}

	if cmd == cli.CmdTUI || cmd == cli.CmdRepl {
		path := cfg.Log.File
		if path == "" {
			dir, err := config.ConfigDir()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(dir, "courier.log")
		}
		logger, closer, err := logging.SetupFile(path, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("log file %s: %w", path, err)
		}
		return logger, closer, nil
	}

	logger, err := logging.Setup(opts)
	return logger, nil, err
}
