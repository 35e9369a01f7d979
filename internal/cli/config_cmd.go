// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/courier/internal/config"
)

// HandleConfig handles "courier config [show|get|set|path|keys|reset]".
func HandleConfig(env *Env, args Args) error {
	p := NewArgParser(args.Raw, "confirm", "yes")

	switch p.Subcommand() {
	case "", "show":
		return configShow(env, args)
	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("KEY", "courier config get KEY")
		}
		return configGet(env, args, key)
	case "set":
		key, value := p.Positional(1), JoinPositionalArgs(p, 2)
		if key == "" || p.PositionalCount() < 3 {
			return ErrMissingArgument("KEY VALUE", "courier config set KEY VALUE")
		}
		return configSet(env, args, key, value)
	case "path":
		return configPath(env, args)
	case "keys":
		if args.JSON {
			return NewJSONResponse("config", config.GetAllKeys()).Print(env.Stdout)
		}
		for _, k := range config.GetAllKeys() {
			fmt.Fprintln(env.Stdout, k)
		}
		return nil
	case "reset":
		if !p.BoolFlag("confirm") && !p.BoolFlag("yes") {
			return &UsageError{Message: "refusing to reset config without --confirm"}
		}
		if err := config.SaveTOML(config.Default(), env.ConfigPath); err != nil {
			return &ConfigError{Err: err}
		}
		if args.JSON {
			return NewJSONResponse("config", ConfigPathData{Path: env.ConfigPath, Exists: true}).Print(env.Stdout)
		}
		fmt.Fprintf(env.Stdout, "%s Config reset: %s\n", RenderStatus(true), env.ConfigPath)
		return nil
	default:
		return &UsageError{Message: fmt.Sprintf("unknown config subcommand %q (use show, get, set, path, keys or reset)", p.Subcommand())}
	}
}

func configShow(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("config", env.Config).Print(env.Stdout)
	}
	fmt.Fprintln(env.Stdout, DimStyle.Render("# "+env.ConfigPath))
	fmt.Fprintln(env.Stdout, env.renderJSON([]byte(env.Config.String())))
	return nil
}

func configGet(env *Env, args Args, key string) error {
	v, err := env.Config.Get(key)
	if err != nil {
		return NewValidationError("key", key, err.Error())
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigValueData{Key: key, Value: v}).Print(env.Stdout)
	}
	switch val := v.(type) {
	case string:
		fmt.Fprintln(env.Stdout, val)
	case []string:
		fmt.Fprintln(env.Stdout, strings.Join(val, ","))
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, string(b))
	}
	return nil
}

// configSet edits the file on disk only. Environment and flag overrides in
// env.Config are not written back.
func configSet(env *Env, args Args, key, value string) error {
	cfg := config.Default()
	if _, err := os.Stat(env.ConfigPath); err == nil {
		if err := config.LoadTOML(cfg, env.ConfigPath); err != nil {
			return &ConfigError{Err: err}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &ConfigError{Err: err}
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError("key", key, err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	if err := config.SaveTOML(cfg, env.ConfigPath); err != nil {
		return &ConfigError{Err: err}
	}

	v, _ := cfg.Get(key)
	if args.JSON {
		return NewJSONResponse("config", ConfigValueData{Key: key, Value: v}).Print(env.Stdout)
	}
	fmt.Fprintf(env.Stdout, "%s %s = %v\n", RenderStatus(true), key, v)
	return nil
}

func configPath(env *Env, args Args) error {
	_, err := os.Stat(env.ConfigPath)
	exists := err == nil
	if args.JSON {
		return NewJSONResponse("config", ConfigPathData{Path: env.ConfigPath, Exists: exists}).Print(env.Stdout)
	}
	fmt.Fprintln(env.Stdout, env.ConfigPath)
	return nil
}
