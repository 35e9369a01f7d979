// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/courier/internal/api"
)

// HandleHealth handles "courier health". The health call and the
// connection test run concurrently. A failed health call cancels the
// connection test, which then reports the backend unreachable.
func HandleHealth(ctx context.Context, env *Env, args Args) error {
	var (
		resp      *api.Response
		reachable bool
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := env.Client.HealthCheck(gCtx)
		resp = r
		return err
	})
	g.Go(func() error {
		reachable = env.Client.TestConnection(gCtx)
		return nil
	})
	healthErr := g.Wait()
	if healthErr != nil {
		reachable = false
	}

	report := HealthReport{URL: env.Client.BaseURL(), Reachable: reachable}
	if healthErr != nil {
		report.Error = healthErr.Error()
	} else {
		b, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		report.Reply = b
		if !resp.Success {
			report.Error = resp.Error
		}
	}

	if args.JSON {
		out := NewJSONResponse("health", report)
		if report.Error != "" {
			out.Success = false
			out.Error = &report.Error
		}
		if err := out.Print(env.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(env.Stdout, "%s %s\n", RenderStatus(reachable && healthErr == nil), env.Client.BaseURL())
		if report.Reply != nil {
			fmt.Fprintln(env.Stdout, env.renderJSON(report.Reply))
		}
	}

	switch {
	case healthErr != nil:
		return healthErr
	case !resp.Success:
		return &RejectedError{Command: "health", Reason: resp.Error}
	}
	return nil
}

// HandlePing handles "courier ping".
func HandlePing(ctx context.Context, env *Env, args Args) error {
	url := env.Client.BaseURL()
	ok := env.Client.TestConnection(ctx)

	if args.JSON {
		if err := NewJSONResponse("ping", PingData{URL: url, Reachable: ok}).Print(env.Stdout); err != nil {
			return err
		}
	} else if ok {
		fmt.Fprintln(env.Stdout, "ok")
	} else {
		fmt.Fprintln(env.Stdout, "unreachable")
	}

	if !ok {
		return &api.ClientError{Type: api.ErrTypeNetwork, Message: "backend unreachable at " + url}
	}
	return nil
}
