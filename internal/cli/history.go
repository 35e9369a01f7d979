// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/courier/internal/api"
	"github.com/jeranaias/courier/internal/ui/components"
	"github.com/jeranaias/courier/internal/ui/styles"
)

// HandleHistory handles "courier history [--limit N] [--id ID]".
func HandleHistory(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw)

	if id := p.Flag("id"); id != "" {
		return showHistoryItem(ctx, env, args, id)
	}

	limit := env.Config.History.DefaultLimit
	if p.HasFlag("limit") {
		n, err := ParseNonNegativeInt(p.Flag("limit"), "limit")
		if err != nil {
			return err
		}
		limit = n
	}

	resp, err := env.Client.GetHistory(ctx, limit)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &RejectedError{Command: "history", Reason: resp.Error}
	}
	data := resp.Data
	if data == nil {
		data = &api.HistoryResponseData{}
	}

	if args.JSON {
		return NewJSONResponse("history", data).Print(env.Stdout)
	}

	table := components.NewHistoryTable(styles.NewThemeFor(env.Config.UI.Theme))
	table.SetWidth(env.Width)
	table.SetData(data)

	if !args.Quiet {
		fmt.Fprintln(env.Stdout, DimStyle.Render(table.StatsLine()))
	}
	if len(data.History) == 0 {
		fmt.Fprintln(env.Stdout, "No history.")
		return nil
	}
	for _, item := range data.History {
		fmt.Fprintf(env.Stdout, "%s  %s\n", DimStyle.Render(item.ID.String()), table.Row(item))
	}
	if data.Total > len(data.History) && !args.Quiet {
		fmt.Fprintln(env.Stdout, DimStyle.Render(fmt.Sprintf("showing %d of %d", len(data.History), data.Total)))
	}
	return nil
}

func showHistoryItem(ctx context.Context, env *Env, args Args, id string) error {
	resp, err := env.Client.GetHistoryByID(ctx, id)
	if api.IsNotFound(err) {
		return &NotFoundError{Resource: "history item", ID: id}
	}
	if err != nil {
		return err
	}
	if !resp.Success {
		return &RejectedError{Command: "history", Reason: resp.Error}
	}
	if resp.Data == nil || len(resp.Data.History) == 0 {
		return &NotFoundError{Resource: "history item", ID: id}
	}
	item := resp.Data.History[0]

	if args.JSON {
		return NewJSONResponse("history", item).Print(env.Stdout)
	}

	fmt.Fprintln(env.Stdout, RenderKeyValue("id", item.ID.String()))
	fmt.Fprintln(env.Stdout, RenderKeyValue("when", item.Timestamp))
	fmt.Fprintln(env.Stdout, RenderKeyValue("name", item.Input.Name))
	fmt.Fprintln(env.Stdout, RenderKeyValue("message", item.Input.Message))
	fmt.Fprintln(env.Stdout, RenderKeyValue("reply", item.Output))
	if line := metadataLine(item.Metadata); line != "" {
		fmt.Fprintln(env.Stdout, RenderKeyValue("metadata", line))
	}
	if item.ClientInfo != nil && item.ClientInfo.UserAgent != "" {
		fmt.Fprintln(env.Stdout, RenderKeyValue("client", item.ClientInfo.UserAgent))
	}
	return nil
}

// HandleClear handles "courier clear --confirm".
func HandleClear(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "confirm", "yes", "y")
	if !p.BoolFlag("confirm") && !p.BoolFlag("yes") && !p.BoolFlag("y") {
		return &UsageError{Message: "refusing to clear history without --confirm"}
	}

	resp, err := env.Client.ClearHistory(ctx)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &RejectedError{Command: "clear", Reason: resp.Error}
	}

	var data ClearData
	if err := api.DecodeData(resp, &data); err != nil {
		env.Logger.Debug("clear reply carried no count", "error", err)
	}

	if args.JSON {
		return NewJSONResponse("clear", data).Print(env.Stdout)
	}
	fmt.Fprintf(env.Stdout, "%s Cleared %d item(s).\n", RenderStatus(true), data.Cleared)
	return nil
}
