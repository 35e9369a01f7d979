// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/courier/internal/server"
)

// HandleServe handles "courier serve [--addr ADDR]". It blocks until ctx is
// cancelled.
func HandleServe(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	addr := p.FlagOrDefault("addr", env.Config.Server.Addr)

	srv := server.New(server.Config{
		Addr:            addr,
		RateLimitPerMin: env.Config.Server.RateLimitPerMin,
		MaxHistory:      env.Config.Server.MaxHistory,
		CORSOrigins:     env.Config.Server.CORSOrigins,
		Version:         Version,
		Logger:          env.Logger,
	})

	if !args.Quiet && !args.JSON {
		fmt.Fprintf(env.Stderr, "%s listening on %s\n", TitleStyle.Render("courier"), addr)
	}
	return srv.Run(ctx)
}
