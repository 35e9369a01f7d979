// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the reference message processor backend.
//
// It implements the same four endpoints the client consumes, with all state
// kept in memory:
//   - POST   /api/message  - analyse a message, reply, and record it in history
//   - GET    /api/history  - list history newest first (?limit=N) or one item (?id=ID)
//   - DELETE /api/history  - clear history
//   - GET    /api/health   - health check
//
// Every reply is a {success, data?, error?, timestamp} envelope, including
// 404/405/429/500 errors produced by the router and middleware.
//
// Middleware (outermost first): panic recovery, security headers, request
// logging, CORS, per-IP rate limiting.
//
// Usage:
//
//	srv := server.New(server.Config{Addr: ":8787"})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
