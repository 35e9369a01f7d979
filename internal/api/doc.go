// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the message processor backend.
//
// The backend exposes four JSON endpoints:
//
//	POST   /api/message          submit a {name, message} pair
//	GET    /api/history          list history (?limit=N) or fetch one (?id=ID)
//	DELETE /api/history          clear history
//	GET    /api/health           health check
//
// Every reply uses the same envelope: {success, data?, error?, timestamp}.
//
// # Errors
//
// All failures surface as *ClientError. Its Error() text always starts with
// "network request failed: " and, for non-2xx replies, contains
// "HTTP <status>: <status text>", so callers can show err.Error() directly.
// StatusCode and the Is* helpers are available for callers that need to
// branch (the CLI maps them to exit codes).
//
// The client performs exactly one HTTP call per operation. There is no retry
// and no timeout unless ClientConfig.Timeout or the context imposes one.
//
// # Usage
//
//	client := api.NewClient("http://localhost:8787/")
//	resp, err := client.SendMessage(ctx, api.MessageRequest{Name: "ana", Message: "hi"})
//	if err != nil {
//	    fmt.Println(err)
//	    return
//	}
//	if !resp.Success {
//	    fmt.Println("Error:", resp.Error)
//	    return
//	}
//	fmt.Println(resp.Data.Message)
package api
