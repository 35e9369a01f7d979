// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/courier/internal/api"
)

// HandleSend handles "courier send [--raw] message...". A message of "-"
// is read from stdin.
func HandleSend(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw, "raw")

	name, err := senderName(env)
	if err != nil {
		return err
	}

	message := JoinPositionalArgs(p, 0)
	if message == "-" {
		b, err := io.ReadAll(env.Stdin)
		if err != nil {
			return fmt.Errorf("read message from stdin: %w", err)
		}
		message = strings.TrimRight(string(b), "\r\n")
	}

	return sendMessage(ctx, env, args, name, message, p.BoolFlag("raw"))
}

func senderName(env *Env) (string, error) {
	name := strings.TrimSpace(env.Config.Profile.Name)
	if name == "" {
		return "", &UsageError{Message: "name is required (use --name or set profile.name)"}
	}
	return name, nil
}

// sendMessage sends message as is and prints the reply.
func sendMessage(ctx context.Context, env *Env, args Args, name, message string, raw bool) error {
	resp, err := env.Client.SendMessage(ctx, api.MessageRequest{Name: name, Message: message})
	if err != nil {
		return err
	}

	if args.JSON {
		out := NewJSONResponse("send", resp)
		if !resp.Success {
			out.Success = false
			out.Error = &resp.Error
		}
		if err := out.Print(env.Stdout); err != nil {
			return err
		}
		if !resp.Success {
			return &RejectedError{Command: "send", Reason: resp.Error}
		}
		return nil
	}

	if raw {
		b, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, env.renderJSON(b))
		if !resp.Success {
			return &RejectedError{Command: "send", Reason: resp.Error}
		}
		return nil
	}

	if !resp.Success {
		return &RejectedError{Command: "send", Reason: resp.Error}
	}
	if resp.Data == nil {
		return &RejectedError{Command: "send", Reason: "response has no data"}
	}

	fmt.Fprintln(env.Stdout, env.renderReply(resp.Data.Message))
	if !args.Quiet {
		if line := metadataLine(resp.Data.Metadata); line != "" {
			fmt.Fprintln(env.Stdout, DimStyle.Render(line))
		}
	}
	return nil
}

// metadataLine summarizes reply metadata on one line.
func metadataLine(meta *api.MessageMetadata) string {
	if meta == nil {
		return ""
	}
	line := fmt.Sprintf("words: %d | question: %t | greeting: %t", meta.WordCount, meta.HasQuestion, meta.HasGreeting)
	if meta.ResponseType != "" {
		line += " | type: " + meta.ResponseType
	}
	return line
}
