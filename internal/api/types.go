// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// MessageRequest is the body of POST /api/message.
type MessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Message string `json:"message" validate:"max=2000"`
}

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

// Envelope is the common reply wrapper used by every endpoint.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// MessageResponse is the reply of POST /api/message.
type MessageResponse = Envelope[MessageResponseData]

// HistoryResponse is the reply of GET /api/history.
type HistoryResponse = Envelope[HistoryResponseData]

// Response is the reply of endpoints whose data shape is not fixed
// (DELETE /api/history, GET /api/health). Data is kept undecoded.
type Response = Envelope[json.RawMessage]

// DecodeData decodes the raw data of r into v. A missing data field leaves
// v untouched.
func DecodeData(r *Response, v any) error {
	if r == nil || r.Data == nil || len(*r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(*r.Data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// Response types reported in MessageMetadata.ResponseType.
const (
	ResponseTypeGreeting  = "greeting"
	ResponseTypeQuestion  = "question"
	ResponseTypeStatement = "statement"
	ResponseTypeEmpty     = "empty"
)

// MessageMetadata is the backend's analysis of a submitted message.
type MessageMetadata struct {
	WordCount    int    `json:"wordCount"`
	HasQuestion  bool   `json:"hasQuestion"`
	HasGreeting  bool   `json:"hasGreeting"`
	ResponseType string `json:"responseType,omitempty"`
}

// MessageResponseData is the data of a successful message reply.
type MessageResponseData struct {
	Message   string           `json:"message"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
	Timestamp string           `json:"timestamp"`
}

// =============================================================================
// HISTORY TYPES
// =============================================================================

// HistoryID identifies a history item. Backends send it either as a JSON
// string or a JSON number; both decode to the same textual form.
type HistoryID string

// UnmarshalJSON accepts a string or a number.
func (id *HistoryID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = HistoryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("history id must be a string or number: %w", err)
	}
	*id = HistoryID(n.String())
	return nil
}

// IsNumeric reports whether the id is an integer.
func (id HistoryID) IsNumeric() bool {
	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

func (id HistoryID) String() string {
	return string(id)
}

// HistoryInput is the submitted half of a history item.
type HistoryInput struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ClientInfo describes the caller that produced a history item.
type ClientInfo struct {
	UserAgent string `json:"userAgent,omitempty"`
	IP        string `json:"ip,omitempty"`
}

// HistoryItem is one processed message as recorded by the backend.
type HistoryItem struct {
	ID         HistoryID        `json:"id"`
	Input      HistoryInput     `json:"input"`
	Output     string           `json:"output"`
	Timestamp  string           `json:"timestamp"`
	Metadata   *MessageMetadata `json:"metadata,omitempty"`
	ClientInfo *ClientInfo      `json:"clientInfo,omitempty"`
}

// HistoryStats summarizes the whole history store.
type HistoryStats struct {
	TotalMessages      int     `json:"totalMessages"`
	SuccessfulMessages int     `json:"successfulMessages"`
	ErrorRate          float64 `json:"errorRate"`
	AverageWordCount   float64 `json:"averageWordCount"`
}

// HistoryResponseData is the data of a history reply.
type HistoryResponseData struct {
	History []HistoryItem `json:"history"`
	Stats   HistoryStats  `json:"stats"`
	Total   int           `json:"total"`
}

// =============================================================================
// HEALTH TYPES
// =============================================================================

// HealthData is the data courier's own backend returns from /api/health.
// Other backends may return any shape; fields absent from the reply stay zero.
type HealthData struct {
	Status        string  `json:"status"`
	Version       string  `json:"version,omitempty"`
	UptimeSeconds float64 `json:"uptime,omitempty"`
	Messages      int     `json:"messages,omitempty"`
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// ParseTimestamp parses the RFC 3339 timestamps used on the wire. The zero
// time is returned for anything else.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatTimestamp formats t for the wire.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
