// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jeranaias/courier/internal/api"
)

// ============================================================================
// MESSAGE HANDLER
// ============================================================================

// handleMessage handles POST /api/message.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req api.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.store.RecordFailure()
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		s.store.RecordFailure()
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	now := s.now()
	ts := api.FormatTimestamp(now)
	meta := Analyze(req.Message)
	reply := Compose(req.Name, req.Message, meta)

	s.store.Add(api.HistoryItem{
		ID: api.HistoryID(s.newID()),
		Input: api.HistoryInput{
			Name:      req.Name,
			Message:   req.Message,
			Timestamp: ts,
		},
		Output:    reply,
		Timestamp: ts,
		Metadata:  &meta,
		ClientInfo: &api.ClientInfo{
			UserAgent: r.UserAgent(),
			IP:        GetClientIP(r),
		},
	})

	s.logger.Debug("message processed", "name", req.Name, "words", meta.WordCount, "type", meta.ResponseType)

	writeSuccess(w, http.StatusOK, api.MessageResponseData{
		Message:   reply,
		Metadata:  &meta,
		Timestamp: ts,
	})
}

// ============================================================================
// HISTORY HANDLERS
// ============================================================================

// handleHistory handles GET /api/history. With ?id= it returns a one-item
// list or 404; otherwise newest first, optionally bounded by ?limit=.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var items []api.HistoryItem
	if query.Has("id") {
		item, ok := s.store.Get(query.Get("id"))
		if !ok {
			writeError(w, http.StatusNotFound, "history item not found")
			return
		}
		items = []api.HistoryItem{item}
	} else {
		limit := 0
		if raw := query.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		items = s.store.List(limit)
	}

	writeSuccess(w, http.StatusOK, api.HistoryResponseData{
		History: items,
		Stats:   s.store.Stats(),
		Total:   s.store.Len(),
	})
}

// ClearResult is the data of a DELETE /api/history reply.
type ClearResult struct {
	Cleared int `json:"cleared"`
}

// handleClearHistory handles DELETE /api/history.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	n := s.store.Clear()
	s.logger.Info("history cleared", "items", n)
	writeSuccess(w, http.StatusOK, ClearResult{Cleared: n})
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, api.HealthData{
		Status:        "ok",
		Version:       s.cfg.Version,
		UptimeSeconds: s.Uptime().Round(time.Millisecond).Seconds(),
		Messages:      s.store.Len(),
	})
}

// ============================================================================
// VALIDATION
// ============================================================================

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage turns the first validation failure into a message for
// the client, e.g. "name is required".
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func newHistoryID() string {
	return uuid.NewString()
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeSuccess writes a success envelope around data.
func writeSuccess[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, api.Envelope[T]{
		Success:   true,
		Data:      &data,
		Timestamp: api.FormatTimestamp(time.Now()),
	})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Envelope[struct{}]{
		Success:   false,
		Error:     message,
		Timestamp: api.FormatTimestamp(time.Now()),
	})
}
