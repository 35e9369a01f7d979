// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrorPrefix starts the text of every error returned by the client.
const ErrorPrefix = "network request failed"

// ClientError is the single error type returned by Client.
type ClientError struct {
	Type ErrorType

	// StatusCode is the HTTP status for ErrTypeHTTPStatus, zero otherwise.
	StatusCode int

	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		if msg == "" {
			msg = e.Cause.Error()
		} else {
			msg += ": " + e.Cause.Error()
		}
	}
	return ErrorPrefix + ": " + msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeHTTPStatus is a reply with a non-2xx status.
	ErrTypeHTTPStatus
	// ErrTypeNetwork is a transport failure: refused connection, DNS, reset.
	ErrTypeNetwork
	// ErrTypeTimeout is a transport failure caused by a deadline.
	ErrTypeTimeout
	// ErrTypeInvalidResponse is a 2xx reply whose body is not the expected JSON.
	ErrTypeInvalidResponse
	// ErrTypeRequest is a request that could not be built or encoded.
	ErrTypeRequest
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeHTTPStatus:
		return "http_status"
	case ErrTypeNetwork:
		return "network"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeRequest:
		return "request"
	default:
		return "unknown"
	}
}

// newStatusError builds the error for a non-2xx reply. The reason phrase
// sent by the server is preferred over Go's canonical text.
func newStatusError(resp *http.Response) *ClientError {
	code := resp.StatusCode
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return &ClientError{
		Type:       ErrTypeHTTPStatus,
		StatusCode: code,
		Message:    fmt.Sprintf("HTTP %d: %s", code, text),
	}
}

func newTransportError(err error) *ClientError {
	t := ErrTypeNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		t = ErrTypeTimeout
	}
	return &ClientError{Type: t, Cause: err}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}

// IsHTTPStatus reports whether err is a non-2xx reply.
func IsHTTPStatus(err error) bool {
	return isType(err, ErrTypeHTTPStatus)
}

// IsNetwork reports whether err is a transport failure (timeouts included).
func IsNetwork(err error) bool {
	return isType(err, ErrTypeNetwork) || isType(err, ErrTypeTimeout)
}

// IsTimeout reports whether err was caused by a deadline.
func IsTimeout(err error) bool {
	return isType(err, ErrTypeTimeout)
}

// IsNotFound reports whether err is an HTTP 404 reply.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func isType(err error, t ErrorType) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == t
	}
	return false
}
