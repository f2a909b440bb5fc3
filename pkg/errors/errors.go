/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errors provides common Error functionality to the blog server
package errors

import (
	"errors"
	"fmt"
)

// ErrNilWriter is an error for a nil writer when a non-nil writer was expected
var ErrNilWriter = errors.New("nil writer")

// ErrNilListener indicates an error that the underlying net.Listener is nil
var ErrNilListener = errors.New("nil listener")

// ErrInvalidPath is an error for when a route's path is invalid
var ErrInvalidPath = errors.New("invalid path value")

// ErrInvalidMethod is an error for when a route's method is invalid
var ErrInvalidMethod = errors.New("invalid method value")

// ErrWildcardMethod indicates the wildcard route was registered for a method other than GET
var ErrWildcardMethod = errors.New("wildcard routes are only supported for GET")

// ErrDrainTimeout indicates an error that the connection drain took longer than the requested timeout
var ErrDrainTimeout = errors.New("timed out draining")

// ErrEmptyRequest indicates the client closed the connection before sending a request line
var ErrEmptyRequest = errors.New("empty request")

// ErrMalformedRequestLine indicates the request line did not contain a method and path
var ErrMalformedRequestLine = errors.New("malformed request line")

// ErrInvalidContentLength indicates the Content-Length header is not a non-negative integer
var ErrInvalidContentLength = errors.New("invalid content length")

// ErrBodyTooLarge indicates the declared Content-Length exceeds the configured maximum
var ErrBodyTooLarge = errors.New("request body too large")

// ErrIncompleteBody indicates the stream ended before the declared body length was read
var ErrIncompleteBody = errors.New("incomplete request body")

// ErrLineTooLong indicates a request or header line exceeded the configured maximum
var ErrLineTooLong = errors.New("line too long")

// ErrReadTimeout indicates the client did not deliver the request before the read deadline
var ErrReadTimeout = errors.New("read timeout")

// ParseFailure wraps any error encountered while reading a request off the wire.
// The connection is closed without a response.
type ParseFailure struct {
	Err error
}

func (e *ParseFailure) Error() string {
	return "parse failure: " + e.Err.Error()
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// NewParseFailure returns err wrapped as a ParseFailure
func NewParseFailure(err error) error {
	if err == nil {
		return nil
	}
	var pf *ParseFailure
	if errors.As(err, &pf) {
		return err
	}
	return &ParseFailure{Err: err}
}

// IsParseFailure returns true when err is or wraps a ParseFailure
func IsParseFailure(err error) bool {
	var pf *ParseFailure
	return errors.As(err, &pf)
}

// ConnectionError wraps a failed accept, read or write on a client connection
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s failed: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError returns err wrapped as a ConnectionError for the operation
func NewConnectionError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Op: op, Err: err}
}

// IsConnectionError returns true when err is or wraps a ConnectionError
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// ParseFailureReason returns a short label for the ParseFailure, suitable for
// use as a metrics label
func ParseFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyRequest):
		return "empty"
	case errors.Is(err, ErrMalformedRequestLine):
		return "request_line"
	case errors.Is(err, ErrInvalidContentLength):
		return "content_length"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, ErrIncompleteBody):
		return "incomplete_body"
	case errors.Is(err, ErrLineTooLong):
		return "line_too_long"
	case errors.Is(err, ErrReadTimeout):
		return "timeout"
	}
	return "read"
}

// InvalidPath returns an error indicating the route path is not valid.
func InvalidPath(path string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPath, path)
}

// InvalidMethod returns an error indicating the route method is not valid.
func InvalidMethod(method string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMethod, method)
}

// ErrServerAlreadyStarted indicates Start was called on a running daemon
var ErrServerAlreadyStarted = errors.New("server already started")
