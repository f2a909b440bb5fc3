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

// Package response provides the Response model and the raw socket response writer
package response

import (
	"io"
	"strconv"

	berr "github.com/myblog/blogserver/pkg/errors"
	"github.com/myblog/blogserver/pkg/httpserver/headers"
)

const crlf = "\r\n"

var statusText = map[int]string{
	200: "OK",
	303: "See Other",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	413: "Payload Too Large",
	500: "Internal Server Error",
	503: "Service Unavailable",
}

// StatusText returns the reason phrase for the status code, or "" if unknown
func StatusText(code int) string {
	return statusText[code]
}

// Response is produced by a handler and consumed exactly once by the writer
type Response struct {
	Status      int
	StatusText  string
	ContentType string
	Body        []byte
	// Location, when set, makes this a 303 redirect with no body
	Location string
}

// New returns a Response with the standard reason phrase for status
func New(status int, contentType string, body []byte) *Response {
	return &Response{
		Status:      status,
		StatusText:  StatusText(status),
		ContentType: contentType,
		Body:        body,
	}
}

// IsRedirect returns true if the Response will be written as a 303 redirect
func (r *Response) IsRedirect() bool {
	return r.Location != ""
}

// WriteTo serializes the Response to w and returns the number of bytes written
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	var b []byte
	if r.IsRedirect() {
		b = appendRedirect(nil, r.Location)
	} else {
		b = appendResponse(nil, r.Status, r.StatusText, r.ContentType, r.Body)
	}
	return write(w, b)
}

// Write writes a complete response to w in this order: the status line,
// Content-Type with a UTF-8 charset, Content-Length as the byte length of body,
// a blank line, then body. w is flushed if it supports flushing.
func Write(w io.Writer, status int, statusText, contentType string, body []byte) error {
	_, err := write(w, appendResponse(nil, status, statusText, contentType, body))
	return err
}

// WriteRedirect writes a 303 See Other response with a Location header and no body
func WriteRedirect(w io.Writer, location string) error {
	_, err := write(w, appendRedirect(nil, location))
	return err
}

func appendResponse(b []byte, status int, text, contentType string, body []byte) []byte {
	b = append(b, "HTTP/1.1 "...)
	b = strconv.AppendInt(b, int64(status), 10)
	b = append(b, ' ')
	b = append(b, text...)
	b = append(b, crlf...)
	b = append(b, headers.NameContentType+": "...)
	b = append(b, contentType...)
	b = append(b, headers.CharsetSuffix+crlf...)
	b = append(b, headers.NameContentLength+": "...)
	b = strconv.AppendInt(b, int64(len(body)), 10)
	b = append(b, crlf+crlf...)
	return append(b, body...)
}

func appendRedirect(b []byte, location string) []byte {
	b = append(b, "HTTP/1.1 303 See Other"+crlf...)
	b = append(b, headers.NameLocation+": "...)
	b = append(b, location...)
	return append(b, crlf+crlf...)
}

type flusher interface {
	Flush() error
}

func write(w io.Writer, b []byte) (int64, error) {
	if w == nil {
		return 0, berr.ErrNilWriter
	}
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return int64(n), err
		}
	}
	return int64(n), nil
}
