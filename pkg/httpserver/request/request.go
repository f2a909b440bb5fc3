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

// Package request provides the Request model and the raw socket request parser
package request

import "strings"

// Request is an HTTP/1.1 request read from a client connection. It is
// immutable once parsed and lives only as long as its connection.
type Request struct {
	Method string
	// Target is the request-target exactly as received, including any query string
	Target string
	// Path is Target with the query string removed
	Path   string
	Query  Values
	Proto  string
	Header Header
	// ContentLength is the declared Content-Length, or 0 when absent
	ContentLength int64
	// Body is empty unless Method is POST and ContentLength > 0
	Body       []byte
	RemoteAddr string
}

// Header is a collection of request headers with case-insensitive names
type Header map[string]string

// Get returns the value of the named header, or "" if it is not present
func (h Header) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Lookup returns the value of the named header and whether it was present
func (h Header) Lookup(name string) (string, bool) {
	v, ok := h[strings.ToLower(name)]
	return v, ok
}

func (h Header) set(name, value string) {
	h[strings.ToLower(name)] = value
}
