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

package response

import (
	"fmt"
	"net/url"

	"github.com/myblog/blogserver/pkg/httpserver/headers"
	"github.com/myblog/blogserver/pkg/util/strings"
)

const (
	notFoundBody = "<html><body><h1>404 Not Found</h1>" +
		"<p>The requested resource was not found on this server.</p></body></html>"
	badRequestFormat    = "<html><body><h1>Error</h1><p>%s</p></body></html>"
	internalErrorFormat = "<html><body><h1>500 Internal Server Error</h1><p>%s</p></body></html>"
)

// NotFound returns the standard 404 response
func NotFound() *Response {
	return New(404, headers.ValueTextHTML, []byte(notFoundBody))
}

// BadRequest returns a 400 response carrying msg in an HTML fragment
func BadRequest(msg string) *Response {
	return New(400, headers.ValueTextHTML, []byte(fmt.Sprintf(badRequestFormat, msg)))
}

// InternalError returns a 500 response carrying msg in an HTML fragment
func InternalError(msg string) *Response {
	return New(500, headers.ValueTextHTML, []byte(fmt.Sprintf(internalErrorFormat, msg)))
}

// Text returns a text/plain response
func Text(status int, body string) *Response {
	return New(status, headers.ValueTextPlain, []byte(body))
}

// Redirect returns a 303 See Other response to location
func Redirect(location string) *Response {
	return &Response{Status: 303, StatusText: StatusText(303), Location: location}
}

// RedirectWithMessage returns a 303 to path with the message query-escaped
// into its message parameter
func RedirectWithMessage(path, message string) *Response {
	return Redirect(path + "?message=" + url.QueryEscape(message))
}

// JSON returns a hand-formatted {"success": ..., "message": ...} response
func JSON(status int, success bool, message string) *Response {
	body := fmt.Sprintf(`{"success": %t, "message": "%s"}`,
		success, strings.EscapeQuotes(message))
	return New(status, headers.ValueApplicationJSON, []byte(body))
}

// JSONWithRedirect returns a hand-formatted 200 response that also carries a
// redirect target for the client script to follow
func JSONWithRedirect(success bool, redirect, message string) *Response {
	body := fmt.Sprintf(`{"success": %t, "redirect": "%s", "message": "%s"}`,
		success, strings.EscapeQuotes(redirect), strings.EscapeQuotes(message))
	return New(200, headers.ValueApplicationJSON, []byte(body))
}
