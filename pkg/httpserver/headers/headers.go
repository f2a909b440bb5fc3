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

// Package headers provides header names, values and content type inference
// for the raw socket HTTP frontend
package headers

import (
	"path"
	"strings"
)

const (
	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameContentLength represents the HTTP Header Name of "Content-Length"
	NameContentLength = "Content-Length"
	// NameLocation represents the HTTP Header Name of "Location"
	NameLocation = "Location"
	// NameHost represents the HTTP Header Name of "Host"
	NameHost = "Host"
	// NameUserAgent represents the HTTP Header Name of "User-Agent"
	NameUserAgent = "User-Agent"

	// ValueTextHTML represents the HTTP Header Value of "text/html"
	ValueTextHTML = "text/html"
	// ValueTextCSS represents the HTTP Header Value of "text/css"
	ValueTextCSS = "text/css"
	// ValueTextPlain represents the HTTP Header Value of "text/plain"
	ValueTextPlain = "text/plain"
	// ValueApplicationJavaScript represents the HTTP Header Value of "application/javascript"
	ValueApplicationJavaScript = "application/javascript"
	// ValueApplicationJSON represents the HTTP Header Value of "application/json"
	ValueApplicationJSON = "application/json"

	// CharsetSuffix is appended to every Content-Type written by the response writer
	CharsetSuffix = "; charset=UTF-8"
)

var contentTypes = map[string]string{
	".html": ValueTextHTML,
	".css":  ValueTextCSS,
	".js":   ValueApplicationJavaScript,
}

// ContentTypeForPath returns the Content-Type for the file extension of p,
// defaulting to text/plain
func ContentTypeForPath(p string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(p))]; ok {
		return ct
	}
	return ValueTextPlain
}
