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

package request

import (
	"net/url"
	"strings"
)

// Values maps query or form keys to their values. When a key repeats,
// the last occurrence wins.
type Values map[string]string

// Get returns the value for key, or "" when the key is missing
func (v Values) Get(key string) string {
	return v[key]
}

// Lookup returns the value for key and whether it was present
func (v Values) Lookup(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}

// SplitTarget splits a request-target on the first '?' into the path and
// the raw query string
func SplitTarget(target string) (string, string) {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i], target[i+1:]
	}
	return target, ""
}

// ParseQuery parses '&'-separated key=value pairs from a query string. Pairs
// without '=' are dropped. Percent-encoding is decoded where valid; a value
// that cannot be decoded is kept as received.
func ParseQuery(query string) Values {
	v := make(Values)
	for _, pair := range strings.Split(query, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		v[unescapeLenient(key)] = unescapeLenient(value)
	}
	return v
}

// ParseForm parses an application/x-www-form-urlencoded body. Pairs without
// '=' are dropped and values are percent-decoded. An invalid escape is an error.
func ParseForm(body []byte) (Values, error) {
	v := make(Values)
	if len(body) == 0 {
		return v, nil
	}
	for _, pair := range strings.Split(string(body), "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		val, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		v[k] = val
	}
	return v, nil
}

func unescapeLenient(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
