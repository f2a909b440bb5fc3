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

// Package static defines the static content Provider used by the wildcard
// route, and an fs.FS-backed implementation shared by the filesystem and
// embedded providers
package static

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// ErrNotFound is returned by a Provider when the path does not exist
var ErrNotFound = errors.New("static content not found")

// Provider loads static content by URL path
type Provider interface {
	// Load returns the full content at path. It returns ErrNotFound when
	// nothing exists there.
	Load(path string) ([]byte, error)
}

// FSProvider serves content from an fs.FS. Paths ending in .html resolve under
// HTMLDir; everything else resolves from the root of the FS.
type FSProvider struct {
	fsys    fs.FS
	htmlDir string
}

// NewFSProvider returns a Provider reading from fsys
func NewFSProvider(fsys fs.FS, htmlDir string) *FSProvider {
	return &FSProvider{fsys: fsys, htmlDir: strings.Trim(htmlDir, "/")}
}

// Load implements Provider
func (p *FSProvider) Load(urlPath string) ([]byte, error) {
	name := ResolvePath(p.htmlDir, urlPath)
	if name == "" {
		return nil, ErrNotFound
	}
	fi, err := fs.Stat(p.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if fi.IsDir() {
		return nil, ErrNotFound
	}
	return fs.ReadFile(p.fsys, name)
}

// ResolvePath maps a URL path to a slash-separated name relative to the
// content root. The path is cleaned as if rooted, so it can never climb out of
// the content root. An empty result means the path names the root itself.
func ResolvePath(htmlDir, urlPath string) string {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return ""
	}
	if htmlDir != "" && strings.EqualFold(path.Ext(name), ".html") {
		name = htmlDir + "/" + name
	}
	return name
}
