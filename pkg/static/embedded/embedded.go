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

// Package embedded provides the default site compiled into the binary
package embedded

import (
	"embed"
	"io/fs"

	"github.com/myblog/blogserver/pkg/static"
)

//go:embed assets
var assets embed.FS

// FS returns the embedded site rooted at its assets directory
func FS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		// unreachable: "assets" is always a valid embedded directory
		panic(err)
	}
	return sub
}

// New returns a Provider serving the embedded site
func New(htmlDir string) static.Provider {
	return static.NewFSProvider(FS(), htmlDir)
}
