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

// Package filesystem provides a static content Provider reading from a
// directory on disk
package filesystem

import (
	"fmt"
	"os"

	"github.com/myblog/blogserver/pkg/static"
)

// New returns a Provider serving the directory at root. It fails when root is
// not an existing directory.
func New(root, htmlDir string) (static.Provider, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("static root %s is not a directory", root)
	}
	return static.NewFSProvider(os.DirFS(root), htmlDir), nil
}
