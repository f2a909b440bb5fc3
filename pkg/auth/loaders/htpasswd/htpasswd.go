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

// Package htpasswd loads users from an Apache htpasswd file of bcrypt hashes
package htpasswd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/myblog/blogserver/pkg/auth/cred"
	"github.com/myblog/blogserver/pkg/auth/types"
)

// LoadHtpasswdBcrypt loads the username:hash lines of the htpasswd file at
// path. Blank lines, comments and lines without a colon are skipped. Any
// entry that is not a bcrypt hash is an error.
func LoadHtpasswdBcrypt(path string) (types.CredentialsManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out := make(types.CredentialsManifest)
	sc := bufio.NewScanner(f)
	var n int
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		username, hash, ok := strings.Cut(line, ":")
		if !ok || username == "" {
			continue
		}
		if !cred.IsHash(hash) {
			return nil, fmt.Errorf("%w: %s line %d", cred.ErrUnsupportedHash, path, n)
		}
		out[username] = &types.Credential{Username: username, Hash: hash}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
