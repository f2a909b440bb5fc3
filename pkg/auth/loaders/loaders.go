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

// Package loaders reads seed users from configuration maps and users files
package loaders

import (
	"fmt"

	"github.com/myblog/blogserver/pkg/auth/cred"
	"github.com/myblog/blogserver/pkg/auth/loaders/csv"
	"github.com/myblog/blogserver/pkg/auth/loaders/htpasswd"
	"github.com/myblog/blogserver/pkg/auth/loaders/yaml"
	"github.com/myblog/blogserver/pkg/auth/types"
)

// LoadData loads the users file at path in the provided format, hashing any
// plaintext passwords at cost
func LoadData(path string, ff types.CredentialsFileFormat,
	cost int) (types.CredentialsManifest, error) {
	switch ff {
	case types.HTPasswd:
		return htpasswd.LoadHtpasswdBcrypt(path)
	case types.CSV:
		return csv.LoadCSV(path, cost)
	case types.YAML:
		return yaml.LoadYAML(path, cost)
	}
	return nil, fmt.Errorf("invalid users file format: %s", ff)
}

// LoadMap converts a username to password map into a manifest, hashing any
// plaintext passwords at cost
func LoadMap(users map[string]string, cost int) (types.CredentialsManifest, error) {
	out := make(types.CredentialsManifest, len(users))
	for username, password := range users {
		hash, err := cred.ProcessRawCredential(password, cost)
		if err != nil {
			return nil, err
		}
		out[username] = &types.Credential{Username: username, Hash: hash}
	}
	return out, nil
}
