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

// Package yaml loads users from a YAML users file
package yaml

import (
	"os"

	"github.com/myblog/blogserver/pkg/auth/cred"
	"github.com/myblog/blogserver/pkg/auth/types"

	"gopkg.in/yaml.v3"
)

type usersFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Email    string `yaml:"email"`
	} `yaml:"users"`
}

// LoadYAML loads the users list in the YAML file at path, hashing plaintext
// passwords at cost. Entries without a username are skipped.
func LoadYAML(path string, cost int) (types.CredentialsManifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var uf usersFile
	if err := yaml.Unmarshal(b, &uf); err != nil {
		return nil, err
	}
	out := make(types.CredentialsManifest, len(uf.Users))
	for _, u := range uf.Users {
		if u.Username == "" {
			continue
		}
		hash, err := cred.ProcessRawCredential(u.Password, cost)
		if err != nil {
			return nil, err
		}
		out[u.Username] = &types.Credential{Username: u.Username, Hash: hash, Email: u.Email}
	}
	return out, nil
}
