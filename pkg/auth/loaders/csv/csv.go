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

// Package csv loads users from username,password[,email] rows
package csv

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/myblog/blogserver/pkg/auth/cred"
	"github.com/myblog/blogserver/pkg/auth/types"
)

// LoadCSV loads the users in the CSV file at path. A first row whose first
// column is "username" is treated as a header. Lines starting with # are
// comments, and rows with fewer than two columns are skipped.
func LoadCSV(path string, cost int) (types.CredentialsManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	matrix, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(types.CredentialsManifest, len(matrix))
	for i, row := range matrix {
		if len(row) < 2 {
			continue
		}
		username := strings.TrimSpace(row[0])
		if i == 0 && strings.EqualFold(username, "username") {
			continue
		}
		if username == "" {
			continue
		}
		hash, err := cred.ProcessRawCredential(strings.TrimSpace(row[1]), cost)
		if err != nil {
			return nil, err
		}
		c := &types.Credential{Username: username, Hash: hash}
		if len(row) > 2 {
			c.Email = strings.TrimSpace(row[2])
		}
		out[username] = c
	}
	return out, nil
}
