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

package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/myblog/blogserver/pkg/auth/cred"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testUsers = `
users:
  - username: alice
    password: wonderland
    email: alice@example.com
  - username: ""
    password: ignored
  - username: bob
    password: builder
`

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testUsers), 0o644))

	m, err := LoadYAML(path, bcrypt.MinCost)
	require.NoError(t, err)
	require.Len(t, m, 2)
	require.Equal(t, "alice@example.com", m["alice"].Email)
	require.NoError(t, cred.VerifyPassword(m["alice"].Hash, "wonderland"))
	require.NoError(t, cred.VerifyPassword(m["bob"].Hash, "builder"))
}

func TestLoadYAMLErrors(t *testing.T) {
	_, err := LoadYAML("/no/such/file", bcrypt.MinCost)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [unterminated"), 0o644))
	_, err = LoadYAML(path, bcrypt.MinCost)
	require.Error(t, err)
}
