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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in       string
		expected Values
	}{
		{"a=1&b=2", Values{"a": "1", "b": "2"}},
		{"a=1&a=2", Values{"a": "2"}},
		{"a", Values{}},
		{"a&b=2", Values{"b": "2"}},
		{"", Values{}},
		{"k=", Values{"k": ""}},
		{"x=a=b", Values{"x": "a=b"}},
		{"message=Email+verified%21", Values{"message": "Email verified!"}},
		{"bad=%zz", Values{"bad": "%zz"}},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			require.Equal(t, test.expected, ParseQuery(test.in))
		})
	}
}

func TestParseForm(t *testing.T) {
	v, err := ParseForm([]byte("username=kouhin&password=p%40ss+word&email=k%40example.com&flag"))
	require.NoError(t, err)
	require.Equal(t, "kouhin", v.Get("username"))
	require.Equal(t, "p@ss word", v.Get("password"))
	require.Equal(t, "k@example.com", v.Get("email"))
	_, ok := v.Lookup("flag")
	require.False(t, ok)
	require.Equal(t, "", v.Get("confirm-password"))

	v, err = ParseForm(nil)
	require.NoError(t, err)
	require.Empty(t, v)

	_, err = ParseForm([]byte("password=%G1"))
	require.Error(t, err)
}

func TestSplitTarget(t *testing.T) {
	p, q := SplitTarget("/verify?token=a?b&username=c")
	require.Equal(t, "/verify", p)
	require.Equal(t, "token=a?b&username=c", q)

	p, q = SplitTarget("/login")
	require.Equal(t, "/login", p)
	require.Equal(t, "", q)
}
