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

package router

import (
	"context"
	"testing"

	"github.com/myblog/blogserver/pkg/errors"
	"github.com/myblog/blogserver/pkg/httpserver/request"
	"github.com/myblog/blogserver/pkg/httpserver/response"

	"github.com/stretchr/testify/require"
)

func textHandler(body string) Handler {
	return HandlerFunc(func(context.Context, *request.Request, Target) *response.Response {
		return response.Text(200, body)
	})
}

func body(t *testing.T, r *Route, tgt Target) string {
	t.Helper()
	require.NotNil(t, r)
	return string(r.Handler.Handle(context.Background(), &request.Request{}, tgt).Body)
}

func TestResolveExactBeforeWildcard(t *testing.T) {
	rt := New()
	require.NoError(t, rt.AddRoute("GET", Wildcard, textHandler("static")))
	require.NoError(t, rt.AddRoute("GET", "/verify", textHandler("verify")))
	require.NoError(t, rt.AddRoute("POST", "/login", textHandler("login")))

	r, tgt := rt.Resolve("GET", "/verify?token=abc&username=bob")
	require.Equal(t, "verify", body(t, r, tgt))
	require.Equal(t, "/verify", tgt.Path)
	require.Equal(t, "abc", tgt.Query.Get("token"))
	require.Equal(t, "bob", tgt.Query.Get("username"))

	r, tgt = rt.Resolve("GET", "/styles.css")
	require.Equal(t, "static", body(t, r, tgt))
	require.Equal(t, Wildcard, tgt.Route)
	require.Equal(t, "/styles.css", tgt.Path)

	r, tgt = rt.Resolve("POST", "/login")
	require.Equal(t, "login", body(t, r, tgt))
}

func TestResolveNoMatch(t *testing.T) {
	rt := New()
	require.NoError(t, rt.AddRoute("GET", Wildcard, textHandler("static")))
	require.NoError(t, rt.AddRoute("POST", "/login", textHandler("login")))

	tests := []struct {
		method, path string
	}{
		{"POST", "/unknown"},
		{"DELETE", "/login"},
		{"PUT", "/anything"},
		{"GET", ""},
	}
	for _, test := range tests {
		t.Run(test.method+" "+test.path, func(t *testing.T) {
			r, _ := rt.Resolve(test.method, test.path)
			if test.path == "" {
				// the empty path still falls back to the GET wildcard
				require.NotNil(t, r)
				return
			}
			require.Nil(t, r)
		})
	}
}

func TestResolveMethodCaseSensitive(t *testing.T) {
	rt := New()
	require.NoError(t, rt.AddRoute("POST", "/login", textHandler("login")))
	r, _ := rt.Resolve("post", "/login")
	require.Nil(t, r)
}

func TestRegisterLastWins(t *testing.T) {
	rt := New()
	require.NoError(t, rt.AddRoute("GET", "/a", textHandler("first")))
	require.NoError(t, rt.AddRoute("GET", "/a", textHandler("second")))
	r, tgt := rt.Resolve("GET", "/a")
	require.Equal(t, "second", body(t, r, tgt))
	require.Equal(t, 1, rt.Routes())
}

func TestRegisterErrors(t *testing.T) {
	rt := New()
	err := rt.AddRoute("GET", "", textHandler("x"))
	require.ErrorIs(t, err, errors.ErrInvalidPath)
	require.EqualError(t, err, "invalid path value: ")
	require.ErrorIs(t, rt.AddRoute("FETCH", "/a", textHandler("x")), errors.ErrInvalidMethod)
	require.ErrorIs(t, rt.AddRoute("POST", Wildcard, textHandler("x")), errors.ErrWildcardMethod)
	require.ErrorIs(t, rt.Register(nil), errors.ErrInvalidPath)
	require.Equal(t, 0, rt.Routes())
}

func TestRegisterNamedQuietRoute(t *testing.T) {
	rt := New()
	require.NoError(t, rt.Register(&Route{
		Name:    "noise",
		Method:  "GET",
		Pattern: "/favicon.ico",
		Handler: textHandler("x"),
		Quiet:   true,
	}))
	r, tgt := rt.Resolve("GET", "/favicon.ico")
	require.NotNil(t, r)
	require.True(t, r.Quiet)
	require.Equal(t, "noise", tgt.Route)
}
