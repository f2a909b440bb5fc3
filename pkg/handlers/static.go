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

// Package handlers provides the route handlers of the blog server
package handlers

import (
	"context"
	"errors"
	"path"

	"github.com/myblog/blogserver/pkg/httpserver/headers"
	"github.com/myblog/blogserver/pkg/httpserver/request"
	"github.com/myblog/blogserver/pkg/httpserver/response"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/static"
)

// MsgUnexpectedError is the body of every 500 response
const MsgUnexpectedError = "An unexpected error occurred"

// StaticPath maps a request path to the static content path: "/" becomes
// indexPath, and a path with no extension is treated as an .html document
func StaticPath(p, indexPath string) string {
	if p == "/" || p == "" {
		return indexPath
	}
	if path.Ext(p) == "" {
		return p + ".html"
	}
	return p
}

// StaticHandler serves GET requests from the static content Provider
func StaticHandler(p static.Provider, indexPath string) router.Handler {
	return router.HandlerFunc(func(_ context.Context, _ *request.Request,
		t router.Target) *response.Response {
		sp := StaticPath(t.Path, indexPath)
		b, err := p.Load(sp)
		if err != nil {
			if errors.Is(err, static.ErrNotFound) {
				return response.NotFound()
			}
			logger.Error("static content load failed",
				logging.Pairs{"path": sp, "detail": err.Error()})
			return response.InternalError(MsgUnexpectedError)
		}
		return response.New(200, headers.ContentTypeForPath(sp), b)
	})
}
