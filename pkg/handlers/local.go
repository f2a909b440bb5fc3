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

package handlers

import (
	"context"

	"github.com/myblog/blogserver/pkg/httpserver/request"
	"github.com/myblog/blogserver/pkg/httpserver/response"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"
)

// NotFoundHandler answers every request with a 404
var NotFoundHandler = router.HandlerFunc(func(context.Context, *request.Request,
	router.Target) *response.Response {
	return response.NotFound()
})

// PingHandler responds with 200 OK and "pong"
var PingHandler = router.HandlerFunc(func(context.Context, *request.Request,
	router.Target) *response.Response {
	return response.Text(200, "pong")
})

// MetricsHandler responds with the Prometheus text exposition of the default
// registry
var MetricsHandler = router.HandlerFunc(func(context.Context, *request.Request,
	router.Target) *response.Response {
	b, err := metrics.Expose()
	if err != nil {
		logger.Error("metrics exposition failed", logging.Pairs{"detail": err.Error()})
		return response.InternalError(MsgUnexpectedError)
	}
	return response.New(200, "text/plain; version=0.0.4", b)
})
