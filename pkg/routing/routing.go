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
// Package routing registers the blog server routes with the Router
package routing

import (
	"github.com/myblog/blogserver/pkg/auth/types"
	"github.com/myblog/blogserver/pkg/config"
	"github.com/myblog/blogserver/pkg/handlers"
	"github.com/myblog/blogserver/pkg/httpserver/methods"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/static"
)

// VerifyPath is the route of the email verification link
const VerifyPath = "/verify"

// RegisterPath is the route of the registration form
const RegisterPath = "/register"

// NoisePaths are requested by browsers on their own. They are answered with a
// 404 and are not request-logged
var NoisePaths = []string{
	"/favicon.ico",
	"/apple-touch-icon.png",
	"/apple-touch-icon-precomposed.png",
}

// Collaborators are the services the route handlers delegate to
type Collaborators struct {
	Static        static.Provider
	Authenticator types.Authenticator
	Registrar     types.Registrar
	Verifier      types.Verifier
}

// RegisterRoutes registers every blog server route with rt
func RegisterRoutes(conf *config.Config, rt *router.Router, c *Collaborators) error {
	routes := []*router.Route{
		{Method: methods.MethodGet, Pattern: VerifyPath,
			Handler: handlers.VerifyHandler(c.Verifier)},
		{Method: methods.MethodGet, Pattern: router.Wildcard,
			Handler: handlers.StaticHandler(c.Static, conf.Static.IndexPath)},
		{Method: methods.MethodPost, Pattern: handlers.LoginPath,
			Handler: handlers.LoginHandler(c.Authenticator, conf.Auth.LoginRedirect)},
		{Method: methods.MethodPost, Pattern: RegisterPath,
			Handler: handlers.RegisterHandler(c.Registrar, conf.Auth.RegisterRedirect)},
		{Method: methods.MethodGet, Pattern: conf.Main.PingHandlerPath,
			Handler: handlers.PingHandler, Quiet: true},
	}
	for _, p := range NoisePaths {
		routes = append(routes, &router.Route{Name: "noise", Method: methods.MethodGet,
			Pattern: p, Handler: handlers.NotFoundHandler, Quiet: true})
	}
	if conf.Metrics.Enabled() {
		routes = append(routes, &router.Route{Method: methods.MethodGet,
			Pattern: conf.Metrics.Path, Handler: handlers.MetricsHandler, Quiet: true})
	}
	for _, r := range routes {
		if err := rt.Register(r); err != nil {
			return err
		}
		logger.Debug("registered route", logging.Pairs{"method": r.Method,
			"path": r.Pattern, "quiet": r.Quiet})
	}
	return nil
}
