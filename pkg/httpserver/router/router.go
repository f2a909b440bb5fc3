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

// Package router provides the exact-match request router with a GET wildcard
// fallback
package router

import (
	"context"

	"github.com/myblog/blogserver/pkg/errors"
	"github.com/myblog/blogserver/pkg/httpserver/methods"
	"github.com/myblog/blogserver/pkg/httpserver/request"
	"github.com/myblog/blogserver/pkg/httpserver/response"
)

// Wildcard is the pattern matched by any GET request with no exact route
const Wildcard = "*"

// Handler produces the Response for a routed Request
type Handler interface {
	Handle(context.Context, *request.Request, Target) *response.Response
}

// HandlerFunc adapts an ordinary function to the Handler interface
type HandlerFunc func(context.Context, *request.Request, Target) *response.Response

// Handle calls f(ctx, r, t)
func (f HandlerFunc) Handle(ctx context.Context, r *request.Request,
	t Target) *response.Response {
	return f(ctx, r, t)
}

// Target is the routing outcome passed to the Handler alongside the Request
type Target struct {
	// Route is the Name of the matched Route
	Route string
	// Path is the request path with the query removed
	Path string
	// Query holds the decoded query parameters
	Query request.Values
}

// Route is a registered (method, pattern) entry
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler Handler
	// Quiet routes are not request-logged
	Quiet bool
}

// RouteLookup is a map of Routes keyed by pattern
type RouteLookup map[string]*Route

// Router maps method and path to a Route. It is populated before the server
// starts and is read-only afterward, so lookups take no locks.
type Router struct {
	routes map[string]RouteLookup
}

// New returns a new, empty Router
func New() *Router {
	return &Router{routes: make(map[string]RouteLookup)}
}

// AddRoute registers h for the method and pattern. The route's name is its pattern.
func (rt *Router) AddRoute(method, pattern string, h Handler) error {
	return rt.Register(&Route{Name: pattern, Method: method, Pattern: pattern, Handler: h})
}

// Register adds the Route to the Router. A later registration for the same
// method and pattern replaces an earlier one.
func (rt *Router) Register(r *Route) error {
	if r == nil {
		return errors.ErrInvalidPath
	}
	if r.Pattern == "" {
		return errors.InvalidPath(r.Pattern)
	}
	if !methods.IsValidMethod(r.Method) {
		return errors.InvalidMethod(r.Method)
	}
	if r.Pattern == Wildcard && r.Method != methods.MethodGet {
		return errors.ErrWildcardMethod
	}
	if r.Name == "" {
		r.Name = r.Pattern
	}
	rl, ok := rt.routes[r.Method]
	if !ok {
		rl = make(RouteLookup)
		rt.routes[r.Method] = rl
	}
	rl[r.Pattern] = r
	return nil
}

// Resolve returns the Route and Target for the method and raw request path.
// An exact match on the query-less path wins; otherwise GET requests fall back
// to the wildcard route. The Route is nil when nothing matches.
func (rt *Router) Resolve(method, rawPath string) (*Route, Target) {
	path, rawQuery := request.SplitTarget(rawPath)
	t := Target{Path: path, Query: request.ParseQuery(rawQuery)}
	rl, ok := rt.routes[method]
	if !ok {
		return nil, t
	}
	r, ok := rl[path]
	if !ok && method == methods.MethodGet {
		r, ok = rl[Wildcard]
	}
	if !ok {
		return nil, t
	}
	t.Route = r.Name
	return r, t
}

// Routes returns the number of registered routes
func (rt *Router) Routes() int {
	var n int
	for _, rl := range rt.routes {
		n += len(rl)
	}
	return n
}
