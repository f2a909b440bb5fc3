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
// Package instance holds the running components of a blog server process
package instance

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/myblog/blogserver/pkg/auth/local"
	"github.com/myblog/blogserver/pkg/config"
	"github.com/myblog/blogserver/pkg/httpserver"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/tracing"

	"golang.org/x/sync/errgroup"
)

// tracerShutdownTimeout bounds the final span flush
const tracerShutdownTimeout = 5 * time.Second

// ServerInstance is the set of components built from a Config
type ServerInstance struct {
	Config   *config.Config
	Tracer   *tracing.Tracer
	Auth     *local.Service
	Router   *router.Router
	Listener net.Listener
	Server   *httpserver.Server
}

// Run serves connections and reaps expired registrations until ctx is done
// or either task fails, then flushes the Tracer
func (si *ServerInstance) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return si.Server.Serve(gctx, si.Listener)
	})
	if si.Auth != nil {
		g.Go(func() error {
			return si.Auth.Reap(gctx)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	sctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
	defer cancel()
	if serr := si.Tracer.Shutdown(sctx); serr != nil {
		logger.Warn("tracer shutdown failed", logging.Pairs{"detail": serr.Error()})
	}
	logger.Info("server stopped", nil)
	return err
}
