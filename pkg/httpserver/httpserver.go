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

// Package httpserver runs the raw socket HTTP/1.1 frontend: it accepts
// connections, parses one request per connection, dispatches it through the
// Router and writes a single response before closing
package httpserver

import (
	"bufio"
	"context"
	goerrors "errors"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"github.com/myblog/blogserver/pkg/errors"
	fo "github.com/myblog/blogserver/pkg/frontend/options"
	"github.com/myblog/blogserver/pkg/httpserver/headers"
	"github.com/myblog/blogserver/pkg/httpserver/request"
	"github.com/myblog/blogserver/pkg/httpserver/response"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"
	"github.com/myblog/blogserver/pkg/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second

	// routeNone labels requests that matched no route
	routeNone = "none"
)

// Server serves one request per accepted connection. The Router is shared
// read-only by every connection goroutine.
type Server struct {
	router  *router.Router
	options *fo.Options
	tracer  *tracing.Tracer
	parser  *request.Parser
	wg      sync.WaitGroup
}

// New returns a new Server for the Router. When opts is nil, the frontend
// defaults are used. tracer may be nil.
func New(rt *router.Router, opts *fo.Options, tracer *tracing.Tracer) *Server {
	if opts == nil {
		opts = fo.New()
	}
	return &Server{
		router:  rt,
		options: opts,
		tracer:  tracer,
		parser: &request.Parser{
			MaxBodyBytes: opts.MaxBodyBytes,
			MaxLineBytes: opts.MaxLineBytes,
		},
	}
}

// Serve accepts connections on l and handles each on its own goroutine.
// It returns only when ctx is cancelled or l is closed. On cancellation the
// listener is closed and in-flight connections are given up to the drain
// timeout to finish.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	if l == nil {
		return errors.ErrNilListener
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			l.Close()
		case <-stop:
		}
	}()

	logger.Info("frontend listener accepting connections",
		logging.Pairs{"address": l.Addr().String()})

	var backoff time.Duration
	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return s.drain()
			}
			if goerrors.Is(err, net.ErrClosed) {
				s.drain()
				return err
			}
			if !errors.IsConnectionError(err) {
				metrics.ConnectionsFailed.WithLabelValues("accept").Inc()
			}
			if backoff == 0 {
				backoff = minAcceptBackoff
			} else if backoff *= 2; backoff > maxAcceptBackoff {
				backoff = maxAcceptBackoff
			}
			logger.Error("accept failed",
				logging.Pairs{"detail": err.Error(), "retryIn": backoff.String()})
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
			}
			continue
		}
		backoff = 0
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeConn(ctx, c)
		}()
	}
}

// drain waits for in-flight connections for up to the drain timeout
func (s *Server) drain() error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	if s.options.DrainTimeout <= 0 {
		return nil
	}
	select {
	case <-done:
		logger.Info("frontend drained", nil)
		return nil
	case <-time.After(s.options.DrainTimeout):
		logger.Warn("frontend drain timed out",
			logging.Pairs{"drainTimeout": s.options.DrainTimeout.String()})
		return errors.ErrDrainTimeout
	}
}

// ServeConn reads a single request from conn, dispatches it and writes the
// response. conn is always closed on return. A request that fails to parse
// is dropped without a response.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	defer func() {
		if p := recover(); p != nil {
			logger.Error("connection handler panic",
				logging.Pairs{"panic": p, "stack": string(debug.Stack())})
		}
	}()

	start := time.Now()
	remote := remoteAddr(conn)

	if s.options.ReadTimeout > 0 {
		conn.SetReadDeadline(start.Add(s.options.ReadTimeout))
	}
	req, err := s.parser.Parse(bufio.NewReader(conn))
	if err != nil {
		if !errors.IsParseFailure(err) {
			metrics.ConnectionsFailed.WithLabelValues("read").Inc()
			logger.Warn("request read failed",
				logging.Pairs{"remoteAddr": remote, "detail": err.Error()})
			return
		}
		parseFailed(remote, err)
		return
	}
	req.RemoteAddr = remote

	ctx, span := tracing.StartRequest(ctx, s.tracer, req.Method,
		attribute.String("http.target", req.Path),
		attribute.String("net.peer.addr", remote),
	)

	resp, route, quiet := s.dispatch(ctx, req)

	if s.options.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.options.WriteTimeout))
	}
	n, err := resp.WriteTo(bufio.NewWriter(conn))
	if err != nil {
		err = errors.NewConnectionError("write", err)
		metrics.ConnectionsFailed.WithLabelValues("write").Inc()
		logger.Warn("response write failed",
			logging.Pairs{"remoteAddr": remote, "path": req.Path, "detail": err.Error()})
	}

	elapsed := time.Since(start)
	metrics.ObserveRequest(req.Method, route, resp.Status, n, elapsed)
	tracing.EndRequest(span, route, resp.Status, err)

	if !quiet {
		logger.Info("request", logging.Pairs{
			"method":     req.Method,
			"path":       req.Path,
			"route":      route,
			"status":     resp.Status,
			"bytes":      n,
			"elapsedMS":  elapsed.Milliseconds(),
			"remoteAddr": remote,
			"host":       req.Header.Get(headers.NameHost),
			"userAgent":  req.Header.Get(headers.NameUserAgent),
		})
	}
}

// dispatch resolves the route and runs its handler, converting a handler
// panic or nil response into a 500
func (s *Server) dispatch(ctx context.Context,
	req *request.Request) (resp *response.Response, route string, quiet bool) {
	r, t := s.router.Resolve(req.Method, req.Target)
	if r == nil {
		return response.NotFound(), routeNone, false
	}
	route, quiet = r.Name, r.Quiet
	defer func() {
		if p := recover(); p != nil {
			logger.Error("handler panic", logging.Pairs{
				"route": route, "path": req.Path, "panic": p,
				"stack": string(debug.Stack()),
			})
			resp = response.InternalError("An unexpected error occurred")
		}
	}()
	resp = r.Handler.Handle(ctx, req, t)
	if resp == nil {
		logger.Error("handler returned no response",
			logging.Pairs{"route": route, "path": req.Path})
		resp = response.InternalError("An unexpected error occurred")
	}
	return resp, route, quiet
}

func parseFailed(remote string, err error) {
	reason := errors.ParseFailureReason(err)
	metrics.ParseFailures.WithLabelValues(reason).Inc()
	pairs := logging.Pairs{"remoteAddr": remote, "reason": reason, "detail": err.Error()}
	if goerrors.Is(err, errors.ErrEmptyRequest) {
		logger.Debug("connection closed without a request", pairs)
		return
	}
	logger.Warn("dropping unparseable request", pairs)
}

func remoteAddr(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
