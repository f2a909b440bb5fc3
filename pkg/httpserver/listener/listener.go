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

// Package listener provides the instrumented, connection-limited TCP listener
// used by the frontend
package listener

import (
	"fmt"
	"net"
	"sync"

	"github.com/myblog/blogserver/pkg/errors"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"

	"golang.org/x/net/netutil"
)

// Listener is the blogserver net.Listener implementation
type Listener struct {
	net.Listener
	connectionsLimit int
}

type observedConnection struct {
	net.Conn
	closeOnce sync.Once
}

func (o *observedConnection) Close() error {
	var err error
	first := false
	o.closeOnce.Do(func() {
		first = true
		err = o.Conn.Close()
	})
	if first {
		metrics.ActiveConnections.Dec()
		metrics.ConnectionsClosed.Inc()
	}
	return err
}

// Accept implements net.Listener.Accept
func (l *Listener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		metrics.ConnectionsFailed.WithLabelValues("accept").Inc()
		return c, errors.NewConnectionError("accept", err)
	}
	metrics.ActiveConnections.Inc()
	metrics.ConnectionsAccepted.Inc()
	return &observedConnection{Conn: c}, nil
}

// ConnectionsLimit returns the maximum number of concurrent connections, or 0
// when unlimited
func (l *Listener) ConnectionsLimit() int {
	return l.connectionsLimit
}

// New creates a new TCP listener which obeys the configured max connection
// limit and monitors connections with prometheus metrics.
//
// When connectionsLimit is positive, the listener is wrapped with a
// netutil.LimitListener, which blocks in Accept until a slot is released
// whenever clients go above the limit.
func New(listenAddress string, listenPort, connectionsLimit int) (*Listener, error) {
	nl, err := net.Listen("tcp", fmt.Sprintf("%s:%d", listenAddress, listenPort))
	if err != nil {
		// this usually means that the port is in use
		return nil, err
	}
	return Wrap(nl, connectionsLimit), nil
}

// Wrap instruments an existing net.Listener and applies the connections limit
func Wrap(nl net.Listener, connectionsLimit int) *Listener {
	if connectionsLimit > 0 {
		nl = netutil.LimitListener(nl, connectionsLimit)
		metrics.MaxConnections.Set(float64(connectionsLimit))
	}
	logger.Debug("starting frontend listener", logging.Pairs{
		"connectionsLimit": connectionsLimit,
		"address":          nl.Addr().String(),
	})
	return &Listener{Listener: nl, connectionsLimit: connectionsLimit}
}
