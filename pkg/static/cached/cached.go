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

// Package cached wraps a static content Provider with an in-memory cache
package cached

import (
	"sync"
	"time"

	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"
	"github.com/myblog/blogserver/pkg/static"

	"golang.org/x/sync/singleflight"
)

var _ static.Provider = &Provider{}

// Provider caches the content loaded by another Provider. Concurrent misses
// for the same path share a single load. Errors, including ErrNotFound, are
// never cached.
type Provider struct {
	next    static.Provider
	ttl     time.Duration
	entries sync.Map
	sf      singleflight.Group
	now     func() time.Time
}

type entry struct {
	data    []byte
	expires time.Time
}

// New returns a caching Provider in front of next. A ttl of 0 caches entries
// until Purge is called.
func New(next static.Provider, ttl time.Duration) *Provider {
	return &Provider{next: next, ttl: ttl, now: time.Now}
}

// Load implements static.Provider
func (p *Provider) Load(path string) ([]byte, error) {
	if v, ok := p.entries.Load(path); ok {
		e := v.(*entry)
		if e.expires.IsZero() || p.now().Before(e.expires) {
			metrics.StaticCacheEvents.WithLabelValues("hit").Inc()
			return e.data, nil
		}
		metrics.StaticCacheEvents.WithLabelValues("expired").Inc()
	}
	metrics.StaticCacheEvents.WithLabelValues("miss").Inc()
	v, err, _ := p.sf.Do(path, func() (any, error) {
		b, err := p.next.Load(path)
		if err != nil {
			return nil, err
		}
		e := &entry{data: b}
		if p.ttl > 0 {
			e.expires = p.now().Add(p.ttl)
		}
		p.entries.Store(path, e)
		logger.Debug("static content cached",
			logging.Pairs{"path": path, "bytes": len(b)})
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Purge empties the cache
func (p *Provider) Purge() {
	p.entries.Range(func(k, _ any) bool {
		p.entries.Delete(k)
		return true
	})
}
