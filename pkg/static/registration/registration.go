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

// Package registration builds the configured static content Provider
package registration

import (
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/static"
	"github.com/myblog/blogserver/pkg/static/cached"
	"github.com/myblog/blogserver/pkg/static/embedded"
	"github.com/myblog/blogserver/pkg/static/filesystem"
	"github.com/myblog/blogserver/pkg/static/options"
)

// NewProvider returns the static Provider described by o: the filesystem
// provider when a root is configured, otherwise the embedded site, wrapped in
// the memory cache when enabled
func NewProvider(o *options.Options) (static.Provider, error) {
	if o == nil {
		o = options.New()
	}
	var p static.Provider
	source := "embedded"
	if o.Root != "" {
		fp, err := filesystem.New(o.Root, o.HTMLDir)
		if err != nil {
			return nil, err
		}
		p = fp
		source = o.Root
	} else {
		p = embedded.New(o.HTMLDir)
	}
	if o.CacheEnabled {
		p = cached.New(p, o.CacheTTL)
	}
	logger.Info("static content provider loaded", logging.Pairs{
		"source":  source,
		"htmlDir": o.HTMLDir,
		"cached":  o.CacheEnabled,
	})
	return p, nil
}
