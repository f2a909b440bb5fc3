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

// Package registration builds the configured tracer
package registration

import (
	"fmt"

	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/tracing"
	"github.com/myblog/blogserver/pkg/observability/tracing/exporters/jaeger"
	"github.com/myblog/blogserver/pkg/observability/tracing/exporters/noop"
	"github.com/myblog/blogserver/pkg/observability/tracing/exporters/stdout"
	"github.com/myblog/blogserver/pkg/observability/tracing/exporters/zipkin"
	"github.com/myblog/blogserver/pkg/observability/tracing/options"
	"github.com/myblog/blogserver/pkg/observability/tracing/providers"
)

// GetTracer returns a *Tracer based on the provided options
func GetTracer(opts *options.Options, isDryRun bool) (*tracing.Tracer, error) {
	if opts == nil {
		logger.Info("nil tracing config, using noop tracer", nil)
		return noop.New(opts)
	}

	p, ok := providers.Names[opts.Provider]
	if !ok {
		return nil, fmt.Errorf("invalid tracer provider [%s]", opts.Provider)
	}

	if !isDryRun && p != providers.None {
		logger.Info("tracer registration",
			logging.Pairs{
				"provider":    opts.Provider,
				"serviceName": opts.ServiceName,
				"collector":   opts.CollectorURL,
				"sampleRate":  opts.SampleRate,
			},
		)
	}

	switch p {
	case providers.Stdout:
		return stdout.New(opts)
	case providers.Jaeger:
		return jaeger.New(opts)
	case providers.Zipkin:
		return zipkin.New(opts)
	}
	return noop.New(opts)
}
