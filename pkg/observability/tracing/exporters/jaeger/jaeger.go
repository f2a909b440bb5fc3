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

// Package jaeger provides a Jaeger Tracer
package jaeger

import (
	"errors"
	"strings"

	"github.com/myblog/blogserver/pkg/observability/tracing"
	"github.com/myblog/blogserver/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/exporters/jaeger"
)

// ErrInvalidEndpointURL indicates an agent endpoint that is not host:port
var ErrInvalidEndpointURL = errors.New("invalid jaeger agent endpoint; expected host:port")

// New returns a new Jaeger Tracer based on the provided options
func New(opts *options.Options) (*tracing.Tracer, error) {
	if opts == nil {
		return nil, tracing.ErrNoTracerOptions
	}

	var eo jaeger.EndpointOption
	if opts.JaegerEndpointType == "agent" {
		parts := strings.Split(opts.CollectorURL, ":")
		if len(parts) != 2 {
			return nil, ErrInvalidEndpointURL
		}
		eo = jaeger.WithAgentEndpoint(jaeger.WithAgentHost(parts[0]), jaeger.WithAgentPort(parts[1]))
	} else {
		ceo := make([]jaeger.CollectorEndpointOption, 1, 3)
		ceo[0] = jaeger.WithEndpoint(opts.CollectorURL)
		if opts.CollectorUser != "" {
			ceo = append(ceo, jaeger.WithUsername(opts.CollectorUser))
		}
		if opts.CollectorPass != "" {
			ceo = append(ceo, jaeger.WithPassword(opts.CollectorPass))
		}
		eo = jaeger.WithCollectorEndpoint(ceo...)
	}

	exporter, err := jaeger.New(eo)
	if err != nil {
		return nil, err
	}
	return tracing.NewProvider(opts, exporter), nil
}
