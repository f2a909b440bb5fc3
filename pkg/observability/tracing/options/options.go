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

package options

import (
	"errors"
	"fmt"

	"github.com/myblog/blogserver/pkg/observability/tracing/providers"
)

const (
	// DefaultTracerProvider is the default distributed tracing provider
	DefaultTracerProvider = "none"
	// DefaultTracerServiceName is the default service name reported to the collector
	DefaultTracerServiceName = "blogserver"
	// DefaultSampleRate samples every request
	DefaultSampleRate = 1.0
)

// ErrInvalidSampleRate indicates the sample rate is outside of [0, 1]
var ErrInvalidSampleRate = errors.New("tracing sample_rate must be between 0 and 1")

// ErrMissingCollectorURL indicates a collector-backed provider has no endpoint
var ErrMissingCollectorURL = errors.New("tracing collector_url is required for this provider")

// Options is a Tracing Options collection
type Options struct {
	Provider      string            `yaml:"provider,omitempty"`
	ServiceName   string            `yaml:"service_name,omitempty"`
	CollectorURL  string            `yaml:"collector_url,omitempty"`
	CollectorUser string            `yaml:"collector_user,omitempty"`
	CollectorPass string            `yaml:"collector_pass,omitempty"`
	SampleRate    float64           `yaml:"sample_rate,omitempty"`
	Tags          map[string]string `yaml:"tags,omitempty"`
	// PrettyPrint indents spans written by the stdout provider
	PrettyPrint bool `yaml:"pretty_print,omitempty"`
	// JaegerEndpointType is "collector" (default) or "agent"
	JaegerEndpointType string `yaml:"jaeger_endpoint_type,omitempty"`
}

// New returns a new *Options with the default values
func New() *Options {
	return &Options{
		Provider:    DefaultTracerProvider,
		ServiceName: DefaultTracerServiceName,
		SampleRate:  DefaultSampleRate,
	}
}

// Validate checks the Options for errors
func (o *Options) Validate() error {
	if o.Provider == "" {
		o.Provider = DefaultTracerProvider
	}
	p, ok := providers.Names[o.Provider]
	if !ok {
		return fmt.Errorf("invalid tracing provider: %s", o.Provider)
	}
	if o.SampleRate < 0 || o.SampleRate > 1 {
		return ErrInvalidSampleRate
	}
	if (p == providers.Jaeger || p == providers.Zipkin) && o.CollectorURL == "" {
		return ErrMissingCollectorURL
	}
	if o.ServiceName == "" {
		o.ServiceName = DefaultTracerServiceName
	}
	return nil
}

// Clone returns an exact copy of a tracing config
func (o *Options) Clone() *Options {
	o2 := *o
	if o.Tags != nil {
		o2.Tags = make(map[string]string, len(o.Tags))
		for k, v := range o.Tags {
			o2.Tags[k] = v
		}
	}
	return &o2
}
