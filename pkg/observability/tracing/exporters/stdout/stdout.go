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

// Package stdout provides a Stdout Tracer
package stdout

import (
	"io"
	"os"

	"github.com/myblog/blogserver/pkg/observability/tracing"
	"github.com/myblog/blogserver/pkg/observability/tracing/options"

	stdout "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
)

// New returns a new Stdout Tracer
func New(opts *options.Options) (*tracing.Tracer, error) {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter returns a new Tracer that writes finished spans as JSON to w
func NewWithWriter(opts *options.Options, w io.Writer) (*tracing.Tracer, error) {
	if opts == nil {
		opts = options.New()
		opts.Provider = "stdout"
	}
	o := []stdout.Option{stdout.WithWriter(w)}
	if opts.PrettyPrint {
		o = append(o, stdout.WithPrettyPrint())
	}
	exp, err := stdout.New(o...)
	if err != nil {
		return nil, err
	}
	return tracing.NewProvider(opts, exp), nil
}
