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

// Package tracing provides distributed tracing services to the blog server
package tracing

import (
	"context"
	"errors"

	"github.com/myblog/blogserver/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoTracerOptions indicates a tracer was requested without options
var ErrNoTracerOptions = errors.New("no tracer options provided")

// ShutdownFunc defines a function used to Flush a Tracer
type ShutdownFunc func(context.Context) error

// Tracer is a Tracer object used by the blog server
type Tracer struct {
	trace.Tracer
	Name         string
	ShutdownFunc ShutdownFunc
	Options      *options.Options
}

// Shutdown flushes and stops the Tracer's exporter, if any
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.ShutdownFunc == nil {
		return nil
	}
	return t.ShutdownFunc(ctx)
}

// StatusToCode translates an HTTP status code into an otel status code
func StatusToCode(status int) codes.Code {
	if status < 500 {
		return codes.Ok
	}
	return codes.Error
}

// Sampler returns the sdk sampler for the configured sample rate
func Sampler(rate float64) sdktrace.Sampler {
	switch rate {
	case 0:
		return sdktrace.NeverSample()
	case 1:
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

// Resource returns the sdk resource describing this service, including any
// configured tags
func Resource(o *options.Options) *resource.Resource {
	attrs := make([]attribute.KeyValue, 0, len(o.Tags)+1)
	attrs = append(attrs, attribute.String("service.name", o.ServiceName))
	for k, v := range o.Tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	return resource.NewSchemaless(attrs...)
}

// NewProvider returns a Tracer backed by an sdk TracerProvider that batches
// spans to the exporter
func NewProvider(o *options.Options, exp sdktrace.SpanExporter,
	bo ...sdktrace.BatchSpanProcessorOption) *Tracer {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp, bo...),
		sdktrace.WithSampler(Sampler(o.SampleRate)),
		sdktrace.WithResource(Resource(o)),
	)
	return &Tracer{
		Name:         o.Provider,
		Tracer:       tp.Tracer(o.ServiceName),
		Options:      o,
		ShutdownFunc: tp.Shutdown,
	}
}

// StartRequest starts the span covering one request/response exchange
func StartRequest(ctx context.Context, tr *Tracer, method string,
	attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tr == nil || tr.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tr.Start(ctx, "request "+method,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

// EndRequest records the response status on the span and ends it
func EndRequest(span trace.Span, route string, status int, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.String("route", route),
		attribute.Int("http.status_code", status),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(StatusToCode(status), "")
	}
	span.End()
}
