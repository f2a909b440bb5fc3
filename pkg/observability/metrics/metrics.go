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

// Package metrics implements prometheus metrics for the blog server
package metrics

import (
	"bytes"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	metricNamespace   = "blogserver"
	buildSubsystem    = "build"
	frontendSubsystem = "frontend"
	connSubsystem     = "connections"
	staticSubsystem   = "static"
	authSubsystem     = "auth"
)

// Default histogram buckets used by the blog server
var (
	defaultBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}
	sizeBuckets    = prometheus.ExponentialBuckets(64, 4, 8)
)

// BuildInfo is a Gauge representing the binary build information of the running server instance
var BuildInfo *prometheus.GaugeVec

// FrontendRequestStatus is a Counter of front end requests that have been processed with their status
var FrontendRequestStatus *prometheus.CounterVec

// FrontendRequestDuration is a histogram that tracks the time it takes to process a request
var FrontendRequestDuration *prometheus.HistogramVec

// FrontendResponseBytes is a histogram of bytes written per front end response
var FrontendResponseBytes *prometheus.HistogramVec

// ParseFailures is a Counter of requests that were dropped without a response, by reason
var ParseFailures *prometheus.CounterVec

// ActiveConnections is a Gauge representing the number of active connections in the server
var ActiveConnections prometheus.Gauge

// MaxConnections is a Gauge representing the configured connection limit
var MaxConnections prometheus.Gauge

// ConnectionsAccepted is a counter representing the total number of connections accepted
var ConnectionsAccepted prometheus.Counter

// ConnectionsClosed is a counter representing the total number of connections closed
var ConnectionsClosed prometheus.Counter

// ConnectionsFailed is a counter for the total number of failed accepts, reads and writes
var ConnectionsFailed *prometheus.CounterVec

// StaticCacheEvents is a Counter of hits and misses on the static content cache
var StaticCacheEvents *prometheus.CounterVec

// AuthEvents is a Counter of authentication, registration and verification outcomes
var AuthEvents *prometheus.CounterVec

// PendingRegistrations is a Gauge of unverified registrations currently held
var PendingRegistrations prometheus.Gauge

func init() {

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: buildSubsystem,
			Name:      "info",
			Help: "A metric with a constant '1' value labeled by version, " +
				"revision, and goversion from which the server was built.",
		},
		[]string{"goversion", "revision", "version"},
	)

	FrontendRequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_total",
			Help:      "Count of front end requests handled by the server",
		},
		[]string{"method", "route", "http_status"},
	)

	FrontendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_duration_seconds",
			Help:      "Histogram of front end request durations handled by the server",
			Buckets:   defaultBuckets,
		},
		[]string{"method", "route", "http_status"},
	)

	FrontendResponseBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "response_bytes",
			Help:      "Histogram of bytes written per front end response",
			Buckets:   sizeBuckets,
		},
		[]string{"method", "route"},
	)

	ParseFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "parse_failures_total",
			Help:      "Count of connections closed without a response because the request could not be parsed",
		},
		[]string{"reason"},
	)

	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: connSubsystem,
			Name:      "active",
			Help:      "Number of active client connections.",
		},
	)

	MaxConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: connSubsystem,
			Name:      "max",
			Help:      "Configured maximum number of concurrent client connections. 0 is unlimited.",
		},
	)

	ConnectionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: connSubsystem,
			Name:      "accepted_total",
			Help:      "Total number of accepted client connections.",
		},
	)

	ConnectionsClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: connSubsystem,
			Name:      "closed_total",
			Help:      "Total number of closed client connections.",
		},
	)

	ConnectionsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: connSubsystem,
			Name:      "failed_total",
			Help:      "Total number of failed connection operations.",
		},
		[]string{"op"},
	)

	StaticCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: staticSubsystem,
			Name:      "cache_events_total",
			Help:      "Count of static content cache lookups by outcome",
		},
		[]string{"event"},
	)

	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: authSubsystem,
			Name:      "events_total",
			Help:      "Count of login, registration and verification attempts by outcome",
		},
		[]string{"operation", "result"},
	)

	PendingRegistrations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: authSubsystem,
			Name:      "pending_registrations",
			Help:      "Number of registrations awaiting email verification.",
		},
	)

	// Register Metrics
	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(FrontendRequestStatus)
	prometheus.MustRegister(FrontendRequestDuration)
	prometheus.MustRegister(FrontendResponseBytes)
	prometheus.MustRegister(ParseFailures)
	prometheus.MustRegister(ActiveConnections)
	prometheus.MustRegister(MaxConnections)
	prometheus.MustRegister(ConnectionsAccepted)
	prometheus.MustRegister(ConnectionsClosed)
	prometheus.MustRegister(ConnectionsFailed)
	prometheus.MustRegister(StaticCacheEvents)
	prometheus.MustRegister(AuthEvents)
	prometheus.MustRegister(PendingRegistrations)
}

// SetBuildInfo records the running binary's version information
func SetBuildInfo(version, revision string) {
	BuildInfo.WithLabelValues(runtime.Version(), revision, version).Set(1)
}

// StatusClass returns the status code rolled up to its class, e.g. 404 -> "4xx"
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}

// ObserveRequest records the outcome of one request/response exchange
func ObserveRequest(method, route string, status int, written int64, elapsed time.Duration) {
	sc := StatusClass(status)
	FrontendRequestStatus.WithLabelValues(method, route, sc).Inc()
	FrontendRequestDuration.WithLabelValues(method, route, sc).Observe(elapsed.Seconds())
	FrontendResponseBytes.WithLabelValues(method, route).Observe(float64(written))
}

// Expose renders the default registry in the Prometheus text exposition format
func Expose() ([]byte, error) {
	return ExposeGatherer(prometheus.DefaultGatherer)
}

// ExposeGatherer renders the provided Gatherer in the Prometheus text exposition format
func ExposeGatherer(g prometheus.Gatherer) ([]byte, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	enc := expfmt.NewEncoder(buf, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
