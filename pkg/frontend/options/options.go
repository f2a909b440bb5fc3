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
	"time"
)

const (
	// DefaultListenPort is the default port that the HTTP frontend will listen on
	DefaultListenPort = 8080
	// DefaultListenAddress is the default address that the HTTP frontend will listen on
	DefaultListenAddress = ""
	// DefaultReadTimeoutMS is the default deadline for receiving a full request
	DefaultReadTimeoutMS = 30000
	// DefaultWriteTimeoutMS is the default deadline for writing a full response
	DefaultWriteTimeoutMS = 30000
	// DefaultDrainTimeoutMS is how long shutdown waits for in-flight connections
	DefaultDrainTimeoutMS = 10000
	// DefaultMaxBodyBytes is the largest Content-Length the parser will accept
	DefaultMaxBodyBytes = 1 << 20
	// DefaultMaxLineBytes is the longest request or header line the parser will accept
	DefaultMaxLineBytes = 8192
)

// ErrInvalidListenPort indicates the listen port is outside of the valid range
var ErrInvalidListenPort = errors.New("invalid frontend listen_port")

// ErrInvalidLimit indicates a negative limit or timeout value
var ErrInvalidLimit = errors.New("frontend limits and timeouts must be non-negative")

// Options is a collection of configurations for the raw socket HTTP frontend
type Options struct {
	// ListenAddress is IP address for the main http listener for the application
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is TCP Port for the main http listener for the application
	ListenPort int `yaml:"listen_port,omitempty"`
	// ConnectionsLimit indicates how many concurrent front end connections will be handled at any time
	ConnectionsLimit int `yaml:"connections_limit,omitempty"`
	// ReadTimeoutMS bounds the time allowed to receive the request line, headers and body.
	// 0 disables the deadline
	ReadTimeoutMS int `yaml:"read_timeout_ms,omitempty"`
	// WriteTimeoutMS bounds the time allowed to write the response. 0 disables the deadline
	WriteTimeoutMS int `yaml:"write_timeout_ms,omitempty"`
	// DrainTimeoutMS bounds how long shutdown waits for in-flight connections
	DrainTimeoutMS int `yaml:"drain_timeout_ms,omitempty"`
	// MaxBodyBytes is the largest declared Content-Length that will be read. 0 means no limit
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
	// MaxLineBytes is the longest request or header line that will be read. 0 means no limit
	MaxLineBytes int `yaml:"max_line_bytes,omitempty"`

	ReadTimeout  time.Duration `yaml:"-"`
	WriteTimeout time.Duration `yaml:"-"`
	DrainTimeout time.Duration `yaml:"-"`
}

// New returns a new Frontend Options with default values
func New() *Options {
	o := &Options{
		ListenPort:     DefaultListenPort,
		ListenAddress:  DefaultListenAddress,
		ReadTimeoutMS:  DefaultReadTimeoutMS,
		WriteTimeoutMS: DefaultWriteTimeoutMS,
		DrainTimeoutMS: DefaultDrainTimeoutMS,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		MaxLineBytes:   DefaultMaxLineBytes,
	}
	o.setDurations()
	return o
}

func (o *Options) setDurations() {
	o.ReadTimeout = time.Duration(o.ReadTimeoutMS) * time.Millisecond
	o.WriteTimeout = time.Duration(o.WriteTimeoutMS) * time.Millisecond
	o.DrainTimeout = time.Duration(o.DrainTimeoutMS) * time.Millisecond
}

// Validate checks the Options for errors and computes the derived durations
func (o *Options) Validate() error {
	if o.ListenPort < 0 || o.ListenPort > 65535 {
		return ErrInvalidListenPort
	}
	if o.ConnectionsLimit < 0 || o.ReadTimeoutMS < 0 || o.WriteTimeoutMS < 0 ||
		o.DrainTimeoutMS < 0 || o.MaxBodyBytes < 0 || o.MaxLineBytes < 0 {
		return ErrInvalidLimit
	}
	o.setDurations()
	return nil
}

// Equal returns true if the Options are identical in value.
func (o *Options) Equal(o2 *Options) bool {
	return *o == *o2
}

// Clone returns a clone of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}
