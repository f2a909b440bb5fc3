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

// Package options holds the configuration of verification email delivery
package options

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultProvider logs verification links instead of sending mail
	DefaultProvider = "log"
	// DefaultSMTPPort is the default SMTP submission port
	DefaultSMTPPort = 587
	// DefaultVerifyURLBase is the scheme, host and port used in verification links
	DefaultVerifyURLBase = "http://localhost:8080"
	// DefaultSubject is the subject of the verification email
	DefaultSubject = "Verify your email address"
	// DefaultTimeoutMS bounds the SMTP exchange
	DefaultTimeoutMS = 15000
)

// Providers lists the supported mail providers
var Providers = map[string]bool{"log": true, "smtp": true}

// ErrMissingHost indicates the smtp provider was selected without a host
var ErrMissingHost = errors.New("mail host is required for the smtp provider")

// Options is a collection of mail configurations
type Options struct {
	// Provider is "log" or "smtp"
	Provider string `yaml:"provider,omitempty"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	// From is the envelope and header sender. Defaults to Username
	From    string `yaml:"from,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	// VerifyURLBase prefixes the /verify link sent to registrants
	VerifyURLBase string `yaml:"verify_url_base,omitempty"`
	TimeoutMS     int    `yaml:"timeout_ms,omitempty"`

	Timeout time.Duration `yaml:"-"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		Provider:      DefaultProvider,
		Port:          DefaultSMTPPort,
		Subject:       DefaultSubject,
		VerifyURLBase: DefaultVerifyURLBase,
		TimeoutMS:     DefaultTimeoutMS,
		Timeout:       time.Duration(DefaultTimeoutMS) * time.Millisecond,
	}
}

// Validate checks the Options for errors and computes the derived durations
func (o *Options) Validate() error {
	if o.Provider == "" {
		o.Provider = DefaultProvider
	}
	if !Providers[o.Provider] {
		return fmt.Errorf("invalid mail provider: %s", o.Provider)
	}
	if o.Provider == "smtp" && o.Host == "" {
		return ErrMissingHost
	}
	if o.Port <= 0 || o.Port > 65535 {
		return fmt.Errorf("invalid mail port: %d", o.Port)
	}
	if o.From == "" {
		o.From = o.Username
	}
	if o.VerifyURLBase == "" {
		o.VerifyURLBase = DefaultVerifyURLBase
	}
	if o.TimeoutMS <= 0 {
		o.TimeoutMS = DefaultTimeoutMS
	}
	o.Timeout = time.Duration(o.TimeoutMS) * time.Millisecond
	return nil
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}
