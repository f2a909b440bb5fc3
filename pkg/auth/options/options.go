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

// Package options holds the configuration of the local user store and the
// login, registration and verification routes
package options

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultPendingTTLSecs is how long a registration may wait for email verification
	DefaultPendingTTLSecs = 86400
	// DefaultReapIntervalSecs is how often expired pending registrations are pruned
	DefaultReapIntervalSecs = 300
	// DefaultLoginRedirect is where the client is sent after a successful login
	DefaultLoginRedirect = "/mypage"
	// DefaultRegisterRedirect is where the client is sent after a successful registration
	DefaultRegisterRedirect = "/register-confirmation"
	// DefaultBcryptCost is the bcrypt cost used when hashing passwords
	DefaultBcryptCost = 10
)

// ErrInvalidTTL indicates a non-positive pending registration TTL
var ErrInvalidTTL = errors.New("auth pending_ttl_secs must be greater than 0")

// Formats lists the supported users_file formats
var Formats = map[string]bool{"csv": true, "htpasswd": true, "yaml": true}

// Options is a collection of authentication configurations
type Options struct {
	// Users is a map of username to password (plaintext or bcrypt hash) that are
	// registered and verified at startup
	Users map[string]string `yaml:"users,omitempty"`
	// UsersFile is the path to a file of users loaded at startup
	UsersFile string `yaml:"users_file,omitempty"`
	// UsersFileFormat is the format of UsersFile: csv, htpasswd or yaml
	UsersFileFormat string `yaml:"users_file_format,omitempty"`
	// PendingTTLSecs is how long a registration may wait for verification
	PendingTTLSecs int `yaml:"pending_ttl_secs,omitempty"`
	// ReapIntervalSecs is how often expired pending registrations are pruned
	ReapIntervalSecs int `yaml:"reap_interval_secs,omitempty"`
	// BcryptCost is the cost used when hashing passwords
	BcryptCost int `yaml:"bcrypt_cost,omitempty"`
	// LoginRedirect is the redirect target returned for a successful login
	LoginRedirect string `yaml:"login_redirect,omitempty"`
	// RegisterRedirect is the redirect target returned for a successful registration
	RegisterRedirect string `yaml:"register_redirect,omitempty"`

	PendingTTL   time.Duration `yaml:"-"`
	ReapInterval time.Duration `yaml:"-"`
}

// New returns a new Options with default values
func New() *Options {
	o := &Options{
		UsersFileFormat:  "csv",
		PendingTTLSecs:   DefaultPendingTTLSecs,
		ReapIntervalSecs: DefaultReapIntervalSecs,
		BcryptCost:       DefaultBcryptCost,
		LoginRedirect:    DefaultLoginRedirect,
		RegisterRedirect: DefaultRegisterRedirect,
	}
	o.setDurations()
	return o
}

func (o *Options) setDurations() {
	o.PendingTTL = time.Duration(o.PendingTTLSecs) * time.Second
	o.ReapInterval = time.Duration(o.ReapIntervalSecs) * time.Second
}

// Validate checks the Options for errors and computes the derived durations
func (o *Options) Validate() error {
	if o.PendingTTLSecs <= 0 {
		return ErrInvalidTTL
	}
	if o.UsersFileFormat == "" {
		o.UsersFileFormat = "csv"
	}
	if o.UsersFile != "" && !Formats[o.UsersFileFormat] {
		return fmt.Errorf("invalid auth users_file_format: %s", o.UsersFileFormat)
	}
	if o.BcryptCost == 0 {
		o.BcryptCost = DefaultBcryptCost
	}
	if o.LoginRedirect == "" {
		o.LoginRedirect = DefaultLoginRedirect
	}
	if o.RegisterRedirect == "" {
		o.RegisterRedirect = DefaultRegisterRedirect
	}
	o.setDurations()
	return nil
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	if o.Users != nil {
		o2.Users = make(map[string]string, len(o.Users))
		for k, v := range o.Users {
			o2.Users[k] = v
		}
	}
	return &o2
}
