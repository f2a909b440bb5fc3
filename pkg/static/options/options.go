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

// Package options holds the configuration of the static content provider
package options

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultHTMLDir is the subdirectory of Root that holds .html documents
	DefaultHTMLDir = "html"
	// DefaultIndexPath is the document served for "/"
	DefaultIndexPath = "/login.html"
	// DefaultCacheTTLMS is how long loaded content is cached
	DefaultCacheTTLMS = 60000
)

// ErrInvalidIndexPath indicates the index path is not absolute
var ErrInvalidIndexPath = errors.New("static index_path must begin with /")

// Options is a collection of static content configurations
type Options struct {
	// Root is the filesystem directory holding the site. When empty, the
	// compiled-in default site is served
	Root string `yaml:"root,omitempty"`
	// HTMLDir is the subdirectory of Root that holds .html documents
	HTMLDir string `yaml:"html_dir,omitempty"`
	// IndexPath is the document served for "/"
	IndexPath string `yaml:"index_path,omitempty"`
	// CacheEnabled caches loaded content in memory
	CacheEnabled bool `yaml:"cache_enabled,omitempty"`
	// CacheTTLMS is how long cached content lives. 0 caches forever
	CacheTTLMS int `yaml:"cache_ttl_ms,omitempty"`

	CacheTTL time.Duration `yaml:"-"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		HTMLDir:      DefaultHTMLDir,
		IndexPath:    DefaultIndexPath,
		CacheEnabled: true,
		CacheTTLMS:   DefaultCacheTTLMS,
		CacheTTL:     time.Duration(DefaultCacheTTLMS) * time.Millisecond,
	}
}

// Validate checks the Options for errors and computes the derived durations
func (o *Options) Validate() error {
	if o.IndexPath == "" {
		o.IndexPath = DefaultIndexPath
	}
	if !strings.HasPrefix(o.IndexPath, "/") {
		return ErrInvalidIndexPath
	}
	if o.HTMLDir == "" {
		o.HTMLDir = DefaultHTMLDir
	}
	if o.CacheTTLMS < 0 {
		o.CacheTTLMS = 0
	}
	o.CacheTTL = time.Duration(o.CacheTTLMS) * time.Millisecond
	return nil
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}
