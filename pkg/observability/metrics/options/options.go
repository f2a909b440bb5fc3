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

import "strings"

// DefaultMetricsPath is the default path of the Prometheus exposition route
const DefaultMetricsPath = "/blogserver/metrics"

// Options is a collection of Metrics Collection configurations
type Options struct {
	// Path is the route from which the Application Metrics are available for pulling.
	// Set to "off" to disable the route
	Path string `yaml:"path,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		Path: DefaultMetricsPath,
	}
}

// Enabled returns true if the metrics route should be registered
func (o *Options) Enabled() bool {
	return o != nil && o.Path != "" && !strings.EqualFold(o.Path, "off")
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	return &Options{
		Path: o.Path,
	}
}
