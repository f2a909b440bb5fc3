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

// Package config provides blog server configuration abilities, including
// parsing and printing configuration files, command line parameters, and
// environment variables, as well as default values and state.
package config

import (
	"os"

	ao "github.com/myblog/blogserver/pkg/auth/options"
	fo "github.com/myblog/blogserver/pkg/frontend/options"
	mlo "github.com/myblog/blogserver/pkg/mail/options"
	lo "github.com/myblog/blogserver/pkg/observability/logging/options"
	mo "github.com/myblog/blogserver/pkg/observability/metrics/options"
	to "github.com/myblog/blogserver/pkg/observability/tracing/options"
	so "github.com/myblog/blogserver/pkg/static/options"
	"github.com/myblog/blogserver/pkg/util/strings"

	"gopkg.in/yaml.v2"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Frontend provides configurations about the raw socket HTTP listener
	Frontend *fo.Options `yaml:"frontend,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting Metrics about the application
	Metrics *mo.Options `yaml:"metrics,omitempty"`
	// Tracing provides the distributed tracing configuration
	Tracing *to.Options `yaml:"tracing,omitempty"`
	// Static provides configurations for the static content provider
	Static *so.Options `yaml:"static,omitempty"`
	// Auth provides configurations for the user store and auth routes
	Auth *ao.Options `yaml:"auth,omitempty"`
	// Mail provides configurations for verification email delivery
	Mail *mlo.Options `yaml:"mail,omitempty"`

	LoaderWarnings []string `yaml:"-"`
}

// MainConfig is a collection of general configuration values.
type MainConfig struct {
	// InstanceID represents a unique ID for the current instance, when multiple instances on the same host
	InstanceID int `yaml:"instance_id,omitempty"`
	// PingHandlerPath provides the path to register the Ping Handler for checking that the server is running
	PingHandlerPath string `yaml:"ping_handler_path,omitempty"`
	// ServerName identifies this instance in logs and traces. Defaults to os.Hostname
	ServerName string `yaml:"server_name,omitempty"`

	configFilePath string
}

// NewConfig returns a Config initialized with default values.
func NewConfig() *Config {
	hn, _ := os.Hostname()
	return &Config{
		Main: &MainConfig{
			PingHandlerPath: DefaultPingHandlerPath,
			ServerName:      hn,
		},
		Frontend:       fo.New(),
		Logging:        lo.New(),
		Metrics:        mo.New(),
		Tracing:        to.New(),
		Static:         so.New(),
		Auth:           ao.New(),
		Mail:           mlo.New(),
		LoaderWarnings: make([]string, 0),
	}
}

// loadFile loads application configuration from a YAML-formatted file.
func (c *Config) loadFile(flags *Flags) error {
	b, err := os.ReadFile(flags.ConfigPath)
	if err != nil {
		return err
	}
	return c.loadYAMLConfig(string(b), flags)
}

// loadYAMLConfig loads application configuration from a YAML-formatted string.
func (c *Config) loadYAMLConfig(yml string, flags *Flags) error {
	err := yaml.Unmarshal([]byte(yml), c)
	if err != nil {
		return err
	}
	c.fillNilSections()
	c.Main.configFilePath = flags.ConfigPath
	return nil
}

// fillNilSections restores defaults for any section the file set to null
func (c *Config) fillNilSections() {
	d := NewConfig()
	if c.Main == nil {
		c.Main = d.Main
	}
	if c.Frontend == nil {
		c.Frontend = d.Frontend
	}
	if c.Logging == nil {
		c.Logging = d.Logging
	}
	if c.Metrics == nil {
		c.Metrics = d.Metrics
	}
	if c.Tracing == nil {
		c.Tracing = d.Tracing
	}
	if c.Static == nil {
		c.Static = d.Static
	}
	if c.Auth == nil {
		c.Auth = d.Auth
	}
	if c.Mail == nil {
		c.Mail = d.Mail
	}
}

// Validate checks each section of the Config for errors, and computes any
// values derived from the provided settings
func (c *Config) Validate() error {
	c.fillNilSections()
	if c.Main.PingHandlerPath == "" {
		c.Main.PingHandlerPath = DefaultPingHandlerPath
	}
	for _, v := range []interface{ Validate() error }{
		c.Frontend, c.Tracing, c.Static, c.Auth, c.Mail,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if c.Mail.Provider == "log" {
		c.LoaderWarnings = append(c.LoaderWarnings,
			"mail provider is 'log'; verification links will be written to the log instead of emailed")
	}
	return nil
}

// Clone returns an exact copy of the subject *Config
func (c *Config) Clone() *Config {
	nc := &Config{
		Main:           &MainConfig{},
		LoaderWarnings: append([]string(nil), c.LoaderWarnings...),
	}
	if c.Main != nil {
		*nc.Main = *c.Main
	}
	if c.Frontend != nil {
		nc.Frontend = c.Frontend.Clone()
	}
	if c.Logging != nil {
		nc.Logging = c.Logging.Clone()
	}
	if c.Metrics != nil {
		nc.Metrics = c.Metrics.Clone()
	}
	if c.Tracing != nil {
		nc.Tracing = c.Tracing.Clone()
	}
	if c.Static != nil {
		nc.Static = c.Static.Clone()
	}
	if c.Auth != nil {
		nc.Auth = c.Auth.Clone()
	}
	if c.Mail != nil {
		nc.Mail = c.Mail.Clone()
	}
	return nc
}

// String returns the running configuration as YAML, with secrets masked
func (c *Config) String() string {
	cp := c.Clone()
	if cp.Mail != nil {
		cp.Mail.Password = strings.Mask(cp.Mail.Password)
	}
	if cp.Tracing != nil {
		cp.Tracing.CollectorPass = strings.Mask(cp.Tracing.CollectorPass)
	}
	if cp.Auth != nil {
		for k, v := range cp.Auth.Users {
			cp.Auth.Users[k] = strings.Mask(v)
		}
	}
	b, err := yaml.Marshal(cp)
	if err != nil {
		return ""
	}
	return string(b)
}

// ConfigFilePath returns the file path from which this configuration is based
func (c *Config) ConfigFilePath() string {
	if c.Main != nil {
		return c.Main.configFilePath
	}
	return ""
}
