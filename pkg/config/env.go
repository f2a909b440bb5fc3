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

package config

import (
	"os"
	"strconv"
)

const (
	// Environment variables
	evListenPort    = "BLOG_LISTEN_PORT"
	evListenAddress = "BLOG_LISTEN_ADDRESS"
	evLogLevel      = "BLOG_LOG_LEVEL"
	evStaticRoot    = "BLOG_STATIC_ROOT"
	evSMTPHost      = "BLOG_SMTP_HOST"
	evSMTPPort      = "BLOG_SMTP_PORT"
	evSMTPUsername  = "BLOG_SMTP_USERNAME"
	evSMTPPassword  = "BLOG_SMTP_PASSWORD"
)

func (c *Config) loadEnvVars() {
	// Listen Port
	if x := os.Getenv(evListenPort); x != "" {
		if y, err := strconv.ParseInt(x, 10, 32); err == nil {
			c.Frontend.ListenPort = int(y)
		} else {
			c.LoaderWarnings = append(c.LoaderWarnings, "ignoring invalid "+evListenPort+": "+x)
		}
	}

	if x := os.Getenv(evListenAddress); x != "" {
		c.Frontend.ListenAddress = x
	}

	// LogLevel
	if x := os.Getenv(evLogLevel); x != "" {
		c.Logging.LogLevel = x
	}

	if x := os.Getenv(evStaticRoot); x != "" {
		c.Static.Root = x
	}

	// SMTP settings imply the smtp provider
	if x := os.Getenv(evSMTPHost); x != "" {
		c.Mail.Host = x
		c.Mail.Provider = "smtp"
	}

	if x := os.Getenv(evSMTPPort); x != "" {
		if y, err := strconv.ParseInt(x, 10, 32); err == nil {
			c.Mail.Port = int(y)
		} else {
			c.LoaderWarnings = append(c.LoaderWarnings, "ignoring invalid "+evSMTPPort+": "+x)
		}
	}

	if x := os.Getenv(evSMTPUsername); x != "" {
		c.Mail.Username = x
	}

	if x := os.Getenv(evSMTPPassword); x != "" {
		c.Mail.Password = x
	}
}
