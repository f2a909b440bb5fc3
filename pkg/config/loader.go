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
	"errors"
	"io/fs"
)

// Load returns the Application Configuration, starting with a default config,
// then overriding with any provided config file, then env vars, and finally flags
func Load(applicationName string, applicationVersion string, arguments []string) (*Config, *Flags, error) {
	c := NewConfig()
	flags, err := parseFlags(applicationName, arguments) // Parse here to get config file path and version flags
	if err != nil {
		return nil, flags, err
	}
	if flags.PrintVersion {
		return nil, flags, nil
	}
	if err := c.loadFile(flags); err != nil {
		if flags.customPath || !errors.Is(err, fs.ErrNotExist) {
			// a user-provided path couldn't be loaded. return the error for the application to handle
			return nil, flags, err
		}
		c.LoaderWarnings = append(c.LoaderWarnings,
			"no config file at "+flags.ConfigPath+"; using defaults")
	}

	c.loadEnvVars()
	c.loadFlags(flags) // load parsed flags to override file and envs

	if err := c.Validate(); err != nil {
		return nil, flags, err
	}
	return c, flags, nil
}
