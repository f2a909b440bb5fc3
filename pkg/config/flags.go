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
	"flag"
)

const (
	// Command-line flags
	cfConfig        = "config"
	cfVersion       = "version"
	cfValidate      = "validate-config"
	cfLogLevel      = "log-level"
	cfInstanceID    = "instance-id"
	cfListenPort    = "listen-port"
	cfListenAddress = "listen-address"
	cfStaticRoot    = "static-root"
)

// Flags holds the values for whitelisted flags
type Flags struct {
	PrintVersion   bool
	ValidateConfig bool
	customPath     bool
	ListenPort     int
	InstanceID     int
	ConfigPath     string
	ListenAddress  string
	LogLevel       string
	StaticRoot     string
}

func parseFlags(applicationName string, arguments []string) (*Flags, error) {
	flags := &Flags{}
	flagSet := flag.NewFlagSet(applicationName, flag.ContinueOnError)

	flagSet.BoolVar(&flags.PrintVersion, cfVersion, false,
		"Prints the blogserver version")
	flagSet.BoolVar(&flags.ValidateConfig, cfValidate, false,
		"Validates a blogserver config and exits without running the server")
	flagSet.StringVar(&flags.ConfigPath, cfConfig, "",
		"Path to blogserver Config File")
	flagSet.StringVar(&flags.LogLevel, cfLogLevel, "",
		"Level of Logging to use (debug, info, warn, error)")
	flagSet.IntVar(&flags.InstanceID, cfInstanceID, 0,
		"Instance ID is for running multiple blogserver processes"+
			" from the same config while logging to their own files")
	flagSet.IntVar(&flags.ListenPort, cfListenPort, 0,
		"Port that the HTTP frontend will listen on")
	flagSet.StringVar(&flags.ListenAddress, cfListenAddress, "",
		"Address that the HTTP frontend will listen on")
	flagSet.StringVar(&flags.StaticRoot, cfStaticRoot, "",
		"Directory of static site content. The compiled-in site is used when empty")

	err := flagSet.Parse(arguments)
	if err != nil {
		return nil, err
	}
	if flags.ConfigPath != "" {
		flags.customPath = true
	} else {
		flags.ConfigPath = DefaultConfigPath
	}
	return flags, nil
}

// loadFlags loads configuration from command line flags.
func (c *Config) loadFlags(flags *Flags) {
	if flags.ListenPort > 0 {
		c.Frontend.ListenPort = flags.ListenPort
	}
	if flags.ListenAddress != "" {
		c.Frontend.ListenAddress = flags.ListenAddress
	}
	if flags.LogLevel != "" {
		c.Logging.LogLevel = flags.LogLevel
	}
	if flags.InstanceID > 0 {
		c.Main.InstanceID = flags.InstanceID
	}
	if flags.StaticRoot != "" {
		c.Static.Root = flags.StaticRoot
	}
}
