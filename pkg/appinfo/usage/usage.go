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
// Package usage prints the command line usage and version of the application
package usage

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/myblog/blogserver/pkg/appinfo"
)

const usageText = `
Usage:

 Print Version Info:
  %[1]s -version

 Validate a configuration file and exit:
  %[1]s -config /path/to/blogserver.yaml -validate-config

 Run the server:
  %[1]s [-config /path/to/blogserver.yaml] [-log-level debug|info|warn|error]
     [-listen-address 0.0.0.0] [-listen-port 8080] [-static-root /var/www/blog]

------

The server listens on port 8080 by default. Set in a config file, or override
using -listen-port or BLOG_LISTEN_PORT.

Default log level is info. Set in a config file, or override with -log-level.

When no static root is configured, the compiled-in site is served.
`

// Version returns the version string of the running binary
func Version() string {
	return fmt.Sprintf("%s version: %s, buildInfo: %s %s, goVersion: %s",
		appinfo.Name, appinfo.Version, appinfo.BuildTime, appinfo.GitCommitID,
		runtime.Version())
}

// PrintVersion prints the version information to stdout
func PrintVersion() {
	fprintVersion(os.Stdout)
}

func fprintVersion(w io.Writer) {
	fmt.Fprintln(w, Version())
}

// PrintUsage prints the version and usage information to stdout
func PrintUsage() {
	fprintUsage(os.Stdout)
}

func fprintUsage(w io.Writer) {
	fmt.Fprintln(w)
	fprintVersion(w)
	fmt.Fprintf(w, usageText, appinfo.Name)
}
