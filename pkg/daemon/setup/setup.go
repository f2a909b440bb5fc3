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
// Package setup loads the configuration and builds a ServerInstance from it
package setup

import (
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/myblog/blogserver/pkg/appinfo"
	"github.com/myblog/blogserver/pkg/appinfo/usage"
	"github.com/myblog/blogserver/pkg/auth/local"
	"github.com/myblog/blogserver/pkg/auth/store"
	"github.com/myblog/blogserver/pkg/config"
	"github.com/myblog/blogserver/pkg/daemon/instance"
	"github.com/myblog/blogserver/pkg/httpserver"
	"github.com/myblog/blogserver/pkg/httpserver/listener"
	"github.com/myblog/blogserver/pkg/httpserver/router"
	mr "github.com/myblog/blogserver/pkg/mail/registration"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"
	tr "github.com/myblog/blogserver/pkg/observability/tracing/registration"
	"github.com/myblog/blogserver/pkg/routing"
	sr "github.com/myblog/blogserver/pkg/static/registration"
)

// LoadAndValidate loads and validates the configuration from the command
// line arguments. The Config is nil when -version was requested.
func LoadAndValidate(args []string) (*config.Config, *config.Flags, error) {
	conf, flags, err := config.Load(appinfo.Name, appinfo.Version, args)
	if err != nil {
		fmt.Println("\nERROR: Could not load configuration:", err.Error())
		if flags != nil && flags.ValidateConfig {
			usage.PrintUsage()
		}
		return nil, flags, err
	}
	return conf, flags, nil
}

// ApplyConfig builds the logger, tracer, collaborators, router and listener
// described by conf
func ApplyConfig(conf *config.Config) (*instance.ServerInstance, error) {
	if conf == nil {
		return nil, fmt.Errorf("nil config")
	}
	if conf.Main.ServerName != "" {
		appinfo.Server = conf.Main.ServerName
	}
	initLogger(conf)
	metrics.SetBuildInfo(appinfo.Version, appinfo.GitCommitID)

	si := &instance.ServerInstance{Config: conf}
	var err error
	si.Tracer, err = tr.GetTracer(conf.Tracing, false)
	if err != nil {
		return nil, startupIssue("tracing registration failed", err)
	}

	sp, err := sr.NewProvider(conf.Static)
	if err != nil {
		return nil, startupIssue("static provider registration failed", err)
	}
	md, err := mr.NewDispatcher(conf.Mail)
	if err != nil {
		return nil, startupIssue("mail registration failed", err)
	}
	si.Auth = local.New(conf.Auth, store.New(), md)
	if err = si.Auth.LoadUsers(); err != nil {
		return nil, startupIssue("user loading failed", err)
	}

	si.Router = router.New()
	err = routing.RegisterRoutes(conf, si.Router, &routing.Collaborators{
		Static:        sp,
		Authenticator: si.Auth,
		Registrar:     si.Auth,
		Verifier:      si.Auth,
	})
	if err != nil {
		return nil, startupIssue("route registration failed", err)
	}

	si.Listener, err = listener.New(conf.Frontend.ListenAddress,
		conf.Frontend.ListenPort, conf.Frontend.ConnectionsLimit)
	if err != nil {
		return nil, startupIssue("frontend listener failed to start", err)
	}
	si.Server = httpserver.New(si.Router, conf.Frontend, si.Tracer)
	return si, nil
}

func initLogger(c *config.Config) logging.Logger {
	logger.SetLogger(logging.New(c))
	logger.Info("application loaded from configuration",
		logging.Pairs{
			"name":      appinfo.Name,
			"version":   appinfo.Version,
			"goVersion": goruntime.Version(),
			"goArch":    goruntime.GOARCH,
			"goOS":      goruntime.GOOS,
			"commitID":  appinfo.GitCommitID,
			"buildTime": appinfo.BuildTime,
			"logLevel":  c.Logging.LogLevel,
			"config":    c.ConfigFilePath(),
			"pid":       os.Getpid(),
		},
	)
	for _, w := range c.LoaderWarnings {
		logger.Warn(w, nil)
	}
	logger.Debug("running configuration", logging.Pairs{"config": c.String()})
	return logger.Logger()
}

func startupIssue(event string, err error) error {
	logger.Error(event, logging.Pairs{"detail": err.Error()})
	return fmt.Errorf("%s: %w", event, err)
}
