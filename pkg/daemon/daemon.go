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
// Package daemon runs the blog server process based on the provided
// configuration
package daemon

import (
	"context"
	"fmt"
	"sync"

	"github.com/myblog/blogserver/pkg/appinfo"
	"github.com/myblog/blogserver/pkg/appinfo/usage"
	"github.com/myblog/blogserver/pkg/daemon/setup"
	"github.com/myblog/blogserver/pkg/daemon/signaling"
	"github.com/myblog/blogserver/pkg/errors"
)

var mtx sync.Mutex
var wasStarted bool

// Start loads the configuration from args and runs the server until ctx is
// done or the process receives SIGINT or SIGTERM
func Start(ctx context.Context, args []string) error {
	mtx.Lock()
	if wasStarted {
		mtx.Unlock()
		return errors.ErrServerAlreadyStarted
	}

	conf, flags, err := setup.LoadAndValidate(args)
	if err != nil {
		mtx.Unlock()
		return err
	}

	// if it's a -version command, print version and exit
	if flags != nil && flags.PrintVersion {
		mtx.Unlock()
		usage.PrintVersion()
		return nil
	}

	// if it's a -validate command, print validation result
	if flags != nil && flags.ValidateConfig {
		mtx.Unlock()
		fmt.Printf("%s configuration validation succeeded.\n", appinfo.Name)
		return nil
	}

	si, err := setup.ApplyConfig(conf)
	if err != nil {
		mtx.Unlock()
		return err
	}
	wasStarted = true
	mtx.Unlock()
	defer func() {
		mtx.Lock()
		wasStarted = false
		mtx.Unlock()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		signaling.Wait(ctx)
		cancel()
	}()
	return si.Run(ctx)
}
