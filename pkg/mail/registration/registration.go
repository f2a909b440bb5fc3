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

// Package registration builds the configured mail Dispatcher
package registration

import (
	"fmt"

	"github.com/myblog/blogserver/pkg/mail"
	"github.com/myblog/blogserver/pkg/mail/logsender"
	"github.com/myblog/blogserver/pkg/mail/options"
	"github.com/myblog/blogserver/pkg/mail/smtp"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
)

// NewDispatcher returns a mail Dispatcher using the configured provider
func NewDispatcher(o *options.Options) (mail.Dispatcher, error) {
	if o == nil {
		o = options.New()
	}
	var s mail.Sender
	switch o.Provider {
	case "", "log":
		s = logsender.New()
	case "smtp":
		s = smtp.New(o)
	default:
		return nil, fmt.Errorf("invalid mail provider: %s", o.Provider)
	}
	logger.Info("mail dispatcher loaded", logging.Pairs{
		"provider": o.Provider,
		"host":     o.Host,
		"port":     o.Port,
	})
	return mail.NewDispatcher(o, s), nil
}
