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

// Package logsender provides a mail Sender that logs verification links
// instead of delivering mail, for development and tests
package logsender

import (
	"context"

	"github.com/myblog/blogserver/pkg/mail"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
)

// Sender logs each Message at info level
type Sender struct{}

// New returns a new log Sender
func New() *Sender {
	return &Sender{}
}

// Send implements mail.Sender
func (*Sender) Send(_ context.Context, m *mail.Message) error {
	logger.Info("verification email", logging.Pairs{
		"to":      m.To,
		"subject": m.Subject,
		"link":    m.Link,
	})
	return nil
}
