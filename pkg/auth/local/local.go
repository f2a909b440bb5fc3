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

// Package local provides the Authenticator, Registrar and Verifier backed by
// the in-memory user store
package local

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/myblog/blogserver/pkg/auth/cred"
	"github.com/myblog/blogserver/pkg/auth/loaders"
	"github.com/myblog/blogserver/pkg/auth/options"
	"github.com/myblog/blogserver/pkg/auth/store"
	"github.com/myblog/blogserver/pkg/auth/types"
	"github.com/myblog/blogserver/pkg/mail"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"
)

// Messages returned to the client in Results
const (
	MsgLoginSuccessful    = "Login successful"
	MsgInvalidCredentials = "Invalid username or password"
	MsgMissingFields      = "Username, password and email are required"
	MsgUsernameTaken      = "Username is already registered"
	MsgEmailTaken         = "Email address is already registered"
	MsgEmailFailed        = "Failed to send verification email"
	MsgRegisterFailed     = "Registration failed. Please try again."
	MsgVerificationSent   = "Verification email sent"
	MsgVerificationResent = "Verification email resent"
	MsgVerified           = "Email verified successfully"
	MsgUserExists         = "User already exists"
	MsgInvalidToken       = "Invalid or expired verification token"
)

var (
	_ types.Authenticator = &Service{}
	_ types.Registrar     = &Service{}
	_ types.Verifier      = &Service{}
)

// Service implements login, registration and verification over a Store
type Service struct {
	options *options.Options
	store   *store.Store
	mailer  mail.Dispatcher
	now     func() time.Time
}

// New returns a Service using the Store and mail Dispatcher
func New(o *options.Options, s *store.Store, d mail.Dispatcher) *Service {
	if o == nil {
		o = options.New()
	}
	if s == nil {
		s = store.New()
	}
	return &Service{options: o, store: s, mailer: d, now: time.Now}
}

// Store returns the Service's underlying Store
func (svc *Service) Store() *store.Store {
	return svc.store
}

// LoadUsers seeds the Store with the users configured in the Options
func (svc *Service) LoadUsers() error {
	if svc.options.UsersFile != "" {
		m, err := loaders.LoadData(svc.options.UsersFile,
			types.CredentialsFileFormat(svc.options.UsersFileFormat), svc.options.BcryptCost)
		if err != nil {
			return err
		}
		svc.store.Seed(m)
	}
	if len(svc.options.Users) > 0 {
		m, err := loaders.LoadMap(svc.options.Users, svc.options.BcryptCost)
		if err != nil {
			return err
		}
		svc.store.Seed(m)
	}
	logger.Info("users loaded", logging.Pairs{
		"count":     svc.store.Users(),
		"usersFile": svc.options.UsersFile,
	})
	return nil
}

func observe(op string, r *types.Result) *types.Result {
	result := "failure"
	if r.Success {
		result = "success"
	}
	metrics.AuthEvents.WithLabelValues(op, result).Inc()
	return r
}

// Check implements types.Authenticator
func (svc *Service) Check(_ context.Context, username, password string) *types.Result {
	u, ok := svc.store.User(username)
	if !ok || cred.VerifyPassword(u.Hash, password) != nil {
		logger.Debug("login failed", logging.Pairs{"username": username})
		return observe("login", types.Failed(MsgInvalidCredentials))
	}
	return observe("login", types.Succeeded(MsgLoginSuccessful))
}

// Register implements types.Registrar. Conflicts with verified users are
// reported before any email is sent.
func (svc *Service) Register(ctx context.Context, username, password,
	email string) *types.Result {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return observe("register", types.Failed(MsgMissingFields))
	}
	if err := svc.store.CheckAvailable(username, email); err != nil {
		return observe("register", types.Failed(conflictMessage(err)))
	}
	hash, err := cred.Hash(password, svc.options.BcryptCost)
	if err != nil {
		logger.Error("password hashing failed",
			logging.Pairs{"username": username, "detail": err.Error()})
		return observe("register", types.Failed(MsgRegisterFailed))
	}
	token, err := svc.mailer.SendVerification(ctx, email, username)
	if err != nil {
		logger.Error("verification email failed", logging.Pairs{
			"username": username, "email": email, "detail": err.Error(),
		})
		return observe("register", types.Failed(MsgEmailFailed))
	}
	replaced, err := svc.store.PutPending(&store.Pending{
		Token:    token,
		Username: username,
		Hash:     hash,
		Email:    email,
		Expires:  svc.now().Add(svc.options.PendingTTL),
	})
	if err != nil {
		return observe("register", types.Failed(conflictMessage(err)))
	}
	logger.Info("registration pending verification",
		logging.Pairs{"username": username, "resent": replaced})
	if replaced {
		return observe("register", types.Succeeded(MsgVerificationResent))
	}
	return observe("register", types.Succeeded(MsgVerificationSent))
}

// Verify implements types.Verifier
func (svc *Service) Verify(_ context.Context, username, token string) *types.Result {
	if username == "" || token == "" {
		return observe("verify", types.Failed(MsgInvalidToken))
	}
	_, err := svc.store.Promote(username, token)
	switch {
	case err == nil:
		logger.Info("user verified", logging.Pairs{"username": username})
		return observe("verify", types.Succeeded(MsgVerified))
	case errors.Is(err, store.ErrInvalidToken):
		return observe("verify", types.Failed(MsgInvalidToken))
	default:
		return observe("verify", types.Failed(MsgUserExists))
	}
}

// Reap prunes expired pending registrations until ctx is done
func (svc *Service) Reap(ctx context.Context) error {
	return svc.store.Reap(ctx, svc.options.ReapInterval)
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return MsgUsernameTaken
	case errors.Is(err, store.ErrEmailTaken):
		return MsgEmailTaken
	}
	return MsgRegisterFailed
}
