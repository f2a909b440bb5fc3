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

// Package store holds verified users and pending registrations in memory
package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/myblog/blogserver/pkg/auth/types"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"
	"github.com/myblog/blogserver/pkg/observability/metrics"
)

var (
	// ErrUsernameTaken indicates the username belongs to a verified user
	ErrUsernameTaken = errors.New("username is already registered")
	// ErrEmailTaken indicates the email address belongs to a verified user
	ErrEmailTaken = errors.New("email address is already registered")
	// ErrInvalidToken indicates no unexpired pending registration matches
	ErrInvalidToken = errors.New("invalid or expired verification token")
)

// User is a verified account
type User struct {
	Username string
	Hash     string
	Email    string
	Created  time.Time
}

// Pending is a registration awaiting email verification
type Pending struct {
	Token    string
	Username string
	Hash     string
	Email    string
	Expires  time.Time
}

// Store is a concurrency-safe set of users and pending registrations. Email
// addresses are matched case-insensitively.
type Store struct {
	mtx     sync.RWMutex
	users   map[string]*User
	emails  map[string]string
	pending map[string]*Pending
	now     func() time.Time
}

// New returns a new, empty Store
func New() *Store {
	return &Store{
		users:   make(map[string]*User),
		emails:  make(map[string]string),
		pending: make(map[string]*Pending),
		now:     time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Seed adds the manifest's users as verified accounts, replacing any existing
// user of the same name
func (s *Store) Seed(m types.CredentialsManifest) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	now := s.now()
	for username, c := range m {
		if c == nil {
			continue
		}
		if old, ok := s.users[username]; ok && old.Email != "" {
			delete(s.emails, emailKey(old.Email))
		}
		s.users[username] = &User{Username: username, Hash: c.Hash, Email: c.Email, Created: now}
		if c.Email != "" {
			s.emails[emailKey(c.Email)] = username
		}
	}
}

// User returns the verified user with the username
func (s *Store) User(username string) (*User, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	u, ok := s.users[username]
	return u, ok
}

// Users returns the number of verified users
func (s *Store) Users() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.users)
}

// PendingCount returns the number of pending registrations, including any
// that have expired but not yet been pruned
func (s *Store) PendingCount() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.pending)
}

// CheckAvailable returns ErrUsernameTaken or ErrEmailTaken when a verified
// user already holds the username or email
func (s *Store) CheckAvailable(username, email string) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.checkAvailable(username, email)
}

func (s *Store) checkAvailable(username, email string) error {
	if _, ok := s.users[username]; ok {
		return ErrUsernameTaken
	}
	if _, ok := s.emails[emailKey(email)]; ok && email != "" {
		return ErrEmailTaken
	}
	return nil
}

// PutPending stores p, replacing every pending registration with the same
// username or email. It returns true when a previous registration was
// replaced.
func (s *Store) PutPending(p *Pending) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if err := s.checkAvailable(p.Username, p.Email); err != nil {
		return false, err
	}
	replaced := s.removePendingMatching(p.Username, p.Email)
	s.pending[p.Username] = p
	s.updateGauge()
	return replaced, nil
}

func (s *Store) removePendingMatching(username, email string) bool {
	var removed bool
	ek := emailKey(email)
	for k, v := range s.pending {
		if k == username || (ek != "" && emailKey(v.Email) == ek) {
			delete(s.pending, k)
			removed = true
		}
	}
	return removed
}

// Promote turns the unexpired pending registration matching the username and
// token into a verified user. It returns ErrInvalidToken when none matches,
// or ErrUsernameTaken / ErrEmailTaken when a verified user already exists.
func (s *Store) Promote(username, token string) (*User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	now := s.now()
	p, ok := s.pending[username]
	if !ok || token == "" || p.Token != token || !now.Before(p.Expires) {
		return nil, ErrInvalidToken
	}
	if err := s.checkAvailable(p.Username, p.Email); err != nil {
		return nil, err
	}
	u := &User{Username: p.Username, Hash: p.Hash, Email: p.Email, Created: now}
	s.users[u.Username] = u
	if u.Email != "" {
		s.emails[emailKey(u.Email)] = u.Username
	}
	s.removePendingMatching(p.Username, p.Email)
	s.pruneExpired(now)
	s.updateGauge()
	return u, nil
}

// Prune removes expired pending registrations and returns how many were removed
func (s *Store) Prune() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	n := s.pruneExpired(s.now())
	s.updateGauge()
	return n
}

func (s *Store) pruneExpired(now time.Time) int {
	var n int
	for k, v := range s.pending {
		if !now.Before(v.Expires) {
			delete(s.pending, k)
			n++
		}
	}
	return n
}

func (s *Store) updateGauge() {
	metrics.PendingRegistrations.Set(float64(len(s.pending)))
}

// Reap prunes expired pending registrations every interval until ctx is done
func (s *Store) Reap(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Prune(); n > 0 {
				logger.Debug("pruned expired pending registrations",
					logging.Pairs{"count": n})
			}
		}
	}
}
