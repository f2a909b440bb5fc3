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

package store

import (
	"context"
	"testing"
	"time"

	"github.com/myblog/blogserver/pkg/auth/types"

	"github.com/stretchr/testify/require"
)

func testStore() (*Store, *time.Time) {
	s := New()
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }
	return s, &now
}

func pending(username, email, token string, expires time.Time) *Pending {
	return &Pending{Token: token, Username: username, Hash: "h", Email: email, Expires: expires}
}

func TestSeedAndCheckAvailable(t *testing.T) {
	s, _ := testStore()
	s.Seed(types.CredentialsManifest{
		"alice": {Username: "alice", Hash: "h", Email: "Alice@Example.com"},
		"bob":   {Username: "bob", Hash: "h"},
	})
	require.Equal(t, 2, s.Users())
	u, ok := s.User("alice")
	require.True(t, ok)
	require.Equal(t, "Alice@Example.com", u.Email)

	require.ErrorIs(t, s.CheckAvailable("alice", "new@example.com"), ErrUsernameTaken)
	require.ErrorIs(t, s.CheckAvailable("carol", "alice@example.com"), ErrEmailTaken)
	require.NoError(t, s.CheckAvailable("carol", "carol@example.com"))
	require.NoError(t, s.CheckAvailable("carol", ""))
}

func TestPutPendingReplaces(t *testing.T) {
	s, now := testStore()
	exp := now.Add(time.Hour)

	replaced, err := s.PutPending(pending("carol", "carol@example.com", "t1", exp))
	require.NoError(t, err)
	require.False(t, replaced)

	// same email, different username
	replaced, err = s.PutPending(pending("caroline", "CAROL@example.com", "t2", exp))
	require.NoError(t, err)
	require.True(t, replaced)
	require.Equal(t, 1, s.PendingCount())

	_, err = s.Promote("carol", "t1")
	require.ErrorIs(t, err, ErrInvalidToken)
	u, err := s.Promote("caroline", "t2")
	require.NoError(t, err)
	require.Equal(t, "caroline", u.Username)
	require.Equal(t, 0, s.PendingCount())
}

func TestPutPendingConflicts(t *testing.T) {
	s, now := testStore()
	s.Seed(types.CredentialsManifest{"alice": {Username: "alice", Hash: "h", Email: "alice@example.com"}})
	_, err := s.PutPending(pending("alice", "x@example.com", "t", now.Add(time.Hour)))
	require.ErrorIs(t, err, ErrUsernameTaken)
	_, err = s.PutPending(pending("dave", "alice@example.com", "t", now.Add(time.Hour)))
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, 0, s.PendingCount())
}

func TestPromote(t *testing.T) {
	s, now := testStore()
	_, err := s.PutPending(pending("erin", "erin@example.com", "tok", now.Add(time.Hour)))
	require.NoError(t, err)

	_, err = s.Promote("erin", "wrong")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.Promote("someone", "tok")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.Promote("erin", "")
	require.ErrorIs(t, err, ErrInvalidToken)

	u, err := s.Promote("erin", "tok")
	require.NoError(t, err)
	require.Equal(t, "erin@example.com", u.Email)
	_, ok := s.User("erin")
	require.True(t, ok)
	require.ErrorIs(t, s.CheckAvailable("x", "ERIN@example.com"), ErrEmailTaken)

	// the token is single use
	_, err = s.Promote("erin", "tok")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPromoteExpired(t *testing.T) {
	s, now := testStore()
	_, err := s.PutPending(pending("frank", "frank@example.com", "tok", now.Add(time.Hour)))
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	_, err = s.Promote("frank", "tok")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPromoteUserCreatedMeanwhile(t *testing.T) {
	s, now := testStore()
	_, err := s.PutPending(pending("gina", "gina@example.com", "tok", now.Add(time.Hour)))
	require.NoError(t, err)
	s.Seed(types.CredentialsManifest{"gina": {Username: "gina", Hash: "h"}})
	_, err = s.Promote("gina", "tok")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestPrune(t *testing.T) {
	s, now := testStore()
	_, err := s.PutPending(pending("a", "a@example.com", "t", now.Add(time.Minute)))
	require.NoError(t, err)
	_, err = s.PutPending(pending("b", "b@example.com", "t", now.Add(time.Hour)))
	require.NoError(t, err)
	*now = now.Add(2 * time.Minute)
	require.Equal(t, 1, s.Prune())
	require.Equal(t, 1, s.PendingCount())
}

func TestReapStopsOnCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Reap(ctx, time.Millisecond) }()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Reap did not return after cancel")
	}
}
