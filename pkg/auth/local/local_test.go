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

package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/myblog/blogserver/pkg/auth/options"
	"github.com/myblog/blogserver/pkg/auth/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeMailer struct {
	tokens []string
	sent   int
	err    error
}

func (f *fakeMailer) SendVerification(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	tok := f.tokens[f.sent]
	f.sent++
	return tok, nil
}

func testService(t *testing.T, m *fakeMailer) *Service {
	t.Helper()
	o := options.New()
	o.BcryptCost = bcrypt.MinCost
	o.Users = map[string]string{"alice": "wonderland"}
	require.NoError(t, o.Validate())
	svc := New(o, store.New(), m)
	require.NoError(t, svc.LoadUsers())
	return svc
}

func TestCheck(t *testing.T) {
	svc := testService(t, &fakeMailer{})
	ctx := context.Background()

	r := svc.Check(ctx, "alice", "wonderland")
	require.True(t, r.Success)
	require.Equal(t, MsgLoginSuccessful, r.Message)

	for _, c := range [][2]string{{"alice", "wrong"}, {"nobody", "wonderland"}, {"", ""}} {
		r = svc.Check(ctx, c[0], c[1])
		require.False(t, r.Success)
		require.Equal(t, MsgInvalidCredentials, r.Message)
	}
}

func TestRegisterAndVerify(t *testing.T) {
	m := &fakeMailer{tokens: []string{"tok-1", "tok-2"}}
	svc := testService(t, m)
	ctx := context.Background()

	r := svc.Register(ctx, "bob", "builder", "bob@example.com")
	require.True(t, r.Success)
	require.Equal(t, MsgVerificationSent, r.Message)

	r = svc.Register(ctx, "bob", "builder2", "bob@example.com")
	require.True(t, r.Success)
	require.Equal(t, MsgVerificationResent, r.Message)
	require.Equal(t, 2, m.sent)

	// the first token was superseded
	r = svc.Verify(ctx, "bob", "tok-1")
	require.False(t, r.Success)
	require.Equal(t, MsgInvalidToken, r.Message)

	r = svc.Verify(ctx, "bob", "tok-2")
	require.True(t, r.Success)
	require.Equal(t, MsgVerified, r.Message)

	require.True(t, svc.Check(ctx, "bob", "builder2").Success)
	require.False(t, svc.Check(ctx, "bob", "builder").Success)
}

func TestRegisterConflictsSendNoMail(t *testing.T) {
	m := &fakeMailer{tokens: []string{"tok"}}
	svc := testService(t, m)
	ctx := context.Background()

	r := svc.Register(ctx, "alice", "pw", "new@example.com")
	require.False(t, r.Success)
	require.Equal(t, MsgUsernameTaken, r.Message)

	require.True(t, svc.Register(ctx, "carol", "pw", "carol@example.com").Success)
	require.True(t, svc.Verify(ctx, "carol", "tok").Success)

	r = svc.Register(ctx, "caroline", "pw", "Carol@Example.com")
	require.False(t, r.Success)
	require.Equal(t, MsgEmailTaken, r.Message)
	require.Equal(t, 1, m.sent)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := testService(t, &fakeMailer{})
	r := svc.Register(context.Background(), " ", "pw", "a@example.com")
	require.False(t, r.Success)
	require.Equal(t, MsgMissingFields, r.Message)
}

func TestRegisterMailFailure(t *testing.T) {
	svc := testService(t, &fakeMailer{err: errors.New("smtp down")})
	r := svc.Register(context.Background(), "dave", "pw", "dave@example.com")
	require.False(t, r.Success)
	require.Equal(t, MsgEmailFailed, r.Message)
	require.Equal(t, 0, svc.Store().PendingCount())
}

func TestVerifyExpired(t *testing.T) {
	svc := testService(t, &fakeMailer{tokens: []string{"tok"}})
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	require.True(t, svc.Register(context.Background(), "erin", "pw", "erin@example.com").Success)
	r := svc.Verify(context.Background(), "erin", "tok")
	require.False(t, r.Success)
	require.Equal(t, MsgInvalidToken, r.Message)
}

func TestVerifyMissingFields(t *testing.T) {
	svc := testService(t, &fakeMailer{})
	require.Equal(t, MsgInvalidToken, svc.Verify(context.Background(), "", "tok").Message)
	require.Equal(t, MsgInvalidToken, svc.Verify(context.Background(), "bob", "").Message)
}

func TestLoadUsersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte("username,password,email\nfrank,pw,frank@example.com\n"), 0o644))
	o := options.New()
	o.BcryptCost = bcrypt.MinCost
	o.UsersFile = path
	require.NoError(t, o.Validate())
	svc := New(o, nil, &fakeMailer{})
	require.NoError(t, svc.LoadUsers())
	require.True(t, svc.Check(context.Background(), "frank", "pw").Success)

	o.UsersFile = filepath.Join(t.TempDir(), "missing.csv")
	require.Error(t, New(o, nil, &fakeMailer{}).LoadUsers())
}
