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

package smtp

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/myblog/blogserver/pkg/mail"
	"github.com/myblog/blogserver/pkg/mail/options"

	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal SMTP server that accepts one message
type fakeServer struct {
	l        net.Listener
	withAuth bool

	mtx      sync.Mutex
	commands []string
	data     string
}

func newFakeServer(t *testing.T, withAuth bool) *fakeServer {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	fs := &fakeServer{l: l, withAuth: withAuth}
	go fs.serve()
	t.Cleanup(func() { l.Close() })
	return fs
}

func (fs *fakeServer) port() int {
	return fs.l.Addr().(*net.TCPAddr).Port
}

func (fs *fakeServer) serve() {
	conn, err := fs.l.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(s string) { conn.Write([]byte(s + "\r\n")) }
	reply("220 fake ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		fs.mtx.Lock()
		fs.commands = append(fs.commands, line)
		fs.mtx.Unlock()
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO":
			if fs.withAuth {
				reply("250-fake")
				reply("250 AUTH PLAIN")
			} else {
				reply("250 fake")
			}
		case "AUTH":
			reply("235 ok")
		case "MAIL", "RCPT":
			reply("250 ok")
		case "DATA":
			reply("354 go ahead")
			var b strings.Builder
			for {
				dl, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if dl == ".\r\n" {
					break
				}
				b.WriteString(dl)
			}
			fs.mtx.Lock()
			fs.data = b.String()
			fs.mtx.Unlock()
			reply("250 queued")
		case "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 unknown")
		}
	}
}

func (fs *fakeServer) snapshot() ([]string, string) {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	return append([]string(nil), fs.commands...), fs.data
}

func testOptions(port int) *options.Options {
	o := options.New()
	o.Provider = "smtp"
	o.Host = "127.0.0.1"
	o.Port = port
	o.From = "noreply@example.com"
	o.TimeoutMS = 5000
	return o
}

func testMessage() *mail.Message {
	link := mail.VerificationLink("http://localhost:8080", "tok", "bob")
	return &mail.Message{
		From:    "noreply@example.com",
		To:      "bob@example.com",
		Subject: "Verify your email address",
		HTML:    mail.VerificationBody("bob", link),
		Link:    link,
	}
}

func waitForData(t *testing.T, fs *fakeServer) ([]string, string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		cmds, data := fs.snapshot()
		if len(cmds) > 0 && cmds[len(cmds)-1] == "QUIT" {
			return cmds, data
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for the fake smtp server")
	return nil, ""
}

func TestSend(t *testing.T) {
	fs := newFakeServer(t, false)
	o := testOptions(fs.port())
	require.NoError(t, o.Validate())

	require.NoError(t, New(o).Send(context.Background(), testMessage()))
	cmds, data := waitForData(t, fs)
	require.Contains(t, cmds, "MAIL FROM:<noreply@example.com>")
	require.Contains(t, cmds, "RCPT TO:<bob@example.com>")
	for _, c := range cmds {
		require.False(t, strings.HasPrefix(c, "AUTH"))
	}
	require.Contains(t, data, "Subject: Verify your email address\r\n")
	require.Contains(t, data, "Content-Type: text/html; charset=utf-8\r\n")
	require.Contains(t, data, "<h2>Welcome to My Blog!</h2>")
}

func TestSendWithAuth(t *testing.T) {
	fs := newFakeServer(t, true)
	o := testOptions(fs.port())
	o.Username = "mailer"
	o.Password = "secret"
	require.NoError(t, o.Validate())

	require.NoError(t, New(o).Send(context.Background(), testMessage()))
	cmds, _ := waitForData(t, fs)
	var sawAuth bool
	for _, c := range cmds {
		if strings.HasPrefix(c, "AUTH PLAIN ") {
			sawAuth = true
		}
	}
	require.True(t, sawAuth)
}

func TestSendConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	o := testOptions(port)
	require.NoError(t, o.Validate())
	require.Error(t, New(o).Send(context.Background(), testMessage()))
}

func TestCompose(t *testing.T) {
	b := string(compose(testMessage(), time.Unix(0, 0).UTC()))
	require.True(t, strings.HasPrefix(b, "From: noreply@example.com\r\nTo: bob@example.com\r\n"))
	require.Contains(t, b, "Date: "+time.Unix(0, 0).UTC().Format(time.RFC1123Z)+"\r\n")
	require.NotContains(t, strings.ReplaceAll(b, "\r\n", ""), "\n")
	require.Equal(t, 1, strings.Count(b, "\r\n\r\n"))
}
