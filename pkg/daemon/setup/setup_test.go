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
package setup

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/myblog/blogserver/pkg/config"
	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/level"
	"github.com/myblog/blogserver/pkg/observability/logging/logger"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	conf := config.NewConfig()
	conf.Frontend.ListenAddress = "127.0.0.1"
	conf.Frontend.ListenPort = 0
	conf.Frontend.DrainTimeoutMS = 1000
	conf.Logging.LogLevel = "error"
	conf.Auth.Users = map[string]string{"alice": "secret"}
	conf.Auth.BcryptCost = 4
	require.NoError(t, conf.Validate())
	return conf
}

func exchange(t *testing.T, addr, raw string) string {
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	_, err = io.WriteString(conn, raw)
	require.NoError(t, err)
	b, err := io.ReadAll(bufio.NewReader(conn))
	require.NoError(t, err)
	return string(b)
}

func TestApplyConfig(t *testing.T) {
	defer logger.SetLogger(logging.ConsoleLogger(level.Info))

	si, err := ApplyConfig(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, si.Server)
	require.NotNil(t, si.Listener)
	require.Equal(t, 1, si.Auth.Store().Users())

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- si.Run(ctx) }()

	addr := si.Listener.Addr().String()

	resp := exchange(t, addr, "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	require.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"), resp)
	require.Contains(t, resp, "login-form")

	body := "username=alice&password=secret"
	resp = exchange(t, addr, "POST /login HTTP/1.1\r\nContent-Type: "+
		"application/x-www-form-urlencoded\r\nContent-Length: 30\r\n\r\n"+body)
	require.Contains(t, resp, `"success": true`)

	resp = exchange(t, addr, "GET /favicon.ico HTTP/1.1\r\n\r\n")
	require.True(t, strings.HasPrefix(resp, "HTTP/1.1 404 Not Found\r\n"), resp)

	cancel()
	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApplyConfigErrors(t *testing.T) {
	defer logger.SetLogger(logging.ConsoleLogger(level.Info))

	_, err := ApplyConfig(nil)
	require.Error(t, err)

	conf := testConfig(t)
	conf.Mail.Provider = "carrier-pigeon"
	_, err = ApplyConfig(conf)
	require.ErrorContains(t, err, "mail registration failed")

	conf = testConfig(t)
	conf.Tracing.Provider = "smoke-signal"
	_, err = ApplyConfig(conf)
	require.ErrorContains(t, err, "tracing registration failed")

	conf = testConfig(t)
	conf.Auth.UsersFile = "/nonexistent/users.csv"
	_, err = ApplyConfig(conf)
	require.ErrorContains(t, err, "user loading failed")
}

func TestLoadAndValidate(t *testing.T) {
	conf, flags, err := LoadAndValidate([]string{"-version"})
	require.NoError(t, err)
	require.Nil(t, conf)
	require.True(t, flags.PrintVersion)

	_, _, err = LoadAndValidate([]string{"-config", "/nonexistent/blogserver.yaml"})
	require.Error(t, err)
}
