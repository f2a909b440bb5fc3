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

package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/myblog/blogserver/pkg/config"
	"github.com/myblog/blogserver/pkg/observability/logging/level"
	"github.com/myblog/blogserver/pkg/observability/logging/options"
)

func TestStreamLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l := StreamLogger(buf, level.Info)
	l.Info("test entry", Pairs{"testKey": "testVal", "err": errors.New("boom")})
	out := buf.String()
	for _, want := range []string{"level=info", `event="test entry"`,
		"testKey=testVal", "err=boom", "app=blogserver", "caller="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	testCases := []struct {
		level   level.Level
		visible []string
		hidden  []string
	}{
		{level.Debug, []string{"d", "i", "w", "e"}, nil},
		{level.Info, []string{"i", "w", "e"}, []string{"d"}},
		{level.Warn, []string{"w", "e"}, []string{"d", "i"}},
		{level.Error, []string{"e"}, []string{"d", "i", "w"}},
	}
	for _, tc := range testCases {
		t.Run(string(tc.level), func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := StreamLogger(buf, tc.level)
			l.Debug("d", nil)
			l.Info("i", nil)
			l.Warn("w", nil)
			l.Error("e", nil)
			out := buf.String()
			for _, v := range tc.visible {
				if !strings.Contains(out, "event="+v) {
					t.Errorf("expected event=%s in %s", v, out)
				}
			}
			for _, v := range tc.hidden {
				if strings.Contains(out, "event="+v) {
					t.Errorf("unexpected event=%s in %s", v, out)
				}
			}
		})
	}
}

func TestUnknownLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := StreamLogger(buf, "trace")
	if l.Level() != level.Info {
		t.Errorf("expected %s got %s", level.Info, l.Level())
	}
	if !l.HasWarnedOnce("loglevel.unknown") {
		t.Error("expected unknown level warning")
	}
}

func TestFatal(t *testing.T) {
	buf := &bytes.Buffer{}
	l := StreamLogger(buf, level.Error)
	l.Fatal(-1, "fatal entry", nil)
	if !strings.Contains(buf.String(), "level=fatal") {
		t.Errorf("expected fatal line in %s", buf.String())
	}
}

func TestLogOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	l := StreamLogger(buf, level.Info)
	key := "warnonce-test-key"
	if l.HasWarnedOnce(key) {
		t.Errorf("expected %t got %t", false, true)
	}
	if ok := l.WarnOnce(key, "test entry", nil); !ok {
		t.Errorf("expected %t got %t", true, ok)
	}
	if ok := l.WarnOnce(key, "test entry", nil); ok {
		t.Errorf("expected %t got %t", false, ok)
	}
	if !l.HasWarnedOnce(key) {
		t.Errorf("expected %t got %t", true, false)
	}
	if n := strings.Count(buf.String(), "test entry"); n != 1 {
		t.Errorf("expected 1 line got %d", n)
	}
	// below the current level, nothing is recorded
	if l.DebugOnce("debug-key", "hidden", nil) {
		t.Error("expected false for filtered level")
	}
}

func TestNewLogger_LogFile(t *testing.T) {
	td := t.TempDir()
	fileName := td + "/out.log"
	instanceFileName := td + "/out.1.log"
	conf := config.NewConfig()
	conf.Main.InstanceID = 1
	conf.Logging = &options.Options{LogFile: fileName, LogLevel: "info"}
	l := New(conf)
	l.Info("test entry", Pairs{"testKey": "testVal"})
	l.Close()
	b, err := os.ReadFile(instanceFileName)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "testKey=testVal") {
		t.Errorf("unexpected log file contents: %s", string(b))
	}
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	l.Error("nothing", nil)
	l.Close()
}
