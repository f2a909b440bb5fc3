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

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/level"
)

func TestSetLogger(t *testing.T) {
	orig := Logger()
	defer SetLogger(orig)

	buf := &bytes.Buffer{}
	SetLogger(logging.StreamLogger(buf, level.Warn))
	SetLogger(nil) // ignored

	Info("should be filtered", nil)
	Warn("test warning", logging.Pairs{"k": "v"})
	if strings.Contains(buf.String(), "should be filtered") {
		t.Errorf("unexpected info line: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "event=\"test warning\"") {
		t.Errorf("missing warn line: %s", buf.String())
	}
	if Level() != level.Warn {
		t.Errorf("expected %s got %s", level.Warn, Level())
	}

	SetLogLevel(level.Debug)
	Debug("now visible", nil)
	if !strings.Contains(buf.String(), "event=\"now visible\"") {
		t.Errorf("missing debug line: %s", buf.String())
	}

	if !WarnOnce("k1", "once", nil) || WarnOnce("k1", "once", nil) {
		t.Error("expected exactly one WarnOnce")
	}
	if !HasWarnedOnce("k1") {
		t.Error("expected HasWarnedOnce")
	}
}
