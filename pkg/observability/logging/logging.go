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

// Package logging provides structured, leveled logging for the blog server
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/myblog/blogserver/pkg/appinfo"
	"github.com/myblog/blogserver/pkg/config"
	"github.com/myblog/blogserver/pkg/observability/logging/level"

	gkl "github.com/go-kit/log"
	gklevel "github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var _ Logger = &logger{}

type Logger interface {
	SetLogLevel(level.Level)
	Level() level.Level
	Close()
	//
	Log(logLevel level.Level, event string, detail Pairs)
	Debug(event string, detail Pairs)
	Info(event string, detail Pairs)
	Warn(event string, detail Pairs)
	Error(event string, detail Pairs)
	Fatal(code int, event string, detail Pairs)
	//
	LogOnce(logLevel level.Level, key, event string, detail Pairs) bool
	DebugOnce(key, event string, detail Pairs) bool
	InfoOnce(key, event string, detail Pairs) bool
	WarnOnce(key, event string, detail Pairs) bool
	ErrorOnce(key, event string, detail Pairs) bool
	//
	HasLoggedOnce(logLevel level.Level, key string) bool
	HasWarnedOnce(key string) bool
}

// Pairs represents a key=value pair that helps to describe a log event
type Pairs map[string]any

// New returns a Logger for the provided logging configuration. The
// returned Logger will write to files distinguished from other Loggers by the
// instance id.
func New(conf *config.Config) Logger {
	var wr io.Writer
	if conf.Logging == nil || conf.Logging.LogFile == "" {
		wr = os.Stdout
	} else {
		logFile := conf.Logging.LogFile
		if conf.Main != nil && conf.Main.InstanceID > 0 {
			logFile = strings.Replace(logFile, ".log",
				"."+strconv.Itoa(conf.Main.InstanceID)+".log", 1)
		}
		wr = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    256,  // megabytes
			MaxBackups: 80,   // 256 megs @ 80 backups is 20GB of Logs
			MaxAge:     7,    // days
			Compress:   true, // Compress Rolled Backups
		}
	}
	var ll level.Level
	if conf.Logging != nil {
		ll = level.Level(conf.Logging.LogLevel)
	}
	return StreamLogger(wr, ll)
}

// NoopLogger returns a Logger that discards all events
func NoopLogger() Logger {
	return StreamLogger(io.Discard, level.Info)
}

// ConsoleLogger returns a Logger that prints log events to the Console
func ConsoleLogger(logLevel level.Level) Logger {
	return StreamLogger(os.Stdout, logLevel)
}

// StreamLogger returns a Logger that writes logfmt lines to w. If w is an
// io.Closer, it is closed when the Logger is closed.
func StreamLogger(w io.Writer, logLevel level.Level) Logger {
	l := &logger{}
	base := gkl.NewLogfmtLogger(gkl.NewSyncWriter(w))
	l.base = gkl.With(base,
		"time", gkl.DefaultTimestampUTC,
		"app", appinfo.Name,
		"caller", gkl.Valuer(func() any {
			return callerFrame()
		}),
	)
	if c, ok := w.(io.Closer); ok && c != nil && w != os.Stdout && w != os.Stderr {
		l.closer = c
	}
	l.SetLogLevel(logLevel)
	return l
}

type logger struct {
	base     gkl.Logger
	filtered gkl.Logger
	level    level.Level
	levelID  level.ID
	closer   io.Closer
	mtx      sync.RWMutex

	onceRanEntries sync.Map
}

func filterOption(id level.ID) gklevel.Option {
	switch id {
	case level.DebugID:
		return gklevel.AllowDebug()
	case level.WarnID:
		return gklevel.AllowWarn()
	case level.ErrorID:
		return gklevel.AllowError()
	case level.FatalID:
		return gklevel.AllowNone()
	}
	return gklevel.AllowInfo()
}

func (l *logger) SetLogLevel(logLevel level.Level) {
	logLevel = level.Level(strings.ToLower(string(logLevel)))
	id := level.GetID(logLevel)
	unknown := id == 0
	if unknown {
		logLevel = level.Info
		id = level.InfoID
	}
	l.mtx.Lock()
	l.level = logLevel
	l.levelID = id
	l.filtered = gklevel.NewFilter(l.base, filterOption(id))
	l.mtx.Unlock()
	if unknown {
		l.WarnOnce("loglevel.unknown", "unknown log level; using INFO", nil)
	}
}

func (l *logger) Level() level.Level {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.level
}

func (l *logger) current() (gkl.Logger, level.ID) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.filtered, l.levelID
}

func (l *logger) Log(logLevel level.Level, event string, detail Pairs) {
	switch level.GetID(logLevel) {
	case level.DebugID:
		l.Debug(event, detail)
	case level.InfoID:
		l.Info(event, detail)
	case level.WarnID:
		l.Warn(event, detail)
	case level.ErrorID:
		l.Error(event, detail)
	case level.FatalID:
		l.fatal(event, detail)
	}
}

func (l *logger) Debug(event string, detail Pairs) {
	lg, _ := l.current()
	gklevel.Debug(lg).Log(keyvals(event, detail)...)
}

func (l *logger) Info(event string, detail Pairs) {
	lg, _ := l.current()
	gklevel.Info(lg).Log(keyvals(event, detail)...)
}

func (l *logger) Warn(event string, detail Pairs) {
	lg, _ := l.current()
	gklevel.Warn(lg).Log(keyvals(event, detail)...)
}

func (l *logger) Error(event string, detail Pairs) {
	lg, _ := l.current()
	gklevel.Error(lg).Log(keyvals(event, detail)...)
}

func (l *logger) fatal(event string, detail Pairs) {
	gkl.WithPrefix(l.base, gklevel.Key(), string(level.Fatal)).Log(keyvals(event, detail)...)
}

// Fatal logs the event regardless of level and exits with the provided code
func (l *logger) Fatal(code int, event string, detail Pairs) {
	l.fatal(event, detail)
	if code < 0 {
		// tests will send a -1 code to avoid exiting during the test
		return
	}
	if code == 0 {
		code = 1
	}
	l.Close()
	os.Exit(code)
}

func (l *logger) LogOnce(logLevel level.Level, key, event string, detail Pairs) bool {
	lid := level.GetID(logLevel)
	_, current := l.current()
	if lid == 0 || lid < current {
		return false
	}
	_, loaded := l.onceRanEntries.LoadOrStore(string(logLevel)+"."+key, true)
	if loaded {
		return false
	}
	l.Log(logLevel, event, detail)
	return true
}

func (l *logger) DebugOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Debug, key, event, detail)
}

func (l *logger) InfoOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Info, key, event, detail)
}

func (l *logger) WarnOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Warn, key, event, detail)
}

func (l *logger) ErrorOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Error, key, event, detail)
}

func (l *logger) HasLoggedOnce(logLevel level.Level, key string) bool {
	_, ok := l.onceRanEntries.Load(string(logLevel) + "." + key)
	return ok
}

func (l *logger) HasWarnedOnce(key string) bool {
	return l.HasLoggedOnce(level.Warn, key)
}

func (l *logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}

// keyvals flattens the event and its detail into a go-kit keyvals slice.
// Detail keys are sorted so lines are stable across runs.
func keyvals(event string, detail Pairs) []any {
	a := make([]any, 0, (len(detail)*2)+2)
	a = append(a, "event", strings.TrimSpace(event))
	if len(detail) == 0 {
		return a
	}
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := detail[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		a = append(a, k, v)
	}
	return a
}

// callerFrame returns the first frame in the call stack outside of the
// logging packages, trimmed to its path under the module
func callerFrame() string {
	for _, c := range stack.Trace().TrimRuntime() {
		s := fmt.Sprintf("%+v", c)
		if strings.Contains(s, "/observability/logging") ||
			strings.Contains(s, "github.com/go-kit/log") {
			continue
		}
		for _, marker := range []string{"/pkg/", "/cmd/"} {
			if i := strings.Index(s, marker); i >= 0 {
				return s[i+1:]
			}
		}
		return s
	}
	return ""
}
