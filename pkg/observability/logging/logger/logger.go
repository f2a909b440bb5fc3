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

// Package logger provides a package-level logger for application-wide use,
// and provides the same functions of logging.Logger at the package
// level, except for Close (because this logger should always be open).
// By default, the logger is a Console Logger @ INFO. Use SetLogger() to
// set the Logger object to any logging.Logger.
package logger

import (
	"sync"

	"github.com/myblog/blogserver/pkg/observability/logging"
	"github.com/myblog/blogserver/pkg/observability/logging/level"
)

var (
	logger = logging.ConsoleLogger(level.Info)
	mtx    sync.RWMutex
)

// Logger returns the package-level logger
func Logger() logging.Logger {
	mtx.RLock()
	defer mtx.RUnlock()
	return logger
}

// SetLogger sets the package-level logger object
func SetLogger(l logging.Logger) {
	if l == nil {
		return
	}
	mtx.Lock()
	logger = l
	mtx.Unlock()
}

func SetLogLevel(logLevel level.Level) {
	Logger().SetLogLevel(logLevel)
}

func Level() level.Level {
	return Logger().Level()
}

func Log(logLevel level.Level, event string, detail logging.Pairs) {
	Logger().Log(logLevel, event, detail)
}

func Debug(event string, detail logging.Pairs) {
	Logger().Debug(event, detail)
}

func Info(event string, detail logging.Pairs) {
	Logger().Info(event, detail)
}

func Warn(event string, detail logging.Pairs) {
	Logger().Warn(event, detail)
}

func Error(event string, detail logging.Pairs) {
	Logger().Error(event, detail)
}

func Fatal(code int, event string, detail logging.Pairs) {
	Logger().Fatal(code, event, detail)
}

func WarnOnce(key, event string, detail logging.Pairs) bool {
	return Logger().WarnOnce(key, event, detail)
}

func ErrorOnce(key, event string, detail logging.Pairs) bool {
	return Logger().ErrorOnce(key, event, detail)
}

func HasWarnedOnce(key string) bool {
	return Logger().HasWarnedOnce(key)
}
