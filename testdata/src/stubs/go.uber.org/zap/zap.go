//  Copyright (c) 2026 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package zap is a stub of the real `go.uber.org/zap` package, holding only the terminating methods.
package zap

// NewProduction builds a sensible production Logger.
func NewProduction() (*Logger, error) {
	return &Logger{}, nil
}

// Logger is a logger interface that provides structured, leveled logging.
type Logger struct{}

// Field represents a key-value pair for structured logging.
type Field struct{}

// Fatal logs a message at fatal level and then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...Field) {}

// Sugared returns a SugaredLogger wrapping this Logger.
func (l *Logger) Sugared() *SugaredLogger {
	return &SugaredLogger{}
}

// SugaredLogger wraps the base Logger to provide a more ergonomic, but slightly slower,
// API. In particular, any key/value pairs passed as arguments are added to the logged
// context using fmt.Sprint-style interpolation.
type SugaredLogger struct{}

// Fatal uses fmt.Sprint to construct and log a message, then calls os.Exit(1).
func (s *SugaredLogger) Fatal(args ...interface{}) {}

// Fatalf uses fmt.Sprintf to log a templated message, then calls os.Exit(1).
func (s *SugaredLogger) Fatalf(template string, args ...interface{}) {}

// Fatalln uses fmt.Sprintln to construct and log a message, then calls os.Exit(1).
func (s *SugaredLogger) Fatalln(args ...interface{}) {}

// Fatalw logs a message with some additional context, then calls os.Exit(1).
// The variadic key-value pairs are treated as they are in With.
func (s *SugaredLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
