// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4 // spaces to indent file entries
	kindWidth  = 8 // width for the operation kind
)

// 🏷️ Kind is the kind of filesystem change being reported
type Kind string

const (
	KindCopy   Kind = "copy"
	KindRename Kind = "rename"
	KindDelete Kind = "delete"
	KindSkip   Kind = "skip"
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Kind   Kind   // What happened
	Path   string // Source path
	Target string // Destination path, empty for deletes
	Status string // Optional detail, e.g. the reason for a skip
}

// 🎯 Logger writes human-readable progress to the console and mirrors every
// line to a structured zerolog logger
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      *sync.Mutex
	counts  map[Kind]int
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      &sync.Mutex{},
		counts:  map[Kind]int{},
	}
}

// With returns a logger whose structured output carries key=value. The
// console and counters are shared with l.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{
		zlog:    l.zlog.With().Str(key, value).Logger(),
		console: l.console,
		mu:      l.mu,
		counts:  l.counts,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context. The zerolog logger is attached
// as well so zerolog.Ctx(ctx) keeps working downstream.
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// Zerolog returns the structured logger backing l.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Kind {
	case KindCopy:
		symbol = '✓'
		symbolColor = color.FgGreen
	case KindRename:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case KindDelete:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		op.Path)

	if op.Target != "" {
		line += " -> " + op.Target
	}
	if op.Status != "" {
		line += " " + color.New(color.Faint).Sprintf("(%s)", op.Status)
	}
	return line
}

// 📝 LogFileOperation logs a file operation. Skips only reach the
// structured log; the console stays quiet about expected absences.
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[op.Kind]++

	if op.Kind != KindSkip {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Debug().
		Str("kind", string(op.Kind)).
		Str("path", op.Path).
		Str("target", op.Target).
		Str("status", op.Status).
		Msg("file operation")
}

// 📊 Count returns how many operations of the given kind were logged
func (l *Logger) Count(kind Kind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[kind]
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("goodimages")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
