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
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// 📡 ProgressWriter returns a writer that turns a remote's progress stream
// into console lines. Git servers redraw counters with '\r', so both '\r'
// and '\n' end a line. Call Close to flush a trailing partial line.
func (l *Logger) ProgressWriter() io.WriteCloser {
	return &progressWriter{logger: l}
}

type progressWriter struct {
	logger *Logger
	buf    []byte
}

func (w *progressWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\r' || b == '\n' {
			w.flush()
			continue
		}
		w.buf = append(w.buf, b)
	}
	return len(p), nil
}

func (w *progressWriter) Close() error {
	w.flush()
	return nil
}

func (w *progressWriter) flush() {
	line := strings.TrimSpace(string(w.buf))
	w.buf = w.buf[:0]
	if line == "" {
		return
	}

	l := w.logger
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%*s%s\n", fileIndent, "", color.New(color.Faint).Sprint(line))
	l.zlog.Debug().Str("line", line).Msg("remote progress")
}
