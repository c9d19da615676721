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

// Package walk lists a directory tree as a lazy sequence, keeping traversal
// separate from whatever the caller does with each entry.
package walk

import (
	"iter"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📄 Entry is one file or directory below the walk root
type Entry struct {
	Path  string // Full path
	Rel   string // Path relative to the walk root, slash separated
	Name  string // Base name
	IsDir bool
}

// 🚶 Walk yields every directory and regular file below root in pre-order.
// A directory is yielded before its contents. Symlinks and special files are
// skipped. A read error is yielded once and ends the sequence.
func Walk(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		walkDir(root, "", yield)
	}
}

// walkDir returns false once the consumer stops or an error was yielded.
func walkDir(dir, rel string, yield func(Entry, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		yield(Entry{Path: dir, Rel: rel, IsDir: true}, errors.Errorf("reading directory %s: %w", dir, err))
		return false
	}

	for _, de := range entries {
		typ := de.Type()
		if !typ.IsDir() && !typ.IsRegular() {
			continue
		}

		entry := Entry{
			Path:  filepath.Join(dir, de.Name()),
			Rel:   joinRel(rel, de.Name()),
			Name:  de.Name(),
			IsDir: typ.IsDir(),
		}
		if !yield(entry, nil) {
			return false
		}
		if entry.IsDir {
			if !walkDir(entry.Path, entry.Rel, yield) {
				return false
			}
		}
	}
	return true
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// 📂 Dirs yields the immediate subdirectories of dir
func Dirs(dir string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			yield(Entry{Path: dir, IsDir: true}, errors.Errorf("reading directory %s: %w", dir, err))
			return
		}
		for _, de := range entries {
			if !de.IsDir() {
				continue
			}
			if !yield(Entry{Path: filepath.Join(dir, de.Name()), Rel: de.Name(), Name: de.Name(), IsDir: true}, nil) {
				return
			}
		}
	}
}
