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

// Package normalize renames exported assets to canonical file names, one
// rule set per category.
package normalize

import (
	"context"
	"strings"
)

// 🔌 Normalizer rewrites the file names below one category's output root
type Normalizer interface {
	Normalize(ctx context.Context, root string) (*Result, error)
}

// Staged is implemented by normalizers that build their result in a
// scratch directory next to the root.
type Staged interface {
	StagingDir(root string) string
}

// 📊 Result counts the outcomes of every rename attempt
type Result struct {
	Renamed        int
	MissingSource  int
	TargetExisting int
}

// Add records one outcome.
func (r *Result) Add(o Outcome) {
	switch o {
	case Renamed:
		r.Renamed++
	case SkippedMissingSource:
		r.MissingSource++
	case SkippedTargetExists:
		r.TargetExisting++
	}
}

// Attempts is the number of rename calls made.
func (r *Result) Attempts() int {
	return r.Renamed + r.MissingSource + r.TargetExisting
}

var registry = map[string]Normalizer{
	"characters": &Characters{},
	"weapons":    &Weapons{},
}

// 🎯 ForCategory returns the normalizer for a category, matched
// case-insensitively. Categories without rules return false and are exported
// with upstream names.
func ForCategory(category string) (Normalizer, bool) {
	n, ok := registry[strings.ToLower(category)]
	return n, ok
}
