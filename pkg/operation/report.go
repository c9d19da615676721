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

package operation

// 📊 CategoryReport describes what happened to one category
type CategoryReport struct {
	Name           string
	Output         string
	Files          int
	Bytes          int64
	Normalized     bool
	Renamed        int
	MissingSource  int
	TargetExisting int
}

// 📋 Report summarizes one pipeline run
type Report struct {
	RunID      string
	Head       string
	Cloned     bool
	Updated    bool
	Categories []*CategoryReport
}

func (r *Report) category(name, output string) *CategoryReport {
	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}
	c := &CategoryReport{Name: name, Output: output}
	r.Categories = append(r.Categories, c)
	return c
}

// Totals sums files, bytes and renames across categories.
func (r *Report) Totals() (files int, bytes int64, renamed int) {
	for _, c := range r.Categories {
		files += c.Files
		bytes += c.Bytes
		renamed += c.Renamed
	}
	return files, bytes, renamed
}
