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

package commands

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/walteh/goodimages/pkg/operation"
	"github.com/walteh/goodimages/pkg/remote/github"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// renderSummary lists one row per category plus a total row. Categories
// without rename rules show "-" in the rename columns.
func renderSummary(report *operation.Report) string {
	headers := []string{"Category", "Files", "Size", "Renamed", "Missing", "Kept", "Output"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(report.Categories)+1)
	for _, c := range report.Categories {
		renamed, missing, kept := "-", "-", "-"
		if c.Normalized {
			renamed = humanize.Comma(int64(c.Renamed))
			missing = humanize.Comma(int64(c.MissingSource))
			kept = humanize.Comma(int64(c.TargetExisting))
		}
		rows = append(rows, []string{
			c.Name,
			humanize.Comma(int64(c.Files)),
			humanize.Bytes(uint64(c.Bytes)),
			renamed,
			missing,
			kept,
			c.Output,
		})
	}

	files, bytes, renamed := report.Totals()
	rows = append(rows, []string{
		"total",
		humanize.Comma(int64(files)),
		humanize.Bytes(uint64(bytes)),
		humanize.Comma(int64(renamed)),
		"",
		"",
		shortHash(report.Head),
	})

	return renderTable(headers, rows, aligns)
}

func renderStatus(status *github.Status) string {
	local := shortHash(status.Local)
	if local == "" {
		local = "-"
	}
	return renderTable(
		[]string{"Repository", "Branch", "Local", "Remote", "State"},
		[][]string{{status.Repository, status.Branch, local, shortHash(status.Remote), string(status.State)}},
		nil,
	)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
