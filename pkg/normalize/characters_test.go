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

package normalize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacters(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  map[string]string
	}{
		{
			name:  "hardcoded_icon",
			files: []string{"Bennett/Icon.png"},
			want: map[string]string{
				"Bennett/icon-front.png": "Bennett/Icon.png",
			},
		},
		{
			name: "all_exact_rules",
			files: []string{
				"Bennett/Character_Bennett_Card.png",
				"Bennett/Banner.png",
				"Bennett/Bar.png",
				"Bennett/Icon.png",
				"Bennett/IconSide.png",
				"Bennett/skill.png",
				"Bennett/burst.png",
				"Bennett/sprint.png",
			},
			want: map[string]string{
				"Bennett/card.png":            "Bennett/Character_Bennett_Card.png",
				"Bennett/namecard-banner.png": "Bennett/Banner.png",
				"Bennett/namecard-bar.png":    "Bennett/Bar.png",
				"Bennett/icon-front.png":      "Bennett/Icon.png",
				"Bennett/icon-side.png":       "Bennett/IconSide.png",
				"Bennett/talent-skill.png":    "Bennett/skill.png",
				"Bennett/talent-burst.png":    "Bennett/burst.png",
				"Bennett/talent-sprint.png":   "Bennett/sprint.png",
			},
		},
		{
			name:  "card_uses_directory_name",
			files: []string{"Xiangling/Character_Bennett_Card.png", "Xiangling/Character_Xiangling_Card.png"},
			want: map[string]string{
				"Xiangling/Character_Bennett_Card.png": "Xiangling/Character_Bennett_Card.png",
				"Xiangling/card.png":                   "Xiangling/Character_Xiangling_Card.png",
			},
		},
		{
			name: "numbered_patterns_any_case",
			files: []string{
				"Bennett/passive2.png",
				"Bennett/Passive3.PNG",
				"Bennett/constellation3.PNG",
				"Bennett/CONSTELLATION1.png",
			},
			want: map[string]string{
				"Bennett/passive-2.png":       "Bennett/passive2.png",
				"Bennett/passive-3.png":       "Bennett/Passive3.PNG",
				"Bennett/constellation-3.png": "Bennett/constellation3.PNG",
				"Bennett/constellation-1.png": "Bennett/CONSTELLATION1.png",
			},
		},
		{
			name: "patterns_are_anchored",
			files: []string{
				"Bennett/passive12.png",
				"Bennett/mypassive1.png",
				"Bennett/constellation1.png.bak",
			},
			want: map[string]string{
				"Bennett/passive12.png":          "Bennett/passive12.png",
				"Bennett/mypassive1.png":         "Bennett/mypassive1.png",
				"Bennett/constellation1.png.bak": "Bennett/constellation1.png.bak",
			},
		},
		{
			name:  "existing_canonical_name_wins",
			files: []string{"Bennett/Icon.png", "Bennett/icon-front.png", "Bennett/passive1.png", "Bennett/passive-1.png"},
			want: map[string]string{
				"Bennett/Icon.png":       "Bennett/Icon.png",
				"Bennett/icon-front.png": "Bennett/icon-front.png",
				"Bennett/passive1.png":   "Bennett/passive1.png",
				"Bennett/passive-1.png":  "Bennett/passive-1.png",
			},
		},
		{
			name:  "unknown_files_untouched",
			files: []string{"Bennett/splash.png", "Xiangling/Icon.png"},
			want: map[string]string{
				"Bennett/splash.png":       "Bennett/splash.png",
				"Xiangling/icon-front.png": "Xiangling/Icon.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			root := filepath.Join(t.TempDir(), "characters")
			writeFiles(t, root, tt.files...)

			_, err := (&Characters{}).Normalize(ctx, root)
			require.NoError(t, err, "normalize should succeed")
			assert.Equal(t, tt.want, listTree(t, root), "tree should match")
		})
	}
}

func TestCharactersResult(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	writeFiles(t, root, "Bennett/Icon.png", "Bennett/passive1.png")

	result, err := (&Characters{}).Normalize(ctx, root)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Renamed, "icon and passive should be renamed")
	assert.Equal(t, len(CharacterRules("Bennett"))-1, result.MissingSource, "every other exact rule should miss")
	assert.Zero(t, result.TargetExisting)
}

func TestCharactersIdempotent(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	writeFiles(t, root,
		"Bennett/Icon.png",
		"Bennett/Banner.png",
		"Bennett/passive1.png",
		"Bennett/constellation6.png",
		"Bennett/other.png",
	)

	_, err := (&Characters{}).Normalize(ctx, root)
	require.NoError(t, err)
	first := listTree(t, root)

	result, err := (&Characters{}).Normalize(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, first, listTree(t, root), "second run should not change the tree")
	assert.Zero(t, result.Renamed, "second run should rename nothing")
}

func TestCharactersMissingRoot(t *testing.T) {
	ctx := testContext(t)

	result, err := (&Characters{}).Normalize(ctx, filepath.Join(t.TempDir(), "characters"))
	require.NoError(t, err, "missing root should be a no-op")
	assert.Zero(t, result.Attempts())
}

func TestPatternRuleTarget(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "passive", input: "passive2.png", want: "passive-2.png", wantOK: true},
		{name: "passive_mixed_case", input: "PaSsIvE2.Png", want: "passive-2.png", wantOK: true},
		{name: "constellation", input: "constellation3.PNG", want: "constellation-3.png", wantOK: true},
		{name: "already_canonical", input: "passive-2.png", wantOK: false},
		{name: "two_digits", input: "constellation10.png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var ok bool
			for _, rule := range CharacterPatterns {
				if got, ok = rule.Target(tt.input); ok {
					break
				}
			}
			assert.Equal(t, tt.wantOK, ok, "match should be %v", tt.wantOK)
			assert.Equal(t, tt.want, got, "target should match")
		})
	}
}
