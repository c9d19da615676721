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
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/walteh/goodimages/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 📝 Rule maps an exact upstream file name to its canonical name
type Rule struct {
	From string
	To   string
}

// 🔍 PatternRule renames any file whose whole name matches Pattern. To is
// expanded with the pattern's submatches, e.g. "passive-${1}.png".
type PatternRule struct {
	Pattern *regexp.Regexp
	To      string
}

// Target returns the canonical name for name, or false if it does not match.
func (r PatternRule) Target(name string) (string, bool) {
	m := r.Pattern.FindStringSubmatchIndex(name)
	if m == nil {
		return "", false
	}
	return string(r.Pattern.ExpandString(nil, r.To, name, m)), true
}

// CharacterRules lists the exact renames applied inside one character
// directory.
func CharacterRules(character string) []Rule {
	return []Rule{
		// branding
		{From: "Character_" + character + "_Card.png", To: "card.png"},
		{From: "Banner.png", To: "namecard-banner.png"},
		{From: "Bar.png", To: "namecard-bar.png"},
		{From: "Icon.png", To: "icon-front.png"},
		{From: "IconSide.png", To: "icon-side.png"},

		// talents
		{From: "skill.png", To: "talent-skill.png"},
		{From: "burst.png", To: "talent-burst.png"},
		{From: "sprint.png", To: "talent-sprint.png"},
	}
}

// CharacterPatterns renames the numbered passive and constellation images.
var CharacterPatterns = []PatternRule{
	{Pattern: regexp.MustCompile(`(?i)^passive(\d)\.png$`), To: "passive-${1}.png"},
	{Pattern: regexp.MustCompile(`(?i)^constellation(\d)\.png$`), To: "constellation-${1}.png"},
}

// 🧑 Characters normalizes <root>/<character>/ directories in place
type Characters struct{}

// Normalize applies CharacterRules and then CharacterPatterns to every
// character directory. A missing root is a no-op.
func (c *Characters) Normalize(ctx context.Context, root string) (*Result, error) {
	result := &Result{}

	exists, err := pathExists(root)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", root, err)
	}
	if !exists {
		return result, nil
	}

	for item, err := range walk.Dirs(root) {
		if err != nil {
			return result, errors.Errorf("listing characters: %w", err)
		}

		for _, rule := range CharacterRules(item.Name) {
			outcome, err := RenameIfExists(ctx, filepath.Join(item.Path, rule.From), filepath.Join(item.Path, rule.To))
			if err != nil {
				return result, errors.Errorf("normalizing %s: %w", item.Name, err)
			}
			result.Add(outcome)
		}

		// Listed after the exact renames so their results never match.
		entries, err := os.ReadDir(item.Path)
		if err != nil {
			return result, errors.Errorf("listing %s: %w", item.Path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			for _, rule := range CharacterPatterns {
				target, ok := rule.Target(entry.Name())
				if !ok {
					continue
				}
				outcome, err := RenameIfExists(ctx, filepath.Join(item.Path, entry.Name()), filepath.Join(item.Path, target))
				if err != nil {
					return result, errors.Errorf("normalizing %s: %w", item.Name, err)
				}
				result.Add(outcome)
				break
			}
		}
	}

	return result, nil
}
