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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct {
	// Environ overrides os.Environ for the env object, used by tests
	Environ func() []string
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. Expressions can read the process
// environment through the env object, e.g. output_root = "${env.HOME}/good".
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": p.envObject(),
		},
	}

	type hclConfig struct {
		Repository *struct {
			URL string `hcl:"url,optional"`
			Ref string `hcl:"ref,optional"`
		} `hcl:"repository,block"`
		CacheDir   string   `hcl:"cache_dir,optional"`
		OutputRoot string   `hcl:"output_root,optional"`
		DataPath   string   `hcl:"data_path,optional"`
		Categories []string `hcl:"categories,optional"`
		ImageGlob  string   `hcl:"image_glob,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	if hclCfg.Repository != nil {
		if hclCfg.Repository.URL != "" {
			cfg.Repository.URL = hclCfg.Repository.URL
		}
		if hclCfg.Repository.Ref != "" {
			cfg.Repository.Ref = hclCfg.Repository.Ref
		}
	}
	if hclCfg.CacheDir != "" {
		cfg.CacheDir = hclCfg.CacheDir
	}
	if hclCfg.OutputRoot != "" {
		cfg.OutputRoot = hclCfg.OutputRoot
	}
	if hclCfg.DataPath != "" {
		cfg.DataPath = hclCfg.DataPath
	}
	if hclCfg.Categories != nil {
		cfg.Categories = hclCfg.Categories
	}
	if hclCfg.ImageGlob != "" {
		cfg.ImageGlob = hclCfg.ImageGlob
	}

	return cfg, nil
}

// 🌍 envObject exposes the environment as a cty object
func (p *HCLParser) envObject() cty.Value {
	environ := os.Environ
	if p.Environ != nil {
		environ = p.Environ
	}

	vals := map[string]cty.Value{}
	for _, kv := range environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}
