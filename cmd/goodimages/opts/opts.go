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

package opts

import (
	"github.com/walteh/goodimages/pkg/config"
	"github.com/walteh/goodimages/pkg/remote/github"
	"github.com/walteh/goodimages/pkg/repo"
)

// RootOpts holds the state shared by every command. It is filled in before
// any command runs.
type RootOpts struct {
	Config *config.Config
	Token  string
}

// Synchronizer returns the git synchronizer for the configured repository.
func (o *RootOpts) Synchronizer() *repo.GitSynchronizer {
	return repo.NewGitSynchronizer(o.Token)
}

// GitHub returns an API client, authenticated when a token is set.
func (o *RootOpts) GitHub() *github.Client {
	return github.NewClient(nil, o.Token)
}

// Source describes the configured repository and its working copy.
func (o *RootOpts) Source() repo.Source {
	return repo.Source{
		URL:  o.Config.Repository.URL,
		Ref:  o.Config.Repository.Ref,
		Path: o.Config.CacheDir,
	}
}
