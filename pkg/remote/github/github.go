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

// Package github looks up the remote side of the asset repository through
// the GitHub API.
package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BranchClient defines the GitHub API operations we need
type BranchClient interface {
	GetBranch(ctx context.Context, owner, repo, branch string, maxRedirects int) (*github.Branch, *github.Response, error)
}

// 🐙 Client resolves branch heads on GitHub
type Client struct {
	branches BranchClient
}

// 🏭 NewClient creates a client. token, when set, authenticates requests.
func NewClient(httpClient *http.Client, token string) *Client {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{branches: client.Repositories}
}

// NewClientWithBaseURL creates a client talking to a GitHub-compatible API
// at baseURL instead of api.github.com.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, errors.Errorf("parsing base url: %w", err)
	}
	client := github.NewClient(httpClient)
	client.BaseURL = u
	return &Client{branches: client.Repositories}, nil
}

// NewClientFrom wraps an existing BranchClient.
func NewClientFrom(branches BranchClient) *Client {
	return &Client{branches: branches}
}

// 🎯 BranchHead returns the commit at the tip of branch
func (c *Client) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("owner", owner).Str("repo", repo).Str("branch", branch).Msg("getting branch head")

	b, _, err := c.branches.GetBranch(ctx, owner, repo, branch, 1)
	if err != nil {
		return "", errors.Errorf("getting branch %s of %s/%s: %w", branch, owner, repo, err)
	}

	sha := b.GetCommit().GetSHA()
	if sha == "" {
		return "", errors.Errorf("branch %s of %s/%s has no commit", branch, owner, repo)
	}
	return sha, nil
}

// 🔍 ParseRepository extracts owner and name from a GitHub clone URL. Both
// https and scp-style ssh URLs are accepted.
func ParseRepository(raw string) (owner, name string, err error) {
	var p string
	switch {
	case strings.HasPrefix(raw, "git@github.com:"):
		p = strings.TrimPrefix(raw, "git@github.com:")
	default:
		u, perr := url.Parse(raw)
		if perr != nil {
			return "", "", errors.Errorf("parsing repository url: %w", perr)
		}
		if u.Hostname() != "github.com" {
			return "", "", errors.Errorf("not a github repository: %s", raw)
		}
		p = strings.TrimPrefix(u.Path, "/")
	}

	p = strings.TrimSuffix(strings.TrimSuffix(p, "/"), ".git")
	parts := strings.Split(p, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid repository path: %s", raw)
	}
	return parts[0], parts[1], nil
}
