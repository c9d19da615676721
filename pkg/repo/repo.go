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

// Package repo keeps a local working copy of the asset repository in sync
// with its remote.
package repo

import (
	"context"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/walteh/goodimages/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrNotRepository is returned when the working copy path exists but holds
// no git repository.
var ErrNotRepository = errors.Base("path is not a git repository")

// 📦 Source describes the remote and where its working copy lives
type Source struct {
	URL  string // Remote clone URL
	Ref  string // Branch to track
	Path string // Local working copy
}

// 📊 SyncResult reports what Sync did
type SyncResult struct {
	Cloned  bool   // The working copy was created
	Updated bool   // A pull brought in new commits
	Head    string // HEAD commit after the sync
}

// 🔌 Synchronizer brings a working copy up to date with its remote
type Synchronizer interface {
	// Sync clones Source.URL into Source.Path if it is missing, and pulls
	// otherwise
	Sync(ctx context.Context, src Source) (*SyncResult, error)
	// Head returns the commit checked out at path
	Head(ctx context.Context, path string) (string, error)
}

// 🐙 GitSynchronizer implements Synchronizer with go-git
type GitSynchronizer struct {
	auth transport.AuthMethod
}

var _ Synchronizer = (*GitSynchronizer)(nil)

// 🏭 NewGitSynchronizer creates a synchronizer. token, when set, is sent as
// basic auth to https remotes.
func NewGitSynchronizer(token string) *GitSynchronizer {
	s := &GitSynchronizer{}
	if token != "" {
		s.auth = &githttp.BasicAuth{Username: "x-access-token", Password: token}
	}
	return s
}

func (s *GitSynchronizer) authFor(url string) transport.AuthMethod {
	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return s.auth
	}
	return nil
}

// 🔄 Sync clones or pulls, streaming remote progress to the console
func (s *GitSynchronizer) Sync(ctx context.Context, src Source) (*SyncResult, error) {
	logger := log.FromContext(ctx)

	progress := logger.ProgressWriter()
	defer progress.Close()

	ref := plumbing.NewBranchReferenceName(src.Ref)

	_, err := os.Stat(src.Path)
	switch {
	case os.IsNotExist(err):
		logger.Infof("cloning %s into %s", src.URL, src.Path)

		r, err := git.PlainCloneContext(ctx, src.Path, false, &git.CloneOptions{
			URL:           src.URL,
			ReferenceName: ref,
			SingleBranch:  true,
			Progress:      progress,
			Auth:          s.authFor(src.URL),
		})
		if err != nil {
			return nil, errors.Errorf("cloning %s: %w", src.URL, err)
		}

		head, err := headOf(r)
		if err != nil {
			return nil, err
		}
		return &SyncResult{Cloned: true, Head: head}, nil

	case err != nil:
		return nil, errors.Errorf("checking %s: %w", src.Path, err)
	}

	logger.Infof("repository already exists, pulling %s", src.Ref)

	r, err := open(src.Path)
	if err != nil {
		return nil, err
	}

	before, err := headOf(r)
	if err != nil {
		return nil, err
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, errors.Errorf("opening worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    git.DefaultRemoteName,
		ReferenceName: ref,
		SingleBranch:  true,
		Progress:      progress,
		Auth:          s.authFor(src.URL),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, errors.Errorf("pulling %s: %w", src.Ref, err)
	}

	after, err := headOf(r)
	if err != nil {
		return nil, err
	}

	return &SyncResult{Updated: before != after, Head: after}, nil
}

// 🎯 Head returns the commit checked out at path
func (s *GitSynchronizer) Head(ctx context.Context, path string) (string, error) {
	r, err := open(path)
	if err != nil {
		return "", err
	}
	return headOf(r)
}

func open(path string) (*git.Repository, error) {
	r, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, errors.WithDetails(ErrNotRepository, "path", path)
	}
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	return r, nil
}

func headOf(r *git.Repository) (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", errors.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
