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

package github

import (
	"context"
	"os"

	"github.com/walteh/goodimages/pkg/repo"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🚦 State summarizes how the working copy compares to the remote
type State string

const (
	StateUpToDate State = "up to date"
	StateBehind   State = "behind"
	StateMissing  State = "no working copy"
)

// 📊 Status is the outcome of CheckStatus
type Status struct {
	Repository string
	Branch     string
	Local      string
	Remote     string
	State      State
}

// LocalHead resolves the commit checked out in a working copy.
type LocalHead interface {
	Head(ctx context.Context, path string) (string, error)
}

// 🔍 CheckStatus compares the working copy's HEAD with the remote branch
// head. The two lookups run concurrently.
func CheckStatus(ctx context.Context, local LocalHead, remote *Client, src repo.Source) (*Status, error) {
	owner, name, err := ParseRepository(src.URL)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Repository: owner + "/" + name,
		Branch:     src.Ref,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if _, err := os.Stat(src.Path); os.IsNotExist(err) {
			return nil
		}
		head, err := local.Head(gctx, src.Path)
		if err != nil {
			return errors.Errorf("reading local head: %w", err)
		}
		status.Local = head
		return nil
	})

	g.Go(func() error {
		head, err := remote.BranchHead(gctx, owner, name, src.Ref)
		if err != nil {
			return errors.Errorf("reading remote head: %w", err)
		}
		status.Remote = head
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch {
	case status.Local == "":
		status.State = StateMissing
	case status.Local == status.Remote:
		status.State = StateUpToDate
	default:
		status.State = StateBehind
	}

	return status, nil
}
