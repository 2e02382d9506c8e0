// Package remote provides basic functions to work with Git remotes.
package remote

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

type Remote struct {
	name string
	auth transport.AuthMethod
}

// New returns a Remote named name. An empty token means anonymous access.
func New(name string, token string) *Remote {
	r := &Remote{name: name}

	if token != "" {
		r.auth = &http.BasicAuth{
			Username: "release-config",
			Password: token,
		}
	}

	return r
}

// Name returns the remote name used for cloning and for remote-tracking references.
func (r *Remote) Name() string {
	return r.name
}

// Clone clones a given remote repository to a temporary directory. The returned path must be removed by the caller.
func (r *Remote) Clone(url string) (*git.Repository, string, error) {
	tempDir, err := os.MkdirTemp("", "release-config-*")
	if err != nil {
		return nil, "", fmt.Errorf("creating temporary directory: %w", err)
	}

	repository, err := git.PlainClone(tempDir, false, &git.CloneOptions{
		RemoteName: r.name,
		Auth:       r.auth,
		URL:        url,
		Progress:   io.Discard,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, "", fmt.Errorf("cloning repository: %w", err)
	}

	return repository, tempDir, nil
}
