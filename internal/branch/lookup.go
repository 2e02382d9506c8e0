package branch

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Lookup resolves a branch in the given repository. The local head is tried first, then the remote-tracking
// reference of remoteName when it is not empty. The returned boolean is false when neither exists.
func Lookup(repository *git.Repository, b Branch, remoteName string) (*plumbing.Reference, bool, error) {
	candidates := []plumbing.ReferenceName{plumbing.NewBranchReferenceName(b.Name)}

	if remoteName != "" {
		candidates = append(candidates, plumbing.NewRemoteReferenceName(remoteName, b.Name))
	}

	for _, name := range candidates {
		ref, err := repository.Reference(name, true)
		switch {
		case errors.Is(err, plumbing.ErrReferenceNotFound):
			continue
		case err != nil:
			return nil, false, fmt.Errorf("resolving reference %q: %w", name, err)
		default:
			return ref, true, nil
		}
	}

	return nil, false, nil
}
