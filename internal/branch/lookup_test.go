package branch

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0ders/release-config/internal/gittest"
)

func TestLookup_LocalBranch(t *testing.T) {
	repository, err := gittest.NewRepository()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repository.Remove()
	})

	require.NoError(t, repository.CheckoutBranch("main"))

	ref, found, err := Lookup(repository.Repository, Branch{Name: "main"}, "")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), ref.Name())

	head, err := repository.Head()
	require.NoError(t, err)
	assert.Equal(t, head.Hash(), ref.Hash())
}

func TestLookup_MissingBranch(t *testing.T) {
	repository, err := gittest.NewRepository()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repository.Remove()
	})

	ref, found, err := Lookup(repository.Repository, Branch{Name: "release", Prerelease: true}, "origin")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, ref)
}

func TestLookup_RemoteTrackingBranch(t *testing.T) {
	repository, err := gittest.NewRepository()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repository.Remove()
	})

	head, err := repository.Head()
	require.NoError(t, err)

	remoteRef := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "release"), head.Hash())
	require.NoError(t, repository.Storer.SetReference(remoteRef))

	ref, found, err := Lookup(repository.Repository, Branch{Name: "release", Prerelease: true}, "origin")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, remoteRef.Name(), ref.Name())

	_, found, err = Lookup(repository.Repository, Branch{Name: "release", Prerelease: true}, "")
	require.NoError(t, err)
	assert.False(t, found, "remote-tracking references are ignored without a remote name")
}
