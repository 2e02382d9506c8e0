// Package gittest provides basic types and functions for testing operations related to Git repositories.
package gittest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const sampleFile = "sample.txt"

var referenceTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type TestRepository struct {
	*git.Repository
	Path    string
	Counter int
}

// NewRepository creates a new TestRepository holding a single commit on its default branch.
func NewRepository() (testRepository *TestRepository, err error) {
	testRepository = &TestRepository{}

	path, err := os.MkdirTemp("", "gittest-*")
	if err != nil {
		return testRepository, fmt.Errorf("creating temporary directory: %w", err)
	}

	testRepository.Path = path

	repository, err := git.PlainInit(path, false)
	if err != nil {
		return testRepository, fmt.Errorf("initializing repository: %w", err)
	}

	testRepository.Repository = repository

	if _, err = testRepository.AddCommit("chore: first commit"); err != nil {
		return testRepository, fmt.Errorf("creating first commit: %w", err)
	}

	return testRepository, nil
}

// AddCommit writes the sample file and commits it with the given message.
func (r *TestRepository) AddCommit(message string) (plumbing.Hash, error) {
	var commitHash plumbing.Hash

	worktree, err := r.Worktree()
	if err != nil {
		return commitHash, fmt.Errorf("fetching worktree: %w", err)
	}

	r.Counter++

	err = os.WriteFile(filepath.Join(r.Path, sampleFile), []byte(fmt.Sprintf("revision %d", r.Counter)), 0o644)
	if err != nil {
		return commitHash, fmt.Errorf("writing commit file: %w", err)
	}

	_, err = worktree.Add(sampleFile)
	if err != nil {
		return commitHash, fmt.Errorf("adding commit file to worktree: %w", err)
	}

	signature := &object.Signature{
		Name:  "Release Config",
		Email: "release-config@release.ci",
		When:  r.When(),
	}

	commitHash, err = worktree.Commit(message, &git.CommitOptions{Author: signature, Committer: signature})
	if err != nil {
		return commitHash, fmt.Errorf("creating commit: %w", err)
	}

	return commitHash, nil
}

// Remove removes the underlying Git repository.
func (r *TestRepository) Remove() error {
	return os.RemoveAll(r.Path)
}

// CheckoutBranch creates a new branch with the given name pointing to HEAD.
func (r *TestRepository) CheckoutBranch(name string) error {
	head, err := r.Head()
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())

	return r.Storer.SetReference(ref)
}

// When returns a time.Time starting at 2000/01/01 00:00:00 and increasing of 10 second for every commit.
func (r *TestRepository) When() time.Time {
	return referenceTime.Add(time.Duration(r.Counter*10) * time.Second)
}
