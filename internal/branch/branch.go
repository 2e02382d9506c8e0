// Package branch provides functions to handle branch configuration.
package branch

import (
	"errors"
)

var (
	ErrNoBranch      = errors.New("no branch configuration")
	ErrNoName        = errors.New("no name in branch configuration")
	ErrDuplicateName = errors.New("duplicate name in branch configuration")
)

// Branch is a release branch and its channel kind.
type Branch struct {
	Name       string
	Prerelease bool
}

// Item is the raw form of a branch as found in a configuration file or flag.
type Item struct {
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	Prerelease bool   `json:"prerelease,omitempty" yaml:"prerelease,omitempty" mapstructure:"prerelease"`
}

// Default returns the branches released when no configuration is given.
func Default() []Branch {
	return []Branch{
		{Name: "main"},
		{Name: "release", Prerelease: true},
	}
}

// Unmarshall takes raw branch items and returns the corresponding slice of Branch, in the same order.
func Unmarshall(input []Item) ([]Branch, error) {
	if len(input) == 0 {
		return nil, ErrNoBranch
	}

	branches := make([]Branch, len(input))
	seen := make(map[string]struct{}, len(input))

	for i, item := range input {
		if item.Name == "" {
			return nil, ErrNoName
		}

		if _, ok := seen[item.Name]; ok {
			return nil, ErrDuplicateName
		}
		seen[item.Name] = struct{}{}

		branches[i] = Branch{Name: item.Name, Prerelease: item.Prerelease}
	}

	return branches, nil
}

// Marshall is the reverse of Unmarshall.
func Marshall(branches []Branch) []Item {
	items := make([]Item, len(branches))

	for i, b := range branches {
		items[i] = Item{Name: b.Name, Prerelease: b.Prerelease}
	}

	return items
}
