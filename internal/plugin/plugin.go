// Package plugin provides functions to handle the plugin sequence run by the release engine.
package plugin

import (
	"errors"
	"fmt"
)

// Plugin is an opaque identifier naming an external processing step.
type Plugin string

const (
	CommitAnalyzer        Plugin = "@semantic-release/commit-analyzer"
	ReleaseNotesGenerator Plugin = "@semantic-release/release-notes-generator"
	GitHub                Plugin = "@semantic-release/github"
)

var (
	ErrNoPlugin        = errors.New("no plugin configuration")
	ErrEmptyPlugin     = errors.New("empty plugin identifier")
	ErrDuplicatePlugin = errors.New("duplicate plugin identifier")
	ErrOrder           = errors.New("plugin declared before its prerequisite")
)

// prerequisites maps a plugin to the one whose output it consumes.
var prerequisites = map[Plugin]Plugin{
	ReleaseNotesGenerator: CommitAnalyzer,
}

// Default returns the plugin sequence used when no configuration is given.
func Default() []Plugin {
	return []Plugin{CommitAnalyzer, ReleaseNotesGenerator, GitHub}
}

// Prerequisite returns the plugin that must run before p, if any.
func Prerequisite(p Plugin) (Plugin, bool) {
	prerequisite, ok := prerequisites[p]
	return prerequisite, ok
}

// Unmarshall takes raw plugin identifiers and returns them as a Plugin sequence, in the same order.
func Unmarshall(input []string) ([]Plugin, error) {
	if len(input) == 0 {
		return nil, ErrNoPlugin
	}

	plugins := make([]Plugin, len(input))
	seen := make(map[string]struct{}, len(input))

	for i, id := range input {
		if id == "" {
			return nil, ErrEmptyPlugin
		}

		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlugin, id)
		}
		seen[id] = struct{}{}

		plugins[i] = Plugin(id)
	}

	return plugins, nil
}

// Marshall is the reverse of Unmarshall.
func Marshall(plugins []Plugin) []string {
	ids := make([]string, len(plugins))

	for i, p := range plugins {
		ids[i] = string(p)
	}

	return ids
}

// CheckOrder returns an error wrapping ErrOrder when a plugin is declared before its prerequisite. A prerequisite
// absent from the sequence is not an error.
func CheckOrder(plugins []Plugin) error {
	position := make(map[Plugin]int, len(plugins))
	for i, p := range plugins {
		position[p] = i
	}

	for i, p := range plugins {
		prerequisite, ok := prerequisites[p]
		if !ok {
			continue
		}

		if j, declared := position[prerequisite]; declared && j > i {
			return fmt.Errorf("%w: %q must come after %q", ErrOrder, p, prerequisite)
		}
	}

	return nil
}
