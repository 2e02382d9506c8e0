// Package releaseconfig provides the configuration record handed to the release engine: the branches that take
// part in release automation and the ordered plugin sequence run during a release.
//
// A Config is immutable once built. Its accessors return copies so that no caller can alter the record seen by
// another.
package releaseconfig

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/s0ders/release-config/internal/branch"
	"github.com/s0ders/release-config/internal/plugin"
)

const (
	BranchesKey = "branches"
	PluginsKey  = "plugins"
)

type Config struct {
	branches []branch.Branch
	plugins  []plugin.Plugin
}

// Document is the shape of the configuration consumed by the release engine.
type Document struct {
	Branches []branch.Item `json:"branches" yaml:"branches"`
	Plugins  []string      `json:"plugins" yaml:"plugins"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		branches: branch.Default(),
		plugins:  plugin.Default(),
	}
}

// New validates the given branches and plugins and returns the corresponding Config.
func New(branches []branch.Item, plugins []string) (*Config, error) {
	b, err := branch.Unmarshall(branches)
	if err != nil {
		return nil, fmt.Errorf("parsing branches configuration: %w", err)
	}

	p, err := plugin.Unmarshall(plugins)
	if err != nil {
		return nil, fmt.Errorf("parsing plugins configuration: %w", err)
	}

	if err = plugin.CheckOrder(p); err != nil {
		return nil, fmt.Errorf("checking plugins order: %w", err)
	}

	return &Config{branches: b, plugins: p}, nil
}

// Branches returns the ordered branch descriptors.
func (c *Config) Branches() []branch.Branch {
	out := make([]branch.Branch, len(c.branches))
	copy(out, c.branches)
	return out
}

// Plugins returns the ordered plugin identifiers.
func (c *Config) Plugins() []plugin.Plugin {
	out := make([]plugin.Plugin, len(c.plugins))
	copy(out, c.plugins)
	return out
}

// Branch returns the branch descriptor with the given name.
func (c *Config) Branch(name string) (branch.Branch, bool) {
	for _, b := range c.branches {
		if b.Name == name {
			return b, true
		}
	}

	return branch.Branch{}, false
}

// Prereleases returns the branches publishing on a prerelease channel.
func (c *Config) Prereleases() []branch.Branch {
	var out []branch.Branch

	for _, b := range c.branches {
		if b.Prerelease {
			out = append(out, b)
		}
	}

	return out
}

func (c *Config) Document() Document {
	return Document{
		Branches: branch.Marshall(c.branches),
		Plugins:  plugin.Marshall(c.plugins),
	}
}

type Option func(*loader)

type loader struct {
	branches    []branch.Item
	plugins     []string
	branchesSet bool
	pluginsSet  bool
}

// WithBranches overrides the branches read from the configuration.
func WithBranches(items []branch.Item) Option {
	return func(l *loader) {
		l.branches = items
		l.branchesSet = true
	}
}

// WithPlugins overrides the plugins read from the configuration.
func WithPlugins(ids []string) Option {
	return func(l *loader) {
		l.plugins = ids
		l.pluginsSet = true
	}
}

// Load builds a Config from the branches and plugins keys of v. A key that is not set falls back to its default,
// a key that is set must hold a valid, non-empty list.
func Load(v *viper.Viper, options ...Option) (*Config, error) {
	l := &loader{}

	if v != nil && v.IsSet(BranchesKey) {
		if err := v.UnmarshalKey(BranchesKey, &l.branches); err != nil {
			return nil, fmt.Errorf("unmarshalling %s: %w", BranchesKey, err)
		}
		l.branchesSet = true
	}

	if v != nil && v.IsSet(PluginsKey) {
		if err := v.UnmarshalKey(PluginsKey, &l.plugins); err != nil {
			return nil, fmt.Errorf("unmarshalling %s: %w", PluginsKey, err)
		}
		l.pluginsSet = true
	}

	for _, option := range options {
		option(l)
	}

	branches := branch.Marshall(branch.Default())
	if l.branchesSet {
		branches = l.branches
	}

	plugins := plugin.Marshall(plugin.Default())
	if l.pluginsSet {
		plugins = l.plugins
	}

	return New(branches, plugins)
}
