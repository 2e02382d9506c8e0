package releaseconfig

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/s0ders/release-config/internal/branch"
	"github.com/s0ders/release-config/internal/plugin"
)

func newViper(t *testing.T, configType, content string) *viper.Viper {
	t.Helper()

	v := viper.New()
	v.SetConfigType(configType)
	require.NoError(t, v.ReadConfig(strings.NewReader(content)))

	return v
}

func TestConfig_DefaultBranches(t *testing.T) {
	want := []branch.Branch{
		{Name: "main"},
		{Name: "release", Prerelease: true},
	}

	assert.Equal(t, want, Default().Branches())
}

func TestConfig_DefaultPlugins(t *testing.T) {
	want := []plugin.Plugin{
		"@semantic-release/commit-analyzer",
		"@semantic-release/release-notes-generator",
		"@semantic-release/github",
	}

	assert.Equal(t, want, Default().Plugins())
}

func TestConfig_DefaultIsIdempotent(t *testing.T) {
	first := Default()
	second := Default()

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)

	loaded, err := Load(nil)
	require.NoError(t, err)
	reloaded, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, loaded, reloaded)
	assert.Equal(t, first, loaded)
}

func TestConfig_AccessorsReturnCopies(t *testing.T) {
	config := Default()

	branches := config.Branches()
	branches[0].Name = "changed"
	branches[1].Prerelease = false

	plugins := config.Plugins()
	plugins[0] = "changed"

	assert.Equal(t, "main", config.Branches()[0].Name)
	assert.True(t, config.Branches()[1].Prerelease)
	assert.Equal(t, plugin.CommitAnalyzer, config.Plugins()[0])
}

func TestConfig_UniqueBranchNames(t *testing.T) {
	seen := make(map[string]bool)

	for _, b := range Default().Branches() {
		assert.False(t, seen[b.Name], "branch %q declared twice", b.Name)
		seen[b.Name] = true
	}
}

func TestConfig_Branch(t *testing.T) {
	config := Default()

	b, ok := config.Branch("release")
	assert.True(t, ok)
	assert.True(t, b.Prerelease)

	_, ok = config.Branch("develop")
	assert.False(t, ok)
}

func TestConfig_Prereleases(t *testing.T) {
	assert.Equal(t, []branch.Branch{{Name: "release", Prerelease: true}}, Default().Prereleases())
}

func TestNew_Errors(t *testing.T) {
	type test struct {
		name     string
		branches []branch.Item
		plugins  []string
		want     error
	}

	plugins := plugin.Marshall(plugin.Default())
	branches := branch.Marshall(branch.Default())

	tests := []test{
		{name: "no branch", branches: nil, plugins: plugins, want: branch.ErrNoBranch},
		{name: "duplicate branch", branches: []branch.Item{{Name: "main"}, {Name: "main"}}, plugins: plugins, want: branch.ErrDuplicateName},
		{name: "no plugin", branches: branches, plugins: []string{}, want: plugin.ErrNoPlugin},
		{name: "duplicate plugin", branches: branches, plugins: []string{"a", "a"}, want: plugin.ErrDuplicatePlugin},
		{
			name:     "prerequisite after dependent",
			branches: branches,
			plugins:  []string{string(plugin.ReleaseNotesGenerator), string(plugin.CommitAnalyzer)},
			want:     plugin.ErrOrder,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.branches, tc.plugins)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	v := newViper(t, "yaml", `
branches:
  - name: master
  - name: beta
    prerelease: true
  - name: alpha
    prerelease: true
plugins:
  - "@semantic-release/commit-analyzer"
  - "@semantic-release/npm"
`)

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, []branch.Branch{
		{Name: "master"},
		{Name: "beta", Prerelease: true},
		{Name: "alpha", Prerelease: true},
	}, config.Branches())
	assert.Equal(t, []plugin.Plugin{plugin.CommitAnalyzer, "@semantic-release/npm"}, config.Plugins())
}

func TestLoad_JSON(t *testing.T) {
	v := newViper(t, "json", `{"branches": [{"name": "main"}, {"name": "release", "prerelease": true}]}`)

	config, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, Default(), config, "plugins should fall back to the default sequence")
}

func TestLoad_EmptyListsAreErrors(t *testing.T) {
	v := newViper(t, "yaml", "branches: []\n")

	_, err := Load(v)
	assert.ErrorIs(t, err, branch.ErrNoBranch)

	v = newViper(t, "yaml", "plugins: []\n")

	_, err = Load(v)
	assert.ErrorIs(t, err, plugin.ErrNoPlugin)
}

func TestLoad_Options(t *testing.T) {
	v := newViper(t, "yaml", `
branches:
  - name: master
`)

	config, err := Load(v,
		WithBranches([]branch.Item{{Name: "trunk"}}),
		WithPlugins([]string{"@semantic-release/github"}),
	)
	require.NoError(t, err)

	assert.Equal(t, []branch.Branch{{Name: "trunk"}}, config.Branches())
	assert.Equal(t, []plugin.Plugin{plugin.GitHub}, config.Plugins())
}

func TestConfig_Document(t *testing.T) {
	document := Default().Document()

	b, err := json.Marshal(document)
	require.NoError(t, err)

	want := `{"branches":[{"name":"main"},{"name":"release","prerelease":true}],` +
		`"plugins":["@semantic-release/commit-analyzer","@semantic-release/release-notes-generator","@semantic-release/github"]}`
	assert.Equal(t, want, string(b))

	out, err := yaml.Marshal(document)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, document, decoded)
}
