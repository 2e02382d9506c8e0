package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/s0ders/release-config/internal/plugin"
	"github.com/s0ders/release-config/internal/releaseconfig"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

type ValidationResult struct {
	Errors   []string
	Warnings []string
}

func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) AddWarning(format string, args ...interface{}) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

func NewValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate <CONFIGURATION_FILE_PATH>",
		Short: "Validate a configuration file",
		Long:  "Validate a configuration file for syntax and semantic errors, reporting every problem found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]

			result, err := validateConfigFile(configPath)
			if err != nil {
				return err
			}

			printValidationResult(cmd, configPath, result)

			if result.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", ErrInvalidConfiguration, len(result.Errors))
			}

			return nil
		},
	}

	return validateCmd
}

// validateConfigFile decodes the file into generic values so that every problem can be reported at once instead of
// stopping at the first decoding error.
func validateConfigFile(path string) (*ValidationResult, error) {
	result := &ValidationResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	configType := strings.TrimPrefix(filepath.Ext(path), ".")
	if configType == "" {
		configType = "yaml"
	}

	// Decoding through viper keeps the accepted formats and the key case folding identical to the loader.
	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("invalid configuration syntax: %w", err)
	}

	config := v.AllSettings()

	validateKeys(config, result)
	validateBranches(config[releaseconfig.BranchesKey], result)
	validatePlugins(config[releaseconfig.PluginsKey], result)

	return result, nil
}

func validateKeys(config map[string]interface{}, result *ValidationResult) {
	var unknown []string

	for key := range config {
		if key != releaseconfig.BranchesKey && key != releaseconfig.PluginsKey {
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)

	for _, key := range unknown {
		result.AddWarning("unknown key %q is ignored", key)
	}
}

func lowerKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))

	for key, value := range m {
		out[strings.ToLower(key)] = value
	}

	return out
}

func validateBranches(branches interface{}, result *ValidationResult) {
	if branches == nil {
		result.AddWarning("no branches configured, defaults will be used")
		return
	}

	branchList, ok := branches.([]interface{})
	if !ok {
		result.AddError("branches: expected an array, got %T", branches)
		return
	}

	if len(branchList) == 0 {
		result.AddError("branches: at least one branch is required")
		return
	}

	hasStable := false
	hasPrereleaseFlag := false
	seenNames := make(map[string]bool)

	for i, item := range branchList {
		branch, ok := item.(map[string]interface{})
		if !ok {
			if str, isStr := item.(string); isStr {
				result.AddError("branches[%d]: expected object with \"name\" key, got string %q (use \"- name: %s\" instead)", i, str, str)
			} else {
				result.AddError("branches[%d]: expected object with \"name\" key, got %T", i, item)
			}
			continue
		}

		branch = lowerKeys(branch)

		name, hasName := branch["name"]
		if !hasName {
			result.AddError("branches[%d]: \"name\" key is required", i)
			continue
		}

		nameStr, ok := name.(string)
		if !ok {
			result.AddError("branches[%d]: \"name\" must be a string, got %T", i, name)
			continue
		}

		if nameStr == "" {
			result.AddError("branches[%d]: \"name\" cannot be empty", i)
			continue
		}

		if seenNames[nameStr] {
			result.AddError("branches[%d]: duplicate branch name %q", i, nameStr)
		}
		seenNames[nameStr] = true

		prerelease := false
		if raw, set := branch["prerelease"]; set {
			pr, isBool := raw.(bool)
			if !isBool {
				result.AddError("branches[%d]: \"prerelease\" must be a boolean, got %T", i, raw)
			}
			prerelease = pr
		}

		if prerelease {
			hasPrereleaseFlag = true
		} else {
			hasStable = true
		}
	}

	if hasPrereleaseFlag && !hasStable {
		result.AddWarning("prerelease branches configured but no stable branch defined")
	}
}

func validatePlugins(plugins interface{}, result *ValidationResult) {
	if plugins == nil {
		result.AddWarning("no plugins configured, defaults will be used")
		return
	}

	pluginList, ok := plugins.([]interface{})
	if !ok {
		result.AddError("plugins: expected an array, got %T", plugins)
		return
	}

	if len(pluginList) == 0 {
		result.AddError("plugins: at least one plugin is required")
		return
	}

	seen := make(map[string]bool)
	var sequence []plugin.Plugin

	for i, item := range pluginList {
		id, ok := item.(string)
		if !ok {
			result.AddError("plugins[%d]: expected a plugin identifier string, got %T", i, item)
			continue
		}

		if id == "" {
			result.AddError("plugins[%d]: plugin identifier cannot be empty", i)
			continue
		}

		if seen[id] {
			result.AddError("plugins[%d]: duplicate plugin %q", i, id)
			continue
		}
		seen[id] = true

		sequence = append(sequence, plugin.Plugin(id))
	}

	if err := plugin.CheckOrder(sequence); err != nil {
		result.AddError("plugins: %s", err)
	}

	for _, p := range sequence {
		prerequisite, ok := plugin.Prerequisite(p)
		if ok && !seen[string(prerequisite)] {
			result.AddWarning("plugins: %q usually relies on %q which is not configured", p, prerequisite)
		}
	}
}

func printValidationResult(cmd *cobra.Command, path string, result *ValidationResult) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validating %s...\n\n", path)

	if !result.HasErrors() && len(result.Warnings) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n0 errors, 0 warnings\n")
		return
	}

	for _, err := range result.Errors {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", err)
	}

	for _, warn := range result.Warnings {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s\n", warn)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d error(s), %d warning(s)\n", len(result.Errors), len(result.Warnings))
}
