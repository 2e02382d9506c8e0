// Package ci provides function to generate output for CI/CD pipelines.
package ci

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

var ErrOutputKeyCollision = errors.New("branch names map to the same output key")

// GenerateGitHubOutput appends the branch check results to the file pointed by GITHUB_OUTPUT. Nothing is written
// when the variable is not set. Branch names sharing an output key once sanitized, such as "release-1" and
// "release_1", are rejected with ErrOutputKeyCollision.
func GenerateGitHubOutput(output *JSONOutput) (err error) {
	path, exists := os.LookupEnv("GITHUB_OUTPUT")

	if !exists {
		return nil
	}

	output.Finalize()

	var sb strings.Builder
	names := make([]string, len(output.Branches))
	keys := make(map[string]string, len(output.Branches))

	for i, b := range output.Branches {
		names[i] = b.Branch
		key := outputKey(b.Branch)

		if previous, ok := keys[key]; ok {
			return fmt.Errorf("%w: %q and %q both become %s", ErrOutputKeyCollision, previous, b.Branch, key)
		}
		keys[key] = b.Branch

		_, _ = fmt.Fprintf(&sb, "%s_FOUND=%t\n%s_PRERELEASE=%t\n", key, b.Found, key, b.Prerelease)
	}

	content := fmt.Sprintf("\nBRANCHES=%s\nBRANCHES_COMPLETE=%t\n%s", strings.Join(names, ","), output.Summary.Complete, sb.String())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ci file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing ci file: %w", closeErr)
		}
	}()

	if _, err = f.WriteString(content); err != nil {
		return fmt.Errorf("writing to ci file: %w", err)
	}

	return nil
}

// outputKey turns a branch name such as "release/1.x" into "RELEASE_1_X".
func outputKey(name string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return '_'
		}
		return unicode.ToUpper(r)
	}, name)
}
