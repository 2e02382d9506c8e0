package ci

import (
	"encoding/json"
	"fmt"
	"io"
)

// BranchOutput represents a single checked branch in the JSON output.
type BranchOutput struct {
	Branch     string `json:"branch"`
	Prerelease bool   `json:"prerelease"`
	Found      bool   `json:"found"`
	Reference  string `json:"reference,omitempty"`
	Message    string `json:"message"`
}

// Summary contains aggregate information about all checked branches.
type Summary struct {
	TotalCount int  `json:"total_count"`
	FoundCount int  `json:"found_count"`
	Complete   bool `json:"complete"`
}

// JSONOutput represents the structured JSON output containing all checked branches and a summary.
type JSONOutput struct {
	Summary  Summary        `json:"summary"`
	Branches []BranchOutput `json:"branches"`
}

// NewJSONOutput creates a new JSONOutput instance.
func NewJSONOutput() *JSONOutput {
	return &JSONOutput{
		Branches: make([]BranchOutput, 0),
	}
}

// AddBranch adds a checked branch to the output.
func (j *JSONOutput) AddBranch(name string, prerelease, found bool, reference, message string) {
	j.Branches = append(j.Branches, BranchOutput{
		Branch:     name,
		Prerelease: prerelease,
		Found:      found,
		Reference:  reference,
		Message:    message,
	})
}

// Finalize computes the summary based on added branches.
func (j *JSONOutput) Finalize() {
	j.Summary.TotalCount = len(j.Branches)
	j.Summary.FoundCount = 0

	for _, b := range j.Branches {
		if b.Found {
			j.Summary.FoundCount++
		}
	}

	j.Summary.Complete = j.Summary.FoundCount == j.Summary.TotalCount
}

// Write outputs the JSON to the given writer.
func (j *JSONOutput) Write(w io.Writer) error {
	j.Finalize()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(j); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}
