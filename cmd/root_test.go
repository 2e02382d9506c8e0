package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0ders/release-config/internal/appcontext"
)

func TestRootCmd_NoError(t *testing.T) {
	assert := assert.New(t)

	actual := new(bytes.Buffer)
	rootCmd := NewRootCommand(appcontext.New())
	rootCmd.SetOut(actual)
	rootCmd.SetErr(actual)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	assert.NoError(err, "should not have failed running rootCmd")
	assert.Contains(actual.String(), "show")
	assert.Contains(actual.String(), "check")
	assert.Contains(actual.String(), "validate")
}

func TestRootCmd_Error(t *testing.T) {
	assert := assert.New(t)

	actual := new(bytes.Buffer)
	rootCmd := NewRootCommand(appcontext.New())
	rootCmd.SetOut(actual)
	rootCmd.SetErr(actual)
	rootCmd.SetArgs([]string{"unknown"})

	err := rootCmd.Execute()
	assert.Error(err, "should have failed trying to run unknown command")
}
