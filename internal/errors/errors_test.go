package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryExitCodes(t *testing.T) {
	tests := map[string]struct {
		category Category
		name     string
		code     int
	}{
		"argument":      {category: Argument, name: "Argument Error", code: ExitInvalidArguments},
		"configuration": {category: Configuration, name: "Configuration Error", code: ExitInvalidArguments},
		"prerequisite":  {category: Prerequisite, name: "Prerequisite Error", code: ExitMissingPrerequisite},
		"runtime":       {category: Runtime, name: "Runtime Error", code: ExitFailure},
		"unknown":       {category: Category(42), name: "Error", code: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.category.String())
			assert.Equal(t, tt.code, tt.category.ExitCode())
		})
	}
}

func TestWrapKeepsChain(t *testing.T) {
	sentinel := stderrors.New("no version attribute")
	err := WrapWithMessage(fmt.Errorf("reading addon.xml.in: %w", sentinel), Prerequisite, "cannot bump")

	require.NotNil(t, err)
	assert.Equal(t, "cannot bump: reading addon.xml.in: no version attribute", err.Error())
	assert.ErrorIs(t, err, sentinel)
	assert.Same(t, err, AsCLIError(err))

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
	assert.Nil(t, AsCLIError(sentinel))
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewArgumentErrorWithUsage(
		`invalid version type "major"`,
		"addonbump <micro|minor> <changelog_text>",
		"Use micro for fixes",
		"Use minor for features",
	)

	got := FormatErrorPlain(err)

	assert.Equal(t, "Error [Argument Error]: invalid version type \"major\"\n"+
		"\nUsage: addonbump <micro|minor> <changelog_text>\n"+
		"\nTo fix this:\n"+
		"  • Use micro for fixes\n"+
		"  • Use minor for features\n", got)
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintErrorContainsMessage(t *testing.T) {
	var buf bytes.Buffer
	FprintError(&buf, NewPrerequisiteError("addon.xml.in not found"))
	assert.Contains(t, buf.String(), "addon.xml.in not found")

	buf.Reset()
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())
}
