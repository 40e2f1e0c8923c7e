package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Message(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad path")
	assert.Equal(t, "bad path", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExitError_Wrapping(t *testing.T) {
	inner := errors.New("disk on fire")
	err := WrapExitError(ExitFailure, "save failed", inner)

	assert.Equal(t, "save failed: disk on fire", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestGetExitCode_UnknownErrorDefaultsToFailure(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestGetExitCode_WrappedExitError(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
