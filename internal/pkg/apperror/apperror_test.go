package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("missing")))
	assert.Equal(t, CodeRaceLost, CodeOf(RaceLost("lost")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestCodeOfWrapped(t *testing.T) {
	inner := InvalidTransition("cannot close a declined session")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, CodeInvalidTransition, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeInvalidTransition))
	assert.False(t, Is(wrapped, CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, "event bus unreachable", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "event bus unreachable")
}
