package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Under `go test` stderr is never an interactive terminal, so the color
// gate must report false and Styled must pass text through untouched.
func TestStyledPlainWhenNotTerminal(t *testing.T) {
	assert.False(t, ColorTerminal())
	assert.Equal(t, "mismatch", Styled(FailStyle, "mismatch"))
	assert.Equal(t, "x", Icon("✗", "x"))
}
