package warnfilter

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedFilter(action Action) (*Filter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := New(action)
	f.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return f, &buf
}

func emitted(buf *bytes.Buffer) int {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

func TestDefault_FirstOccurrencePerCallSite(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Default)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Warn("deprecated option")) // same call site each iteration
	}

	assert.Equal(t, 1, emitted(buf))
	assert.Contains(t, buf.String(), "deprecated option")
	assert.Contains(t, buf.String(), "warnfilter_test.go")
}

func TestDefault_DistinctMessagesAtSameSiteBothShown(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Default)

	msgs := []string{"first", "second"}
	for _, m := range msgs {
		require.NoError(t, f.Warn(m))
	}

	assert.Equal(t, 2, emitted(buf))
}

func TestOnce_FirstOccurrencePerMessage(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Once)

	require.NoError(t, f.Warn("same text"))
	require.NoError(t, f.Warn("same text")) // different line, same message
	require.NoError(t, f.Warn("other text"))

	assert.Equal(t, 2, emitted(buf))
}

func TestModule_FirstOccurrencePerFile(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Module)

	require.NoError(t, f.Warn("a"))
	require.NoError(t, f.Warn("b")) // same file, suppressed

	assert.Equal(t, 1, emitted(buf))
}

func TestAlways_NoDedupe(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Always)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Warn("noisy"))
	}

	assert.Equal(t, 3, emitted(buf))
}

func TestIgnore_SuppressesEverything(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Ignore)

	require.NoError(t, f.Warn("anything"))
	assert.Zero(t, emitted(buf))
}

func TestError_ReturnsInsteadOfLogging(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Error)

	err := f.Warn("bad input")
	assert.ErrorIs(t, err, ErrWarning)
	assert.Contains(t, err.Error(), "bad input")
	assert.Zero(t, emitted(buf))
}

func TestSimple_ResetsSeenRegistry(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Once)

	require.NoError(t, f.Warn("repeat"))
	f.Simple(Once)
	require.NoError(t, f.Warn("repeat"))

	assert.Equal(t, 2, emitted(buf), "reset must forget previously seen warnings")
	assert.Equal(t, Once, f.Action())
}

func TestWarnf_FormatsMessage(t *testing.T) {
	t.Parallel()

	f, buf := newCapturedFilter(Always)

	require.NoError(t, f.Warnf("value %d out of range", 42))
	assert.Contains(t, buf.String(), "value 42 out of range")
}

func TestPackageLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SimpleFilter(Always)
	defer SimpleFilter(Default)

	require.NoError(t, Warn("global"))
	assert.Equal(t, Always, CurrentAction())
	assert.Contains(t, buf.String(), "global")
}
