// Package arrayeq asserts exact elementwise equality of arrays and
// ordered sequences of arrays, failing with a report that names the
// offending position and a go-cmp diff of the pair.
package arrayeq

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/numtest/numtest/pkg/check"
	"github.com/numtest/numtest/pkg/jsonutil"
	"github.com/numtest/numtest/pkg/numfmt"
	"github.com/numtest/numtest/pkg/strutil"
	"github.com/numtest/numtest/pkg/ui"
)

type tHelper interface {
	Helper()
}

// Report describes the first mismatch found between two arrays.
type Report struct {
	// Pair is the position within the outer sequence, or -1 for a
	// single-array comparison.
	Pair int `json:"pair,omitempty"`
	// Index is the first differing element, or -1 for a length mismatch.
	Index int    `json:"index"`
	Got   string `json:"got"`
	Want  string `json:"want"`
	// Diff is go-cmp's rendering of the whole pair.
	Diff string `json:"diff,omitempty"`
}

// String renders the report's one-line summary, styled when the
// terminal supports it.
func (r Report) String() string {
	loc := fmt.Sprintf("index %d", r.Index)
	if r.Index < 0 {
		loc = "length"
	}
	if r.Pair >= 0 {
		loc = fmt.Sprintf("pair %d, %s", r.Pair, loc)
	}
	return fmt.Sprintf("%s arrays differ at %s: got %s, want %s",
		ui.Icon("✗", "x"),
		ui.Styled(ui.FailStyle, loc),
		r.Got, r.Want)
}

// JSON returns the report in machine-readable form.
func (r Report) JSON() ([]byte, error) {
	return jsonutil.MarshalIndent(r, "  ")
}

// Equal asserts that got and want have the same length and identical
// elements. On mismatch it fails t with a Report naming the first
// differing index and returns false.
func Equal[T comparable](t check.TestingT, got, want []T) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return pairEqual(t, got, want, -1)
}

// Sequences pairs the arrays of got and want positionally and asserts
// Equal on each pair, stopping at the shorter sequence's length. Surplus
// arrays beyond that length are silently ignored (known edge case,
// inherited). Returns false after the first failing pair.
func Sequences[T comparable](t check.TestingT, got, want [][]T) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	n := min(len(got), len(want))
	for i := 0; i < n; i++ {
		if !pairEqual(t, got[i], want[i], i) {
			return false
		}
	}
	return true
}

func pairEqual[T comparable](t check.TestingT, got, want []T, pair int) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if len(got) != len(want) {
		r := Report{
			Pair:  pair,
			Index: -1,
			Got:   fmt.Sprintf("length %d", len(got)),
			Want:  fmt.Sprintf("length %d", len(want)),
			Diff:  cmp.Diff(want, got),
		}
		fail(t, r)
		return false
	}

	for i := range got {
		if got[i] != want[i] {
			r := Report{
				Pair:  pair,
				Index: i,
				Got:   render(got[i]),
				Want:  render(want[i]),
				Diff:  cmp.Diff(want, got),
			}
			fail(t, r)
			return false
		}
	}
	return true
}

func fail(t check.TestingT, r Report) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	msg := r.String()
	if d := strings.TrimSpace(r.Diff); d != "" {
		msg += " (-want +got):\n" + r.Diff
	}
	t.Errorf("%s", msg)
}

// render formats a single element, routing floats through the pinned
// numeric print options so mismatch output is stable across library
// versions.
func render[T comparable](v T) string {
	switch x := any(v).(type) {
	case float64:
		return numfmt.FormatFloat(x)
	case float32:
		return numfmt.FormatFloat(float64(x))
	default:
		return strutil.Clip(fmt.Sprint(v), 120)
	}
}
