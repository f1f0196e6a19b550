// Package check provides comparison assertions built from a single
// generic operator primitive.
//
// Every named assertion (Greater, LessEqual, True, ...) is Operator with
// a pinned predicate and default message template, the same way testify's
// named asserts wrap ObjectsAreEqual. All helpers accept any TestingT
// (testify-compatible) and return whether the check passed, so they
// compose inside table tests and custom helpers.
package check

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/numtest/numtest/pkg/strutil"
)

// TestingT is the subset of *testing.T these assertions need. It matches
// testify's interface of the same name.
type TestingT interface {
	Errorf(format string, args ...any)
}

type tHelper interface {
	Helper()
}

// Op is a binary predicate over two values of the same type.
type Op[T any] func(a, b T) bool

// maxValueRunes bounds how much of an operand's string form appears in a
// failure message.
const maxValueRunes = 120

// Operator applies op to (v1, v2) and fails t when the predicate reports
// false. A nil op means equality. msg is a template with two positional
// slots: {0} is substituted with v2's string form and {1} with v1's.
// (Slot order is intentionally swapped relative to natural reading; the
// named bindings below depend on it.) An empty template falls back to a
// generic "comparison failed" message with the same slot order.
func Operator[T comparable](t TestingT, v1, v2 T, msg string, op Op[T]) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if op == nil {
		op = func(a, b T) bool { return a == b }
	}
	if op(v1, v2) {
		return true
	}
	t.Errorf("%s", failureMessage(msg, render(v1), render(v2)))
	return false
}

func render[T any](v T) string {
	return strutil.Clip(fmt.Sprint(v), maxValueRunes)
}

// failureMessage substitutes {0} with s2 and {1} with s1.
func failureMessage(tmpl, s1, s2 string) string {
	if tmpl == "" {
		return fmt.Sprintf("comparison failed: %s vs %s", s2, s1)
	}
	tmpl = strings.ReplaceAll(tmpl, "{0}", s2)
	return strings.ReplaceAll(tmpl, "{1}", s1)
}

func override(def string, msg []string) string {
	if len(msg) > 0 {
		return msg[0]
	}
	return def
}

// GreaterEqual asserts v1 >= v2.
func GreaterEqual[T cmp.Ordered](t TestingT, v1, v2 T, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v1, v2, override("{0} >= {1}", msg),
		func(a, b T) bool { return a >= b })
}

// Greater asserts v1 > v2.
func Greater[T cmp.Ordered](t TestingT, v1, v2 T, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v1, v2, override("{0} > {1}", msg),
		func(a, b T) bool { return a > b })
}

// LessEqual asserts v1 <= v2. The default template spells the operator
// "=<"; kept as observed, tests pin it.
func LessEqual[T cmp.Ordered](t TestingT, v1, v2 T, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v1, v2, override("{0} =< {1}", msg),
		func(a, b T) bool { return a <= b })
}

// Less asserts v1 < v2.
func Less[T cmp.Ordered](t TestingT, v1, v2 T, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v1, v2, override("{0} < {1}", msg),
		func(a, b T) bool { return a < b })
}

// True asserts v is true.
func True(t TestingT, v bool, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v, true, override("False is not true", msg), nil)
}

// False asserts v is false.
func False(t TestingT, v bool, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v, false, override("True is not false", msg), nil)
}

// NotEqual asserts v1 != v2. It has no default message template; the
// generic fallback names both values.
func NotEqual[T comparable](t TestingT, v1, v2 T, msg ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Operator(t, v1, v2, override("", msg),
		func(a, b T) bool { return a != b })
}
