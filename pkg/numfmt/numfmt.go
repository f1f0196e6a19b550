// Package numfmt controls how numeric values are rendered in test output.
//
// Float formatting libraries change their default rendering between
// releases (shortest round-trip vs fixed precision, sign padding, small
// value suppression). Assertion messages and mismatch reports that embed
// floats become unstable across upgrades unless a single rendering
// convention is pinned. numfmt is that pin: a process-wide set of print
// options, plus an instance form (Config) for suites that run in parallel
// and want isolated settings.
package numfmt

import (
	"math"
	"strconv"
	"strings"
	"sync"
)

// LegacyMode113 reproduces the pre-1.14 rendering convention: fixed
// significant-digit precision and sign-aligned slice elements (a leading
// space before non-negative values, so columns line up with negatives).
const LegacyMode113 = "1.13"

// suppressThreshold is the magnitude below which SuppressSmall renders
// a value as exactly zero.
const suppressThreshold = 1e-10

// Options describes a numeric rendering convention.
type Options struct {
	// Precision is the number of significant digits. Zero means
	// shortest round-trip rendering.
	Precision int

	// Legacy selects an older rendering convention by version string.
	// Empty means current behavior. The only recognized value is
	// LegacyMode113.
	Legacy string

	// SuppressSmall renders values smaller than 1e-10 in magnitude as 0.
	SuppressSmall bool
}

// DefaultOptions returns the options used before any SetPrintOptions call.
func DefaultOptions() Options {
	return Options{}
}

// Config is an isolated set of print options. The zero value is not
// usable; call NewConfig.
type Config struct {
	mu   sync.RWMutex
	opts Options
}

// NewConfig returns a Config holding DefaultOptions.
func NewConfig() *Config {
	return &Config{opts: DefaultOptions()}
}

// Set replaces the config's options. Re-applying equal options is a no-op
// in effect.
func (c *Config) Set(opts Options) {
	c.mu.Lock()
	c.opts = opts
	c.mu.Unlock()
}

// Options returns a copy of the current options.
func (c *Config) Options() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// FormatFloat renders f under the config's options.
func (c *Config) FormatFloat(f float64) string {
	opts := c.Options()
	return formatFloat(f, opts)
}

// FormatSlice renders vs as a bracketed, space-separated list. In legacy
// mode each non-negative element gets a leading space so signed and
// unsigned elements stay column-aligned:
//
//	FormatSlice([]float64{0.1, -0.2})  // "[ 0.1 -0.2]" under LegacyMode113
func (c *Config) FormatSlice(vs []float64) string {
	opts := c.Options()
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(' ')
		}
		s := formatFloat(v, opts)
		if opts.Legacy == LegacyMode113 && !strings.HasPrefix(s, "-") {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	b.WriteByte(']')
	return b.String()
}

func formatFloat(f float64, opts Options) string {
	if opts.SuppressSmall && math.Abs(f) < suppressThreshold {
		f = 0
	}
	prec := -1
	if opts.Legacy == LegacyMode113 {
		// 1.13 printed 8 significant digits unless overridden.
		prec = 8
	}
	if opts.Precision > 0 {
		prec = opts.Precision
	}
	// 'g' treats prec as significant digits and strips trailing zeros,
	// which is exactly the pinned convention.
	return strconv.FormatFloat(f, 'g', prec, 64)
}

var def = NewConfig()

// SetPrintOptions replaces the process-wide print options. Not safe for
// concurrent use with tests that read formatting mid-flight; call it from
// suite setup.
func SetPrintOptions(opts Options) { def.Set(opts) }

// PrintOptions returns the process-wide print options.
func PrintOptions() Options { return def.Options() }

// FormatFloat renders f under the process-wide options.
func FormatFloat(f float64) string { return def.FormatFloat(f) }

// FormatSlice renders vs under the process-wide options.
func FormatSlice(vs []float64) string { return def.FormatSlice(vs) }
