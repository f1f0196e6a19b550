// Package envnorm normalizes process-wide output settings so numeric
// test output stays stable across dependency upgrades.
//
// The rules are version-gated: once the numeric formatting generation
// reaches the legacy threshold, the older print convention is pinned via
// numfmt; when it reaches the warning threshold while the scientific
// rendering dependency is still at or below its known-noisy release, the
// warning filter is reset to default (first occurrence per call site).
// Normalize is idempotent: re-running it re-applies the same settings.
package envnorm

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"

	"github.com/numtest/numtest/pkg/numfmt"
	"github.com/numtest/numtest/pkg/warnfilter"
)

// Default thresholds. Overridable per suite via Profile.
const (
	// DefaultLegacyAt is the numeric generation at which the legacy
	// print convention must be pinned.
	DefaultLegacyAt = "1.14"
	// DefaultWarnResetAt is the numeric generation at which the warning
	// filter reset kicks in.
	DefaultWarnResetAt = "1.15"
	// DefaultScientificMax is the last scientific-library release that
	// still needs the warning filter reset.
	DefaultScientificMax = "1.1.0"
)

// Module paths whose build-info versions Setup inspects.
var (
	// NumericModulePath is the comparison/diff engine whose rendering
	// the array assertions delegate to.
	NumericModulePath = "github.com/google/go-cmp"
	// ScientificModulePath is the terminal rendering dependency.
	ScientificModulePath = "github.com/charmbracelet/lipgloss"
)

// ErrBadVersion is returned when a version string cannot be parsed.
var ErrBadVersion = errors.New("unparseable version")

// Versions holds the observed library versions. An empty string skips
// the rules gated on that library.
type Versions struct {
	Numeric    string
	Scientific string
}

// Profile holds the normalization thresholds, loadable from YAML so
// suites pinned to other library generations can override them.
type Profile struct {
	LegacyAt      string `yaml:"legacy_at"`
	WarnResetAt   string `yaml:"warn_reset_at"`
	ScientificMax string `yaml:"scientific_max"`
	LegacyMode    string `yaml:"legacy_mode"`
}

// DefaultProfile returns the built-in thresholds.
func DefaultProfile() Profile {
	return Profile{
		LegacyAt:      DefaultLegacyAt,
		WarnResetAt:   DefaultWarnResetAt,
		ScientificMax: DefaultScientificMax,
		LegacyMode:    numfmt.LegacyMode113,
	}
}

// Normalizer applies a profile to explicit targets, so isolated suites
// can normalize their own Config/Filter instead of the process globals.
// The zero value applies DefaultProfile to the process-wide settings.
type Normalizer struct {
	Profile  Profile
	Numfmt   *numfmt.Config     // nil means the process-wide options
	Warnings *warnfilter.Filter // nil means the process-wide filter
}

// Normalize applies the version-gated rules for the given versions.
// The only failure path is an unparseable version string.
func (n Normalizer) Normalize(v Versions) error {
	p := n.Profile
	d := DefaultProfile()
	if p.LegacyAt == "" {
		p.LegacyAt = d.LegacyAt
	}
	if p.WarnResetAt == "" {
		p.WarnResetAt = d.WarnResetAt
	}
	if p.ScientificMax == "" {
		p.ScientificMax = d.ScientificMax
	}
	if p.LegacyMode == "" {
		p.LegacyMode = d.LegacyMode
	}

	if v.Numeric == "" {
		return nil
	}
	numeric, err := parseVersion(v.Numeric)
	if err != nil {
		return err
	}

	if atLeast(numeric, p.LegacyAt) {
		n.setPrintOptions(numfmt.Options{Legacy: p.LegacyMode})
	}

	if v.Scientific != "" && atLeast(numeric, p.WarnResetAt) {
		scientific, err := parseVersion(v.Scientific)
		if err != nil {
			return err
		}
		if atMost(scientific, p.ScientificMax) {
			n.resetWarnings()
		}
	}
	return nil
}

func (n Normalizer) setPrintOptions(opts numfmt.Options) {
	if n.Numfmt != nil {
		n.Numfmt.Set(opts)
		return
	}
	numfmt.SetPrintOptions(opts)
}

func (n Normalizer) resetWarnings() {
	if n.Warnings != nil {
		n.Warnings.Simple(warnfilter.Default)
		return
	}
	warnfilter.SimpleFilter(warnfilter.Default)
}

// Normalize applies the default profile to the process-wide settings.
func Normalize(v Versions) error {
	return Normalizer{}.Normalize(v)
}

// Setup discovers the numeric and scientific library versions from the
// binary's build info and normalizes the process-wide settings. Intended
// to run once from TestMain; calling it again re-applies the same
// configuration.
func Setup() error {
	v := Versions{
		Numeric:    moduleVersion(NumericModulePath),
		Scientific: moduleVersion(ScientificModulePath),
	}
	if err := Normalize(v); err != nil {
		return fmt.Errorf("envnorm: %w", err)
	}
	return nil
}

func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return ""
}

func parseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadVersion, s)
	}
	return v, nil
}

func mustParse(s string) *semver.Version {
	v, err := semver.NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// atLeast reports v >= threshold. Thresholds are trusted constants or
// profile values validated at load time.
func atLeast(v *semver.Version, threshold string) bool {
	return v.Compare(mustParse(threshold)) >= 0
}

// atMost reports v <= threshold.
func atMost(v *semver.Version, threshold string) bool {
	return v.Compare(mustParse(threshold)) <= 0
}
