package envnorm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile reads a YAML profile from path. Omitted fields keep their
// defaults; threshold fields are validated so a bad profile fails at
// load time rather than inside a test.
//
//	legacy_at: "1.14"
//	warn_reset_at: "1.15"
//	scientific_max: "1.1.0"
//	legacy_mode: "1.13"
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	for _, v := range []string{p.LegacyAt, p.WarnResetAt, p.ScientificMax} {
		if _, err := parseVersion(v); err != nil {
			return Profile{}, fmt.Errorf("profile %s: %w", path, err)
		}
	}
	return p, nil
}
