package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FeatureConstraints maps each runtime feature generated code can depend on
// to the runtime versions providing it.
var FeatureConstraints = map[string]string{
	"runes":      ">= 5.0.0",
	"async-init": ">= 5.36.0",
}

// CompatibilityError lists the features a runtime version does not provide
type CompatibilityError struct {
	Version  string
	Features []string
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("runtime %s does not support: %s", e.Version, strings.Join(e.Features, ", "))
}

// CheckRuntime verifies that version satisfies the constraint of every
// feature. An empty version skips the check. Unknown features are ignored.
func CheckRuntime(version string, features []string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid runtime version %q: %w", version, err)
	}

	var missing []string
	for _, feature := range features {
		constraint, ok := FeatureConstraints[feature]
		if !ok {
			continue
		}
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			panic(fmt.Sprintf("AssertionError: bad constraint for %s: %v", feature, err))
		}
		if !c.Check(v) {
			missing = append(missing, feature)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &CompatibilityError{Version: version, Features: missing}
	}
	return nil
}
