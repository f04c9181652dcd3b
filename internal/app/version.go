package app

import (
	"github.com/Masterminds/semver/v3"

	"github.com/vk/envgrid/internal/config"
)

// Version is the tool version suites gate against via min_version.
const Version = "0.4.0"

// checkMinVersion fails when the suite demands a newer tool than the
// one running. An unparseable min_version is a configuration error.
func checkMinVersion(minVersion string) error {
	if minVersion == "" {
		return nil
	}
	need, err := semver.NewVersion(minVersion)
	if err != nil {
		return config.Errorf("invalid min_version %q: %s", minVersion, err)
	}
	if semver.MustParse(Version).LessThan(need) {
		return config.Errorf("suite requires envgrid >= %s, this is %s", minVersion, Version)
	}
	return nil
}
