package gtship

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/bft-labs/gtship/pkg/gprmc"
	"github.com/bft-labs/gtship/pkg/log"
	"github.com/bft-labs/gtship/pkg/sender"
)

// Version is the version of the client facade.
const Version = "1.0.0"

type moduleVersion struct {
	name       string
	version    string
	minVersion string
}

func moduleVersions() []moduleVersion {
	return []moduleVersion{
		{"gprmc", gprmc.Version, gprmc.MinCompatibleVersion},
		{"sender", sender.Version, sender.MinCompatibleVersion},
		{"log", log.Version, log.MinCompatibleVersion},
	}
}

// validateModuleVersions checks that every module is at or above its minimum compatible version.
func validateModuleVersions() error {
	for _, m := range moduleVersions() {
		if err := checkVersion(m); err != nil {
			return err
		}
	}
	return nil
}

func checkVersion(m moduleVersion) error {
	v, err := semver.NewVersion(m.version)
	if err != nil {
		return fmt.Errorf("module %s: parse version %q: %w", m.name, m.version, err)
	}
	minV, err := semver.NewVersion(m.minVersion)
	if err != nil {
		return fmt.Errorf("module %s: parse minimum version %q: %w", m.name, m.minVersion, err)
	}
	if v.LessThan(minV) {
		return fmt.Errorf("module %s version %s is below minimum compatible version %s",
			m.name, m.version, m.minVersion)
	}
	return nil
}
