package ota

import (
	"fmt"

	"github.com/coreos/go-semver/semver"

	"github.com/moffa90/go-esphota/protocol"
)

// compareCompatibility compares the host's own version against the
// co-processor's running version with the patch field masked out: only
// major.minor matter for protocol compatibility. Returns 0 when compatible,
// a positive value when the host is newer, negative when older.
//
// The result is advisory only. A mismatched pair may still interoperate
// across some protocol calls, so this never blocks an update.
func compareCompatibility(hostVersion string, coproc protocol.FirmwareVersion) (int, error) {
	hv, err := semver.NewVersion(hostVersion)
	if err != nil {
		return 0, fmt.Errorf("parse host version %q: %w", hostVersion, err)
	}

	host := semver.Version{Major: hv.Major, Minor: hv.Minor}
	slave := semver.Version{Major: int64(coproc.Major), Minor: int64(coproc.Minor)}
	return host.Compare(slave), nil
}
