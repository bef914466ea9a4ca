package protocol

import (
	"encoding/binary"
	"fmt"
)

// FirmwareVersion is a semantic firmware version as reported by the
// co-processor.
type FirmwareVersion struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// String renders the version in the canonical "major.minor.patch" form used
// for version comparison across the host/co-processor boundary.
func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersionResponse parses the payload of a GetFirmwareVersion response.
//
// Payload format (VersionResponseSize bytes, little-endian):
//
//	[MAJOR(4)][MINOR(4)][PATCH(4)]
func ParseVersionResponse(payload []byte) (FirmwareVersion, error) {
	if len(payload) != VersionResponseSize {
		return FirmwareVersion{}, fmt.Errorf("invalid version response length: got %d bytes, expected %d",
			len(payload), VersionResponseSize)
	}
	return FirmwareVersion{
		Major: binary.LittleEndian.Uint32(payload[0:4]),
		Minor: binary.LittleEndian.Uint32(payload[4:8]),
		Patch: binary.LittleEndian.Uint32(payload[8:12]),
	}, nil
}
