package ota

import (
	"testing"

	"github.com/moffa90/go-esphota/protocol"
)

func TestCompareCompatibilityMasksPatch(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		coproc protocol.FirmwareVersion
		want   int
	}{
		{"identical", "2.6.1", protocol.FirmwareVersion{Major: 2, Minor: 6, Patch: 1}, 0},
		{"patch difference ignored", "2.6.9", protocol.FirmwareVersion{Major: 2, Minor: 6, Patch: 0}, 0},
		{"host newer minor", "2.7.0", protocol.FirmwareVersion{Major: 2, Minor: 6, Patch: 5}, 1},
		{"host older minor", "2.5.3", protocol.FirmwareVersion{Major: 2, Minor: 6}, -1},
		{"host newer major", "3.0.0", protocol.FirmwareVersion{Major: 2, Minor: 9}, 1},
		{"host older major", "1.9.9", protocol.FirmwareVersion{Major: 2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareCompatibility(tt.host, tt.coproc)
			if err != nil {
				t.Fatalf("compareCompatibility failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("compareCompatibility(%q, %s) = %d, want %d", tt.host, tt.coproc.String(), got, tt.want)
			}
		})
	}
}

func TestCompareCompatibilityRejectsMalformedHostVersion(t *testing.T) {
	for _, host := range []string{"", "2.6", "not-a-version"} {
		if _, err := compareCompatibility(host, protocol.FirmwareVersion{Major: 2, Minor: 6}); err == nil {
			t.Errorf("compareCompatibility accepted host version %q", host)
		}
	}
}
