package protocol

import (
	"bytes"
	"testing"
)

func TestBuildOtaBeginFrame(t *testing.T) {
	f := BuildOtaBeginFrame(0, 0x01020304)
	if f.Type != FrameControl || f.Code != CmdOtaBegin {
		t.Fatalf("header = (0x%02X, 0x%02X), want control/begin", f.Type, f.Code)
	}
	if !bytes.Equal(f.Payload, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Errorf("size payload = % X, want little-endian 0x01020304", f.Payload)
	}

	if f := BuildOtaBeginFrame(0, 0); f.Payload != nil {
		t.Errorf("zero size should omit the payload, got % X", f.Payload)
	}
}

func TestBuildOtaWriteFrame(t *testing.T) {
	chunk := bytes.Repeat([]byte{0x5A}, 1400)
	f, err := BuildOtaWriteFrame(9, chunk)
	if err != nil {
		t.Fatalf("BuildOtaWriteFrame failed: %v", err)
	}
	if f.Type != FrameData || f.Code != CmdOtaWrite || f.Seq != 9 {
		t.Errorf("header = (0x%02X, 0x%02X, %d)", f.Type, f.Code, f.Seq)
	}
	if !bytes.Equal(f.Payload, chunk) {
		t.Error("payload does not match chunk")
	}

	if _, err := BuildOtaWriteFrame(0, nil); err == nil {
		t.Error("expected error for empty chunk")
	}
	if _, err := BuildOtaWriteFrame(0, make([]byte, MaxPayloadSize+1)); err == nil {
		t.Error("expected error for chunk above MTU")
	}
}

func TestControlFrameBuilders(t *testing.T) {
	tests := []struct {
		name string
		f    *Frame
		code byte
	}{
		{"end", BuildOtaEndFrame(1), CmdOtaEnd},
		{"activate", BuildOtaActivateFrame(2), CmdOtaActivate},
		{"version query", BuildVersionQueryFrame(3), CmdGetFirmwareVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.f.Type != FrameControl {
				t.Errorf("type = 0x%02X, want FrameControl", tt.f.Type)
			}
			if tt.f.Code != tt.code {
				t.Errorf("code = 0x%02X, want 0x%02X", tt.f.Code, tt.code)
			}
			if len(tt.f.Payload) != 0 {
				t.Errorf("unexpected payload: % X", tt.f.Payload)
			}
		})
	}
}

func TestParseVersionResponse(t *testing.T) {
	payload := []byte{
		0x02, 0x00, 0x00, 0x00, // major = 2
		0x06, 0x00, 0x00, 0x00, // minor = 6
		0x01, 0x00, 0x00, 0x00, // patch = 1
	}
	v, err := ParseVersionResponse(payload)
	if err != nil {
		t.Fatalf("ParseVersionResponse failed: %v", err)
	}
	if v.Major != 2 || v.Minor != 6 || v.Patch != 1 {
		t.Errorf("version = %+v, want 2.6.1", v)
	}
	if v.String() != "2.6.1" {
		t.Errorf("String() = %q, want %q", v.String(), "2.6.1")
	}

	if _, err := ParseVersionResponse(payload[:8]); err == nil {
		t.Error("expected error for short payload")
	}
}

func TestProtocolErrorMessage(t *testing.T) {
	err := &ProtocolError{Operation: "ota begin", Status: ErrNoStagingSpace}
	want := "ota begin failed: insufficient staging space (0x03)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsProtocolError(err) {
		t.Error("IsProtocolError should be true")
	}
}

func TestStatusNameCoversUnknownCodes(t *testing.T) {
	if got := StatusName(0xEE); got != "unknown status code 0xEE" {
		t.Errorf("StatusName(0xEE) = %q", got)
	}
}
