package protocol

// Frame structure constants.
const (
	// StartOfFrame is the frame start marker
	StartOfFrame = 0x1C

	// EndOfFrame is the frame end marker
	EndOfFrame = 0x17

	// MinFrameSize is the minimum frame size in bytes:
	// SOF(1) + TYPE(1) + CMD/STATUS(1) + SEQ(1) + LEN(2) + CHECKSUM(2) + EOF(1)
	MinFrameSize = 9

	// HeaderSize is the number of bytes before the payload:
	// SOF(1) + TYPE(1) + CMD/STATUS(1) + SEQ(1) + LEN(2)
	HeaderSize = 6

	// TrailerSize is the number of bytes after the payload:
	// CHECKSUM(2) + EOF(1)
	TrailerSize = 3
)

// Frame types. The type byte distinguishes control traffic, bulk OTA data
// and unsolicited event notifications sharing the same link.
const (
	// FrameControl carries a control request or its response
	FrameControl = 0x01

	// FrameData carries one OTA firmware chunk or its acknowledgement
	FrameData = 0x02

	// FrameEvent carries an unsolicited co-processor notification
	FrameEvent = 0x04
)

// Command codes understood by the co-processor.
const (
	// CmdOtaBegin allocates a clean staging area for an incoming image
	CmdOtaBegin = 0x41

	// CmdOtaWrite appends one chunk of image data to the staging area
	CmdOtaWrite = 0x42

	// CmdOtaEnd finalizes the transfer and validates the staged image
	CmdOtaEnd = 0x43

	// CmdOtaActivate switches the boot target and reboots the co-processor
	CmdOtaActivate = 0x44

	// CmdGetFirmwareVersion queries the currently running firmware version
	CmdGetFirmwareVersion = 0x45
)

// Event codes delivered in FrameEvent frames.
const (
	// EventInitialized signals that the co-processor finished booting
	EventInitialized = 0x61

	// EventHeartbeat is a periodic liveness notification
	EventHeartbeat = 0x62

	// EventStationDisconnected signals loss of the co-processor's uplink
	EventStationDisconnected = 0x63
)

// Status codes returned by the co-processor in response frames.
const (
	// StatusSuccess indicates the request was accepted and executed
	StatusSuccess = 0x00

	// ErrNoStagingSpace indicates the staging partition is too small
	ErrNoStagingSpace = 0x03

	// ErrInvalidState indicates the request is not valid in the current
	// co-processor OTA state (e.g. write without a preceding begin)
	ErrInvalidState = 0x04

	// ErrSizeMismatch indicates more bytes arrived than the image declared
	ErrSizeMismatch = 0x05

	// ErrIncompleteImage indicates fewer bytes arrived than the image declared
	ErrIncompleteImage = 0x06

	// ErrChecksum indicates the staged image failed validation
	ErrChecksum = 0x08

	// ErrCommand indicates the command code is not recognized
	ErrCommand = 0x09

	// ErrBusy indicates another request is being serviced
	ErrBusy = 0x0A

	// ErrUnknown indicates an unspecified co-processor failure
	ErrUnknown = 0x0F
)

// MaxPayloadSize is the transport MTU: the largest payload carried by a
// single frame. OTA chunks must not exceed this.
const MaxPayloadSize = 1500

// VersionResponseSize is the payload size of a GetFirmwareVersion response:
// major(4) + minor(4) + patch(4), little-endian.
const VersionResponseSize = 12
