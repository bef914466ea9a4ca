// Package protocol implements the wire framing exchanged between the host
// and the co-processor over a serial-style link.
//
// # Frame Format
//
// Every message travels in a fixed-header frame:
//
//	[SOF][TYPE][CMD/STATUS][SEQ][LEN_L][LEN_H][PAYLOAD...][CHECKSUM_L][CHECKSUM_H][EOF]
//
// The TYPE byte separates control requests, bulk OTA data and asynchronous
// event notifications on the shared link. LEN and CHECKSUM are little-endian;
// the checksum is a 16-bit two's-complement summation over TYPE..PAYLOAD.
//
// Host-to-slave frames carry a command code in the third byte; responses
// carry a status code and echo the request's sequence number; event frames
// carry an event code and are not solicited.
//
// # Stream Decoding
//
// Reader decodes frames from a continuous byte stream and resynchronizes by
// scanning for the start-of-frame marker, so a link that drops bytes or
// resumes mid-frame recovers at the next frame boundary:
//
//	r := protocol.NewReader(port)
//	for {
//	    f, err := r.ReadFrame()
//	    ...
//	}
//
// # Errors
//
// Co-processor error statuses surface as *ProtocolError. Framing problems
// (bad markers, length or checksum mismatches) are plain errors produced at
// decode time.
package protocol
