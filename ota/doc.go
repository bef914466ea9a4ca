// Package ota drives firmware updates to the co-processor.
//
// # Overview
//
// An update walks a strict sequence: parse the image header to learn the
// exact transfer size and embedded version, apply the version policy, then
// Begin, Write(xN), End over the RPC dispatcher, and finally an explicit
// Activate that reboots the co-processor into the new firmware.
//
// # Basic Usage
//
//	port, err := link.OpenSerial("/dev/ttyUSB0", 921600, time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := rpc.New(port)
//	client.Start()
//	defer client.Close()
//
//	src := source.NewFile("slave_fw.bin")
//	if err := src.Open(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	up := ota.NewUpdater(client)
//	result, err := up.Update(ctx, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result == ota.ResultCompleted {
//	    up.Activate(ctx)
//	    // restart the host shortly afterward
//	}
//
// # Failure Semantics
//
// Begin, Write and End failures are all terminal for the current session:
// there is no per-chunk retry, and a failed session is never resumable. A
// retry re-runs the whole transfer with a fresh Begin, which supersedes any
// partial staging state on the co-processor.
//
// # Version Policy
//
// With the skip policy enabled (default), an image whose embedded version
// equals the co-processor's reported version returns ResultNotRequired
// without a single write call. A co-processor that cannot report its
// version is logged and updated anyway: the query is advisory and the
// system fails open.
//
// # State Enforcement
//
// Session rejects out-of-order operations locally: an Activate before a
// successful End, or a Write after a failure, returns *StateError without
// anything reaching the wire.
package ota
