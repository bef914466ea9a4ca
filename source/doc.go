// Package source provides firmware source adapters: the places an update
// image can come from.
//
// Three adapters implement the Source interface:
//
//   - File - a firmware file on the local filesystem
//   - Partition - a fixed window of random-access storage
//   - HTTPS - a streaming download
//
// Each yields the same contract to the OTA core: a non-consuming header
// prefix (used to parse the image structure before committing to a
// transfer) and a sequential byte stream. The adapter is chosen at runtime
// by configuration, not at build time.
//
//	src := source.NewFile("/spiffs/slave_fw.bin")
//	if err := src.Open(ctx); err != nil {
//	    ...
//	}
//	defer src.Close()
package source
