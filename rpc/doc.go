// Package rpc dispatches requests to the co-processor and demultiplexes
// its asynchronous events.
//
// The Client serializes structured requests (OTA control calls, version
// queries) over a single shared link: one request is outstanding at a time,
// and each call blocks until the matching response frame arrives or a
// timeout fires. Event frames arriving between responses flow through a
// bounded queue to handlers registered with OnEvent, so a burst of large
// OTA writes cannot starve event delivery.
//
//	client := rpc.New(port)
//	client.OnEvent(protocol.EventInitialized, func(code byte, _ []byte) {
//	    log.Println("co-processor ready")
//	})
//	client.Start()
//	defer client.Close()
//
//	if err := client.OtaBegin(ctx, uint32(img.TotalSize)); err != nil {
//	    ...
//	}
package rpc
