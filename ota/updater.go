package ota

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-esphota/espimage"
	"github.com/moffa90/go-esphota/protocol"
	"github.com/moffa90/go-esphota/rpc"
	"github.com/moffa90/go-esphota/source"
)

// maxChunkSize bounds WithChunkSize: one chunk must fit one frame.
const maxChunkSize = protocol.MaxPayloadSize

// Updater orchestrates one firmware update to the co-processor: header
// parsing, version policy, and the chunked Begin/Write/End transfer.
//
// A single Updater drives at most one session at a time; the transfer
// itself runs on the calling goroutine and blocks on every chunk
// acknowledgement.
type Updater struct {
	client  *rpc.Client
	config  Config
	session *Session
}

// NewUpdater creates an Updater over the given dispatcher.
//
// Example:
//
//	up := ota.NewUpdater(client,
//	    ota.WithChunkSize(1400),
//	    ota.WithProgressCallback(progressFunc),
//	)
func NewUpdater(client *rpc.Client, opts ...Option) *Updater {
	if client == nil {
		panic("client cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Updater{
		client: client,
		config: cfg,
	}
}

// Update performs the complete transfer sequence:
//  1. Parse the image header from the source to derive the exact image
//     size and embedded version
//  2. Apply the version policy: skip when the co-processor already runs
//     this version (if enabled), warn on host/co-processor incompatibility
//  3. Begin, stream chunks, End
//
// The source must already be open. Update returns ResultNotRequired,
// ResultCompleted or ResultFailed; activation is a separate, explicit call.
// Any fatal error aborts the whole session: the caller retries the entire
// transfer or not at all.
func (u *Updater) Update(ctx context.Context, src source.Source) (Result, error) {
	startTime := time.Now()

	u.reportProgress(Progress{Phase: PhaseParsing})

	img, err := u.parseImage(src)
	if err != nil {
		return ResultFailed, err
	}

	u.logInfo("firmware image parsed",
		"size", img.TotalSize,
		"segments", img.SegmentCount,
		"version", img.Version,
		"hash_appended", img.HashAppended,
	)

	if result, done := u.checkVersions(ctx, img); done {
		return result, nil
	}

	u.reportProgress(Progress{Phase: PhaseBegin, TotalBytes: img.TotalSize})

	sess := NewSession(u.client)
	u.session = sess

	if err := sess.Begin(ctx, img.TotalSize); err != nil {
		return ResultFailed, err
	}

	chunk := make([]byte, u.config.ChunkSize)
	for sess.BytesSent() < img.TotalSize {
		want := u.config.ChunkSize
		if remain := img.TotalSize - sess.BytesSent(); remain < want {
			want = remain
		}

		n, err := io.ReadFull(src, chunk[:want])
		if err != nil {
			sess.Fail()
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return ResultFailed, &SizeMismatchError{
					Expected: img.TotalSize,
					Actual:   sess.BytesSent() + n,
				}
			}
			return ResultFailed, fmt.Errorf("read firmware source: %w", err)
		}

		if err := sess.Write(ctx, chunk[:n]); err != nil {
			return ResultFailed, err
		}

		u.reportProgress(Progress{
			Phase:        PhaseTransfer,
			BytesWritten: sess.BytesSent(),
			TotalBytes:   img.TotalSize,
			Percentage:   float64(sess.BytesSent()) * 100 / float64(img.TotalSize),
			Chunks:       sess.Chunks(),
			Elapsed:      time.Since(startTime),
		})
	}

	u.reportProgress(Progress{
		Phase:        PhaseEnd,
		BytesWritten: sess.BytesSent(),
		TotalBytes:   img.TotalSize,
		Percentage:   100,
		Chunks:       sess.Chunks(),
		Elapsed:      time.Since(startTime),
	})

	if err := sess.End(ctx); err != nil {
		return ResultFailed, err
	}

	u.reportProgress(Progress{
		Phase:        PhaseComplete,
		BytesWritten: sess.BytesSent(),
		TotalBytes:   img.TotalSize,
		Percentage:   100,
		Chunks:       sess.Chunks(),
		Elapsed:      time.Since(startTime),
	})

	u.logInfo("transfer complete",
		"bytes", sess.BytesSent(),
		"chunks", sess.Chunks(),
		"elapsed", time.Since(startTime).String(),
	)

	return ResultCompleted, nil
}

// Activate switches the co-processor to the staged firmware and reboots
// it. Only valid after a completed Update. The host should restart shortly
// afterward: RPC state on both sides assumes a single continuous session.
func (u *Updater) Activate(ctx context.Context) (Result, error) {
	if u.session == nil {
		return ResultNotStarted, &StateError{Operation: "activate", State: StateIdle}
	}
	if err := u.session.Activate(ctx); err != nil {
		var se *StateError
		if errors.As(err, &se) {
			// Rejected locally; the session state is unchanged
			return ResultNotStarted, err
		}
		return ResultFailed, err
	}
	u.logInfo("co-processor activating new firmware, host should restart soon")
	return ResultActivated, nil
}

// Session returns the current or last update session, or nil before the
// first Update.
func (u *Updater) Session() *Session {
	return u.session
}

// parseImage probes the source header prefix and parses it, growing the
// probe when the image declares more segment headers than the prefix
// covers.
func (u *Updater) parseImage(src source.Source) (*espimage.Image, error) {
	probe := u.config.HeaderProbeSize
	for {
		hdr, err := src.HeaderBytes(probe)
		if err != nil {
			return nil, fmt.Errorf("read image header: %w", err)
		}

		img, err := espimage.Parse(hdr)
		if err == nil {
			return img, nil
		}

		var tr *espimage.TruncatedError
		if errors.As(err, &tr) && len(hdr) == probe && tr.Need > probe {
			// The source had all the bytes we asked for; ask for more
			u.logDebug("growing header probe", "need", tr.Need)
			probe = tr.Need
			continue
		}
		return nil, err
	}
}

// checkVersions applies the skip policy and the advisory compatibility
// warning. Returns (ResultNotRequired, true) when the transfer should be
// skipped. A failed version query never blocks the update.
func (u *Updater) checkVersions(ctx context.Context, img *espimage.Image) (Result, bool) {
	if !u.config.SkipIfSameVersion && u.config.HostVersion == "" {
		return ResultNotStarted, false
	}

	u.reportProgress(Progress{Phase: PhaseVersionCheck, TotalBytes: img.TotalSize})

	coprocVer, err := u.client.FirmwareVersion(ctx)
	if err != nil {
		u.logWarn("could not query co-processor firmware version, proceeding with update", "error", err.Error())
		return ResultNotStarted, false
	}

	u.logInfo("co-processor firmware version", "running", coprocVer.String(), "new", img.Version)

	if u.config.HostVersion != "" {
		// Advisory only: a mismatch warns and never blocks
		cmp, err := compareCompatibility(u.config.HostVersion, coprocVer)
		switch {
		case err != nil:
			u.logWarn("host version not comparable", "host", u.config.HostVersion, "error", err.Error())
		case cmp > 0:
			u.logWarn("host is newer than co-processor; some requests may time out or be unsupported",
				"host", u.config.HostVersion, "coprocessor", coprocVer.String())
		case cmp < 0:
			u.logWarn("host is older than co-processor and may not be compatible",
				"host", u.config.HostVersion, "coprocessor", coprocVer.String())
		}
	}

	// Skip comparison is string equality of the rendered form, matching
	// the co-processor's own reporting
	if u.config.SkipIfSameVersion &&
		img.Version != espimage.VersionUnknown &&
		img.Version == coprocVer.String() {
		u.logInfo("co-processor already runs this version, skipping update", "version", img.Version)
		return ResultNotRequired, true
	}

	return ResultNotStarted, false
}

// reportProgress calls the progress callback if configured.
func (u *Updater) reportProgress(progress Progress) {
	if u.config.ProgressCallback != nil {
		u.config.ProgressCallback(progress)
	}
}

func (u *Updater) logDebug(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (u *Updater) logInfo(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Info(msg, keysAndValues...)
	}
}

func (u *Updater) logWarn(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Warn(msg, keysAndValues...)
	}
}
