package ota

// DefaultChunkSize is the default per-write chunk size. It stays under the
// transport MTU so one chunk always fits one frame, and keeps individual
// writes small enough that concurrent event traffic on the shared link is
// not starved. Tunable, not a protocol constant.
const DefaultChunkSize = 1500

// DefaultHeaderProbeSize is the initial prefix requested from the source
// for header parsing. Grown automatically when an image declares more
// segment headers than the probe covers.
const DefaultHeaderProbeSize = 4096

// Config holds the updater configuration.
type Config struct {
	// ProgressCallback is called during the update to report progress
	// (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ChunkSize is the number of image bytes sent per write call
	ChunkSize int

	// HeaderProbeSize is the initial header prefix requested from the source
	HeaderProbeSize int

	// SkipIfSameVersion skips the transfer when the co-processor already
	// runs the image's version. Disabled deployments intentionally
	// re-flash identical versions.
	SkipIfSameVersion bool

	// HostVersion, when non-empty, enables the advisory host/co-processor
	// compatibility warning. It is the host library's own version string.
	HostVersion string
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ChunkSize:         DefaultChunkSize,
		HeaderProbeSize:   DefaultHeaderProbeSize,
		SkipIfSameVersion: true,
	}
}

// Option is a functional option for configuring the Updater.
type Option func(*Config)

// WithProgressCallback sets a callback function to track update progress.
//
// Example:
//
//	up := ota.NewUpdater(client,
//	    ota.WithProgressCallback(func(p ota.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for updater operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithChunkSize sets the per-write chunk size. Values above the transport
// MTU or below 1 are ignored.
//
// Example:
//
//	up := ota.NewUpdater(client, ota.WithChunkSize(1400))
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size > 0 && size <= maxChunkSize {
			c.ChunkSize = size
		}
	}
}

// WithHeaderProbeSize sets the initial header prefix requested from the
// firmware source.
func WithHeaderProbeSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.HeaderProbeSize = size
		}
	}
}

// WithSkipIfSameVersion enables or disables the version-skip policy.
// Default is true.
func WithSkipIfSameVersion(skip bool) Option {
	return func(c *Config) {
		c.SkipIfSameVersion = skip
	}
}

// WithHostVersion supplies the host's own version string, enabling the
// advisory host/co-processor compatibility warning. The warning never
// blocks an update.
func WithHostVersion(version string) Option {
	return func(c *Config) {
		c.HostVersion = version
	}
}
