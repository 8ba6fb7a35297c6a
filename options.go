package nrg

import "log/slog"

// Option configures behavior when opening images.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	img, err := nrg.Open("disc.nrg",
//	    nrg.WithStrictChunks(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening images.
type openOptions struct {
	strictChunks   bool         // Fail on any warning
	ignoreWarnings bool         // Suppress all warnings
	logger         *slog.Logger // Structured logging, nil means slog.Default()
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		strictChunks:   false,
		ignoreWarnings: false,
		logger:         nil,
	}
}

// WithStrictChunks treats any warning as a fatal error.
//
// By default, parsing continues when it encounters non-fatal issues such as
// a recognized chunk with an unexpected payload length or a multisession
// marker, collecting them in Image.Warnings.
//
// With strict chunk checking enabled, any warning becomes a fatal error.
//
// Example:
//
//	img, err := nrg.Open("disc.nrg", nrg.WithStrictChunks())
//	// err != nil if ANY issue is encountered
func WithStrictChunks() Option {
	return func(o *openOptions) {
		o.strictChunks = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// By default, warnings about non-fatal issues are collected in
// Image.Warnings. This option discards them.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger used for debug events during parsing, such as
// opaque chunks encountered while walking the chain.
//
// If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}
