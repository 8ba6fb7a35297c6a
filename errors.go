package nrg

import (
	"github.com/simonhull/nrg/internal/types"
)

// UnsupportedVersionError is an alias to types.UnsupportedVersionError.
// Re-exported from internal/types so internal packages can return it.
type UnsupportedVersionError = types.UnsupportedVersionError

// TruncatedError is an alias to types.TruncatedError.
// Re-exported from internal/types so internal packages can return it.
type TruncatedError = types.TruncatedError

// MalformedChunkError is an alias to types.MalformedChunkError.
// Re-exported from internal/types so internal packages can return it.
type MalformedChunkError = types.MalformedChunkError

// LayoutError is an alias to types.LayoutError.
// Re-exported from internal/types so internal packages can return it.
type LayoutError = types.LayoutError

// ShortReadError is an alias to types.ShortReadError.
// Re-exported from internal/types so internal packages can return it.
type ShortReadError = types.ShortReadError

// Warning is an alias to types.Warning.
// Re-exported from internal/types so internal packages can return it.
type Warning = types.Warning
