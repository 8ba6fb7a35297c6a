package types

import "fmt"

// UnsupportedVersionError is returned when the image footer identifies a
// container version other than NRG v2. v1 images carry a narrower footer
// layout and are rejected outright rather than best-effort parsed.
type UnsupportedVersionError struct {
	Path    string
	Version int    // detected version, 0 if unknown
	Tag     string // footer tag that was found, if any
}

func (e *UnsupportedVersionError) Error() string {
	if e.Version > 0 {
		return fmt.Sprintf("%s: NRG v%d images are not supported (v2 only)", e.Path, e.Version)
	}
	return fmt.Sprintf("%s: not an NRG v2 image (footer tag %q)", e.Path, e.Tag)
}

// TruncatedError is returned when the file is shorter than a structurally
// required region, such as the fixed-size footer.
type TruncatedError struct {
	Path string
	What string
	Size int64
	Need int64
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: file truncated: %d bytes, need at least %d for %s",
		e.Path, e.Size, e.Need, e.What)
}

// MalformedChunkError is returned when a chunk's declared length is
// inconsistent with the file bounds or with the payload shape its tag
// requires.
type MalformedChunkError struct {
	Path   string
	Tag    string
	Offset int64 // offset of the chunk header in the image
	Reason string
}

func (e *MalformedChunkError) Error() string {
	return fmt.Sprintf("%s: malformed %s chunk at offset %d: %s",
		e.Path, e.Tag, e.Offset, e.Reason)
}

// LayoutError is returned when decoded chunks violate track or index
// invariants: overlapping tracks, non-increasing track numbers, unsupported
// sector sizes, missing index 1, and so on.
type LayoutError struct {
	Path   string
	Track  int // 0 when the violation is not tied to one track
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Track > 0 {
		return fmt.Sprintf("%s: inconsistent layout: track %d: %s", e.Path, e.Track, e.Reason)
	}
	return fmt.Sprintf("%s: inconsistent layout: %s", e.Path, e.Reason)
}

// ShortReadError is returned when the byte source yields fewer bytes than a
// sector copy requested during extraction. It signals a truncated or corrupt
// image and aborts the whole extraction.
type ShortReadError struct {
	Path   string
	Track  int
	Sector int64
	Offset int64
	Want   int
	Got    int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("%s: short read on track %d sector %d at offset %d: got %d bytes, expected %d",
		e.Path, e.Track, e.Sector, e.Offset, e.Got, e.Want)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent building a usable track
// layout but may indicate unusual or damaged data. Examples include:
//   - a recognized chunk with an unexpected payload length
//   - more than one session chunk (multisession image)
//   - nonzero padding bytes in cue entries
//
// Warnings are collected in Image.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "footer", "chunks", "layout"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
