package nrg

import (
	"fmt"

	"github.com/simonhull/nrg/internal/chunk"
	"github.com/simonhull/nrg/internal/types"
)

// Sector geometry of CD digital audio.
const (
	// SectorSize is the audio payload size of one sector in bytes.
	SectorSize = 2352

	// SectorSizeSub is the oversized sector variant: the audio payload
	// followed by 96 bytes of subchannel data.
	SectorSizeSub = 2448

	// SubchannelSize is the trailing subchannel portion of an oversized
	// sector.
	SubchannelSize = SectorSizeSub - SectorSize

	// SectorsPerSecond is the Red Book playback rate. Cue sheet timecodes
	// count sectors at this rate regardless of the on-disk sector size.
	SectorsPerSecond = 75
)

// Image is the parsed result for one NRG v2 container.
//
// Image is read-only after Open: the cue sheet generator and the raw audio
// extractor are independent consumers of the same model and may safely run
// in parallel.
type Image struct {
	// Path of the image file (informational, used in error messages)
	Path string

	// Size of the image file in bytes
	Size int64

	// Version of the container format (always 2)
	Version int

	// ChunkOffset is the absolute offset of the first metadata chunk. The
	// audio data extent ends here.
	ChunkOffset int64

	// Chunks lists every chunk of the metadata chain in file order,
	// including ones that were retained undecoded.
	Chunks []ChunkInfo

	// Sessions of the disc, each holding its tracks in order. Exactly one
	// session is expected; additional session markers are reported in
	// Warnings rather than merged.
	Sessions []Session

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning

	// Decoded chunk values, kept for informational rendering
	decoded []chunk.Decoded
}

// ChunkInfo describes one raw chunk of the metadata chain.
type ChunkInfo struct {
	Tag    string
	Offset int64 // offset of the chunk header within the image
	Length int64 // payload length in bytes
	Known  bool  // whether the chunk was decoded into a typed value
}

// Session is one or more tracks recorded together.
type Session struct {
	Tracks []Track
}

// Track is a contiguous audio region of the image.
type Track struct {
	// Number is the 1-based track number, unique per session.
	Number int

	// ISRC is the track's recording code, empty if not set.
	ISRC string

	// SectorSize is the on-disk size of each sector: SectorSize or
	// SectorSizeSub.
	SectorSize int

	// DataMode is the raw mode field from the geometry chunk.
	DataMode uint16

	// Offset is the absolute byte offset of the track's first sector
	// (the start of its pregap when one is present).
	Offset int64

	// Sectors is the track length in sectors, pregap included.
	Sectors int64

	// StartSector is the position of the track's first sector within the
	// extracted audio stream: the sum of all prior tracks' lengths.
	StartSector int64

	// Indexes holds the track's cue markers ordered by index number.
	// Index 1 is always present; index 0 precedes it when the track has a
	// pregap.
	Indexes []IndexPoint
}

// IndexPoint is a cue marker within a track. Index 0 marks the pregap
// start and index 1 the track start, by convention.
type IndexPoint struct {
	Number int
	Sector int64 // sector offset relative to the track start
}

// Length returns the track's extent in the image in bytes.
func (t Track) Length() int64 {
	return t.Sectors * int64(t.SectorSize)
}

// AudioBytes returns the number of audio payload bytes the track
// contributes to an extracted stream when subchannel data is stripped.
func (t Track) AudioBytes() int64 {
	return t.Sectors * SectorSize
}

// Tracks returns all tracks of all sessions in disc order.
func (img *Image) Tracks() []Track {
	var tracks []Track
	for _, s := range img.Sessions {
		tracks = append(tracks, s.Tracks...)
	}
	return tracks
}

// validate checks the model invariants after folding: strictly increasing
// track numbers, non-overlapping monotonically increasing byte ranges,
// supported sector sizes, and well-formed index points. Any violation is
// fatal.
func (img *Image) validate() error {
	tracks := img.Tracks()
	if len(tracks) == 0 {
		return &types.LayoutError{Path: img.Path, Reason: "image has no tracks"}
	}

	prevNumber := 0
	prevEnd := int64(-1)
	for _, t := range tracks {
		if t.Number <= prevNumber {
			return &types.LayoutError{
				Path: img.Path, Track: t.Number,
				Reason: "track numbers are not strictly increasing",
			}
		}
		prevNumber = t.Number

		if t.SectorSize != SectorSize && t.SectorSize != SectorSizeSub {
			return &types.LayoutError{
				Path: img.Path, Track: t.Number,
				Reason: fmt.Sprintf("unsupported sector size %d", t.SectorSize),
			}
		}
		if t.Sectors <= 0 {
			return &types.LayoutError{
				Path: img.Path, Track: t.Number,
				Reason: "track has no sectors",
			}
		}
		if t.Offset < prevEnd {
			return &types.LayoutError{
				Path: img.Path, Track: t.Number,
				Reason: "track overlaps the previous track",
			}
		}
		prevEnd = t.Offset + t.Length()
		if prevEnd > img.ChunkOffset {
			return &types.LayoutError{
				Path: img.Path, Track: t.Number,
				Reason: "track extends past the image data extent",
			}
		}

		if err := validateIndexes(img.Path, t); err != nil {
			return err
		}
	}
	return nil
}

// validateIndexes checks one track's cue markers: index numbers unique and
// increasing, sector offsets non-decreasing and within the track, index 1
// present.
func validateIndexes(path string, t Track) error {
	hasIndex1 := false
	prevNumber := -1
	prevSector := int64(-1)
	for _, idx := range t.Indexes {
		if idx.Number <= prevNumber {
			return &types.LayoutError{
				Path: path, Track: t.Number,
				Reason: "index numbers are not strictly increasing",
			}
		}
		prevNumber = idx.Number

		if idx.Sector < prevSector {
			return &types.LayoutError{
				Path: path, Track: t.Number,
				Reason: "index sector offsets are not non-decreasing",
			}
		}
		prevSector = idx.Sector

		if idx.Sector < 0 || idx.Sector >= t.Sectors {
			return &types.LayoutError{
				Path: path, Track: t.Number,
				Reason: "index points outside the track",
			}
		}
		if idx.Number == 1 {
			hasIndex1 = true
		}
	}
	if !hasIndex1 {
		return &types.LayoutError{
			Path: path, Track: t.Number,
			Reason: "index 1 is missing",
		}
	}
	return nil
}
