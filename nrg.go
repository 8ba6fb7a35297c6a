package nrg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/simonhull/nrg/internal/binary"
	"github.com/simonhull/nrg/internal/chunk"
	"github.com/simonhull/nrg/internal/types"
)

// Open opens an NRG v2 image file and parses its metadata chain.
//
// Open reads only the footer and the metadata chunks, never the audio
// data: the returned Image describes the track layout, and the audio bytes
// are streamed later by ExtractAudio from a reader the caller supplies.
//
// If the image contains unusual but tolerable data (an unrecognized chunk
// type, a multisession marker), Open returns a usable Image with the
// issues collected in Image.Warnings. Structural violations are fatal.
//
// Options can be provided to customize parsing behavior:
//
//	img, err := nrg.Open("disc.nrg", nrg.WithStrictChunks())
//
// Example:
//
//	img, err := nrg.Open("disc.nrg")
//	if err != nil {
//		return err
//	}
//	sheet, err := img.CueSheet("disc.raw")
func Open(path string, opts ...Option) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}

	return OpenReader(f, stat.Size(), path, opts...)
}

// OpenContext opens an image with context support for cancellation.
//
// This is a thin wrapper around Open() that checks context before starting.
// Parsing touches only the small metadata chain, so per-chunk cancellation
// is not worth the plumbing; extraction is cancellable at sector
// granularity by the caller simply not issuing further reads.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenReader parses an image from an io.ReaderAt of known size.
//
// The reader is only used during the call; the returned Image holds no
// reference to it.
func OpenReader(r io.ReaderAt, size int64, path string, opts ...Option) (*Image, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	sr := binary.NewSafeReader(r, size, path)
	start, err := chunk.LocateChain(sr)
	if err != nil {
		return nil, err
	}

	img := &Image{
		Path:        path,
		Size:        size,
		Version:     2,
		ChunkOffset: start,
	}

	// Walk the chain, decoding each chunk as it is visited. A recognized
	// chunk with an unexpected payload shape degrades to opaque retention
	// and a warning; the walk continues so one damaged chunk cannot hide
	// an otherwise usable layout. Whether that degradation is acceptable
	// is decided after folding: without a usable geometry chunk the first
	// decode error becomes the result.
	registry := chunk.NewRegistry()
	walker := chunk.NewWalker(sr, start)
	var firstDecodeErr error
	for walker.Next() {
		h := walker.Chunk()
		dec, err := registry.Decode(sr, h)
		if err != nil {
			if firstDecodeErr == nil {
				firstDecodeErr = err
			}
			reason := err.Error()
			var mce *types.MalformedChunkError
			if errors.As(err, &mce) {
				reason = mce.Reason
			}
			img.warn("chunks", fmt.Sprintf("%s chunk retained undecoded: %s", h.Tag, reason), h.Offset)
			logger.Debug("chunk degraded to opaque", "tag", h.Tag, "offset", h.Offset, "reason", reason)
			img.Chunks = append(img.Chunks, ChunkInfo{Tag: h.Tag, Offset: h.Offset, Length: h.Length, Known: false})
			img.decoded = append(img.decoded, &chunk.Opaque{Tag: h.Tag, Offset: h.Offset, Length: h.Length})
			continue
		}

		_, opaque := dec.(*chunk.Opaque)
		if opaque {
			logger.Debug("unrecognized chunk retained", "tag", h.Tag, "offset", h.Offset, "length", h.Length)
		}
		img.Chunks = append(img.Chunks, ChunkInfo{Tag: h.Tag, Offset: h.Offset, Length: h.Length, Known: !opaque})
		img.decoded = append(img.decoded, dec)
	}
	if err := walker.Err(); err != nil {
		return nil, err
	}

	if err := img.fold(firstDecodeErr); err != nil {
		return nil, err
	}

	if options.strictChunks && len(img.Warnings) > 0 {
		return nil, fmt.Errorf("strict chunk checking failed: %s", img.Warnings[0].Message)
	}
	if options.ignoreWarnings {
		img.Warnings = nil
	}

	return img, nil
}

// warn records a non-fatal issue.
func (img *Image) warn(stage, message string, offset int64) {
	img.Warnings = append(img.Warnings, Warning{Stage: stage, Message: message, Offset: offset})
}

// fold merges the decoded chunks into the session/track model and validates
// it. firstDecodeErr is the error of the first recognized chunk that failed
// to decode, returned verbatim when no usable geometry survived.
func (img *Image) fold(firstDecodeErr error) error {
	var dao *chunk.DAO
	var cue *chunk.Cue
	var sessionTracks uint32
	sessionChunks := 0

	for _, d := range img.decoded {
		switch c := d.(type) {
		case *chunk.DAO:
			if dao != nil {
				img.warn("chunks", "multiple DAOX geometry chunks, using the first", 0)
				continue
			}
			dao = c
			if c.Padding != 0 {
				img.warn("chunks", fmt.Sprintf("DAOX padding byte is %d, expected 0", c.Padding), 0)
			}
		case *chunk.Cue:
			if cue != nil {
				img.warn("chunks", "multiple CUEX chunks, using the first", 0)
				continue
			}
			cue = c
			for _, p := range c.Points {
				if p.Padding != 0 {
					img.warn("chunks", fmt.Sprintf("cue point for track %d has nonzero padding", p.Track), 0)
				}
			}
		case *chunk.Session:
			sessionChunks++
			if sessionChunks == 1 {
				sessionTracks = c.TrackCount
			} else {
				img.warn("chunks", "multisession image: additional sessions are not merged", 0)
			}
		}
	}

	if dao == nil {
		if firstDecodeErr != nil {
			return firstDecodeErr
		}
		return &types.LayoutError{Path: img.Path, Reason: "no DAOX geometry chunk"}
	}

	base := int(dao.FirstTrack)
	if base < 1 {
		base = 1
	}

	session := Session{Tracks: make([]Track, 0, len(dao.Tracks))}
	var startSector int64
	for i, dt := range dao.Tracks {
		num := base + i

		if dt.SectorSize != SectorSize && dt.SectorSize != SectorSizeSub {
			return &types.LayoutError{
				Path: img.Path, Track: num,
				Reason: fmt.Sprintf("unsupported sector size %d", dt.SectorSize),
			}
		}
		extent := dt.End - dt.Pregap
		if extent <= 0 || extent%int64(dt.SectorSize) != 0 {
			return &types.LayoutError{
				Path: img.Path, Track: num,
				Reason: fmt.Sprintf("track extent of %d bytes is not a whole number of %d-byte sectors", extent, dt.SectorSize),
			}
		}
		if dt.Start < dt.Pregap || dt.Start > dt.End || (dt.Start-dt.Pregap)%int64(dt.SectorSize) != 0 {
			return &types.LayoutError{
				Path: img.Path, Track: num,
				Reason: "pregap boundary is inconsistent with the track extent",
			}
		}
		if dt.Unknown != 0x0001 {
			img.warn("chunks", fmt.Sprintf("DAOX track %d unknown field is 0x%04X, expected 0x0001", num, dt.Unknown), 0)
		}

		t := Track{
			Number:      num,
			ISRC:        dt.ISRC,
			SectorSize:  dt.SectorSize,
			DataMode:    dt.DataMode,
			Offset:      dt.Pregap,
			Sectors:     extent / int64(dt.SectorSize),
			StartSector: startSector,
		}
		t.Indexes = trackIndexes(dt, num, cue)
		startSector += t.Sectors
		session.Tracks = append(session.Tracks, t)
	}
	img.Sessions = []Session{session}

	if sessionChunks > 0 && int(sessionTracks) != len(session.Tracks) {
		img.warn("layout", fmt.Sprintf("session chunk declares %d tracks, geometry has %d", sessionTracks, len(session.Tracks)), 0)
	}

	return img.validate()
}

// trackIndexes derives a track's index points. Cue chunk entries take
// precedence; without them (or without an index 1 entry) the geometry
// synthesizes index 1 at the pregap boundary, preceded by index 0 when a
// pregap exists.
func trackIndexes(dt chunk.DAOTrack, num int, cue *chunk.Cue) []IndexPoint {
	if cue != nil {
		if idx := cueIndexes(cue, num); idx != nil {
			return idx
		}
	}

	pregapSectors := (dt.Start - dt.Pregap) / int64(dt.SectorSize)
	if pregapSectors > 0 {
		return []IndexPoint{{Number: 0, Sector: 0}, {Number: 1, Sector: pregapSectors}}
	}
	return []IndexPoint{{Number: 1, Sector: 0}}
}

// cueIndexes extracts one track's index points from the cue chunk,
// relativized against the track's first marker. Lead-in and lead-out
// entries and negative positions are ignored, and an index 0 at or past
// index 1 (no pregap) is dropped. Returns nil when the chunk has no usable
// index 1 for the track.
func cueIndexes(cue *chunk.Cue, num int) []IndexPoint {
	var points []chunk.CuePoint
	for _, p := range cue.Points {
		if p.Track == 0 || p.Track == 0xAA || int(p.Track) != num {
			continue
		}
		if p.Position < 0 {
			continue
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Index < points[j].Index })

	var pos1 int32
	found1 := false
	for _, p := range points {
		if p.Index == 1 {
			pos1 = p.Position
			found1 = true
			break
		}
	}
	if !found1 {
		return nil
	}

	base := pos1
	var indexes []IndexPoint
	seen := make(map[int]bool)
	for _, p := range points {
		if seen[int(p.Index)] {
			continue
		}
		if p.Index < 1 && p.Position >= pos1 {
			// An index 0 that does not precede index 1 marks no pregap.
			continue
		}
		if p.Index < 1 && p.Position < base {
			base = p.Position
		}
		seen[int(p.Index)] = true
		indexes = append(indexes, IndexPoint{Number: int(p.Index), Sector: int64(p.Position)})
	}

	for i := range indexes {
		indexes[i].Sector -= int64(base)
	}
	return indexes
}
