package nrg

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/nrg/internal/types"
)

// ExtractOptions configures raw audio extraction.
type ExtractOptions struct {
	// StripSubchannel drops the trailing 96 subchannel bytes of each
	// oversized sector, leaving the 2352-byte audio payload. For tracks
	// already stored at 2352 bytes per sector this is a no-op, not an
	// error.
	StripSubchannel bool
}

// ExtractAudio copies every sector of every track, in track order, from
// the image reader into w. The result is a headerless stream of 16-bit
// little-endian signed PCM at 44100 Hz, 2 channels (with per-sector
// subchannel data appended unless stripped).
//
// Extraction is streaming: one sector buffer is reused and the image is
// never loaded into memory. r must read from the same image file the Image
// was parsed from; it is typically the same *os.File.
//
// A sector read returning fewer bytes than requested yields a
// *ShortReadError and aborts the extraction. Partial output already
// written to w is not cleaned up; that is the caller's responsibility.
//
// Returns the number of bytes written.
func (img *Image) ExtractAudio(r io.ReaderAt, w io.Writer, opts ExtractOptions) (int64, error) {
	tracks := img.Tracks()

	bufSize := SectorSize
	for _, t := range tracks {
		if t.SectorSize > bufSize {
			bufSize = t.SectorSize
		}
	}
	buf := make([]byte, bufSize)

	var written int64
	for _, t := range tracks {
		sector := buf[:t.SectorSize]
		out := sector
		if opts.StripSubchannel && t.SectorSize == SectorSizeSub {
			out = sector[:SectorSize]
		}

		for s := int64(0); s < t.Sectors; s++ {
			off := t.Offset + s*int64(t.SectorSize)
			n, err := r.ReadAt(sector, off)
			if n < len(sector) {
				return written, &types.ShortReadError{
					Path:   img.Path,
					Track:  t.Number,
					Sector: s,
					Offset: off,
					Want:   len(sector),
					Got:    n,
				}
			}
			if err != nil && err != io.EOF {
				return written, fmt.Errorf("read track %d sector %d: %w", t.Number, s, err)
			}

			n, err = w.Write(out)
			written += int64(n)
			if err != nil {
				return written, fmt.Errorf("write track %d sector %d: %w", t.Number, s, err)
			}
		}
	}
	return written, nil
}

// ExtractAll produces both artifacts in one call: the cue sheet (written
// to cueW, referencing audioName) and the raw audio stream (written to
// audioW).
//
// The two passes share the immutable Image and the io.ReaderAt, neither of
// which is mutated, so they run concurrently. io.ReaderAt is safe for
// parallel use by contract.
func (img *Image) ExtractAll(r io.ReaderAt, audioName string, cueW, audioW io.Writer, opts ExtractOptions) error {
	var g errgroup.Group

	g.Go(func() error {
		sheet, err := img.CueSheet(audioName)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cueW, sheet)
		return err
	})

	g.Go(func() error {
		_, err := img.ExtractAudio(r, audioW, opts)
		return err
	})

	return g.Wait()
}
