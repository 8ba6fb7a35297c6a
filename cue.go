package nrg

import (
	"fmt"
	"strings"

	"github.com/simonhull/nrg/internal/types"
)

// CueSheet renders the image's track layout as cue sheet text.
//
// The sheet references audioName as the extracted audio file and lists, for
// every track in order, a TRACK entry followed by one INDEX line per index
// point. CueSheet is a pure transformation of the Image: it performs no
// I/O, and writing the returned text to a file is the caller's job.
//
// Timecodes count audio frames at 75 sectors per second regardless of the
// on-disk sector size: an index at absolute sector 150 is 00:02:00 whether
// the image stores 2352- or 2448-byte sectors.
func (img *Image) CueSheet(audioName string) (string, error) {
	tracks := img.Tracks()
	if len(tracks) == 0 {
		return "", &types.LayoutError{Path: img.Path, Reason: "image has no audio tracks"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FILE \"%s\" RAW\n", audioName)
	for _, t := range tracks {
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", t.Number)
		for _, idx := range t.Indexes {
			fmt.Fprintf(&b, "    INDEX %02d %s\n", idx.Number, Timecode(t.StartSector+idx.Sector))
		}
	}
	return b.String(), nil
}

// Timecode formats an absolute sector number as a mm:ss:ff cue sheet
// timecode: 75 frames per second, 60 seconds per minute.
func Timecode(sector int64) string {
	frames := sector % SectorsPerSecond
	seconds := sector / SectorsPerSecond
	minutes := seconds / 60
	seconds %= 60
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}
