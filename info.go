package nrg

import (
	"fmt"
	"strings"

	"github.com/simonhull/nrg/internal/chunk"
)

// Info returns a human-readable rendering of the image's metadata: the
// footer fields and every decoded chunk, followed by the list of chunks
// that were retained undecoded.
func (img *Image) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Image size: %d Bytes\n", img.Size)
	fmt.Fprintf(&b, "NRG format version: %d\n", img.Version)
	fmt.Fprintf(&b, "First chunk offset: %d", img.ChunkOffset)

	var skipped []string
	for _, d := range img.decoded {
		switch c := d.(type) {
		case *chunk.Cue:
			writeCueInfo(&b, c)
		case *chunk.DAO:
			writeDAOInfo(&b, c)
		case *chunk.Session:
			fmt.Fprintf(&b, "\n\nChunk ID: %s\n", chunk.TagSession)
			b.WriteString("Chunk description: Session Information\n")
			fmt.Fprintf(&b, "Number of tracks in the session: %d", c.TrackCount)
		case *chunk.MediaType:
			fmt.Fprintf(&b, "\n\nChunk ID: %s\n", chunk.TagMediaType)
			b.WriteString("Chunk description: Media Type\n")
			fmt.Fprintf(&b, "Value: 0x%08X", c.Value)
		case *chunk.FileNames:
			fmt.Fprintf(&b, "\n\nChunk ID: %s\n", chunk.TagFileNames)
			b.WriteString("Chunk description: Audio File Names")
			for _, name := range c.Names {
				fmt.Fprintf(&b, "\n\t%s", name)
			}
		case *chunk.Opaque:
			skipped = append(skipped, c.Tag)
		}
	}

	if len(skipped) > 0 {
		b.WriteString("\n\nUnhandled chunks present in this image:")
		for _, tag := range skipped {
			b.WriteString(" " + tag)
		}
	}

	if len(img.Warnings) > 0 {
		b.WriteString("\n\nWarnings:")
		for _, w := range img.Warnings {
			fmt.Fprintf(&b, "\n\t%s", w)
		}
	}

	return b.String()
}

func writeCueInfo(b *strings.Builder, c *chunk.Cue) {
	fmt.Fprintf(b, "\n\nChunk ID: %s\n", chunk.TagCue)
	b.WriteString("Chunk description: Cue Sheet")
	if len(c.Points) == 0 {
		b.WriteString("\nNo cue points!")
		return
	}
	for _, p := range c.Points {
		fmt.Fprintf(b, "\nCue point:\n\tMode: 0x%02X\n", p.Mode)
		switch p.Track {
		case 0:
			b.WriteString("\tTrack number: 0 (lead-in area)\n")
		case 0xAA:
			b.WriteString("\tTrack number: 0xAA (lead-out area)\n")
		default:
			fmt.Fprintf(b, "\tTrack number: %d\n", p.Track)
		}
		fmt.Fprintf(b, "\tIndex number: %d\n", p.Index)
		if p.Padding != 0 {
			fmt.Fprintf(b, "\tPadding: %d (should be 0)\n", p.Padding)
		}
		// Audio CDs play at 75 sectors per second.
		fmt.Fprintf(b, "\tPosition: %d sectors (%.2f seconds)",
			p.Position, float64(p.Position)/SectorsPerSecond)
	}
}

func writeDAOInfo(b *strings.Builder, c *chunk.DAO) {
	fmt.Fprintf(b, "\n\nChunk ID: %s\n", chunk.TagDAO)
	b.WriteString("Chunk description: DAO (Disc At Once) Information\n")
	fmt.Fprintf(b, "UPC: %q\n", c.UPC)
	if c.Padding != 0 {
		fmt.Fprintf(b, "Padding: %d (should be 0)\n", c.Padding)
	}
	fmt.Fprintf(b, "TOC type: 0x%04X\n", c.TOCType)
	fmt.Fprintf(b, "First track in the session: %d\n", c.FirstTrack)
	fmt.Fprintf(b, "Last track in the session: %d", c.LastTrack)

	for i, t := range c.Tracks {
		fmt.Fprintf(b, "\nTrack %02d:\n", i+1)
		fmt.Fprintf(b, "\tISRC: %q\n", t.ISRC)
		fmt.Fprintf(b, "\tSector size in the image file: %d Bytes\n", t.SectorSize)
		fmt.Fprintf(b, "\tMode of the data in the image file: 0x%04X\n", t.DataMode)
		if t.Unknown != 0x0001 {
			fmt.Fprintf(b, "\tUnknown field: 0x%04X (should be 0x0001)\n", t.Unknown)
		}
		fmt.Fprintf(b, "\tIndex0 (Pre-gap): %d Bytes\n", t.Pregap)
		fmt.Fprintf(b, "\tIndex1 (Start of track): %d Bytes\n", t.Start)
		fmt.Fprintf(b, "\tEnd of track + 1: %d Bytes", t.End)
	}
}
