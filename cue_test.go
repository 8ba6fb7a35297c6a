package nrg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimecode(t *testing.T) {
	tests := []struct {
		sector int64
		want   string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{74, "00:00:74"},
		{75, "00:01:00"},
		{150, "00:02:00"},
		{4500, "01:00:00"},
		{4501, "01:00:01"},
		{4575, "01:01:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Timecode(tt.sector), "sector %d", tt.sector)
	}
}

func TestCueSheet_TwoTracks(t *testing.T) {
	img, err := openBytes(t, buildTwoTrack())
	require.NoError(t, err)

	sheet, err := img.CueSheet("disc.raw")
	require.NoError(t, err)

	want := `FILE "disc.raw" RAW
  TRACK 01 AUDIO
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    INDEX 00 00:01:25
    INDEX 01 00:01:35
`
	assert.Equal(t, want, sheet)
}

func TestCueSheet_TimecodesIgnoreSectorSize(t *testing.T) {
	// Oversized sectors change the byte layout but not the timecodes: an
	// index at stream sector 150 is 00:02:00 either way.
	b := &imageBuilder{}
	t1 := b.addAudio(150, SectorSizeSub, 0x11)
	t2 := b.addAudio(75, SectorSizeSub, 0x22)
	b.addChunk("DAOX", daoxPayload(1, 2,
		daoxTrack("", SectorSizeSub, uint64(t1), uint64(t1), uint64(t2)),
		daoxTrack("", SectorSizeSub, uint64(t2), uint64(t2), uint64(t2)+75*SectorSizeSub),
	))

	img, err := openBytes(t, b.build())
	require.NoError(t, err)

	sheet, err := img.CueSheet("disc.raw")
	require.NoError(t, err)
	assert.Contains(t, sheet, "  TRACK 02 AUDIO\n    INDEX 01 00:02:00\n")
}

func TestCueSheet_NoTracks(t *testing.T) {
	img := &Image{Path: "empty.nrg"}

	_, err := img.CueSheet("disc.raw")
	var le *LayoutError
	require.ErrorAs(t, err, &le)
}
