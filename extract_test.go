package nrg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAudio_PlainSectors(t *testing.T) {
	data := buildTwoTrack()
	img, err := openBytes(t, data)
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := img.ExtractAudio(bytes.NewReader(data), &out, ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, int64(150*SectorSize), n)
	assert.Equal(t, int64(out.Len()), n)

	// Track order and content: track 1's marker bytes first, then track 2's.
	raw := out.Bytes()
	assert.Equal(t, byte(0x11), raw[0])
	assert.Equal(t, byte(0x11), raw[100*SectorSize-1])
	assert.Equal(t, byte(0x22), raw[100*SectorSize])
	assert.Equal(t, byte(0x22), raw[len(raw)-1])
}

func TestExtractAudio_StripIsNoOpOnPlainSectors(t *testing.T) {
	data := buildTwoTrack()
	img, err := openBytes(t, data)
	require.NoError(t, err)

	var plain, stripped bytes.Buffer
	_, err = img.ExtractAudio(bytes.NewReader(data), &plain, ExtractOptions{})
	require.NoError(t, err)
	_, err = img.ExtractAudio(bytes.NewReader(data), &stripped, ExtractOptions{StripSubchannel: true})
	require.NoError(t, err)

	assert.Equal(t, plain.Bytes(), stripped.Bytes())
}

func buildOversized(t *testing.T) (*Image, []byte) {
	t.Helper()
	b := &imageBuilder{}
	start := b.addAudioSectors(20, 0x33, 0x44)
	b.addChunk("DAOX", daoxPayload(1, 1,
		daoxTrack("", SectorSizeSub, uint64(start), uint64(start), uint64(start)+20*SectorSizeSub),
	))
	data := b.build()

	img, err := openBytes(t, data)
	require.NoError(t, err)
	return img, data
}

func TestExtractAudio_OversizedKeepSubchannel(t *testing.T) {
	img, data := buildOversized(t)

	var out bytes.Buffer
	n, err := img.ExtractAudio(bytes.NewReader(data), &out, ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, int64(20*SectorSizeSub), n)
	raw := out.Bytes()
	assert.Equal(t, byte(0x33), raw[SectorSize-1])
	assert.Equal(t, byte(0x44), raw[SectorSize])
	assert.Equal(t, byte(0x44), raw[SectorSizeSub-1])
}

func TestExtractAudio_OversizedStripSubchannel(t *testing.T) {
	img, data := buildOversized(t)

	var out bytes.Buffer
	n, err := img.ExtractAudio(bytes.NewReader(data), &out, ExtractOptions{StripSubchannel: true})
	require.NoError(t, err)

	assert.Equal(t, int64(20*SectorSize), n)
	for _, b := range out.Bytes() {
		if b != 0x33 {
			t.Fatalf("subchannel byte leaked into stripped output: 0x%02x", b)
		}
	}
}

func TestExtractAudio_Deterministic(t *testing.T) {
	data := buildTwoTrack()
	img, err := openBytes(t, data)
	require.NoError(t, err)

	var first, second bytes.Buffer
	_, err = img.ExtractAudio(bytes.NewReader(data), &first, ExtractOptions{})
	require.NoError(t, err)
	_, err = img.ExtractAudio(bytes.NewReader(data), &second, ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestExtractAudio_ShortRead(t *testing.T) {
	data := buildTwoTrack()
	img, err := openBytes(t, data)
	require.NoError(t, err)

	// A reader that ends mid-way through track 2's fifth sector.
	cut := 100*SectorSize + 4*SectorSize + 100
	var out bytes.Buffer
	_, err = img.ExtractAudio(bytes.NewReader(data[:cut]), &out, ExtractOptions{})

	var sre *ShortReadError
	require.ErrorAs(t, err, &sre)
	assert.Equal(t, 2, sre.Track)
	assert.Equal(t, int64(4), sre.Sector)
	assert.Equal(t, SectorSize, sre.Want)
}

func TestExtractAll(t *testing.T) {
	data := buildTwoTrack()
	img, err := openBytes(t, data)
	require.NoError(t, err)

	var cue, raw bytes.Buffer
	err = img.ExtractAll(bytes.NewReader(data), "disc.raw", &cue, &raw, ExtractOptions{})
	require.NoError(t, err)

	sheet, err := img.CueSheet("disc.raw")
	require.NoError(t, err)
	assert.Equal(t, sheet, cue.String())
	assert.Equal(t, 150*SectorSize, raw.Len())
}
