package chunk

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/nrg/internal/types"
)

func TestLocateChain_V2(t *testing.T) {
	chain := &bytes.Buffer{}
	appendChunk(chain, "MTYP", be32(0x1C))
	img := buildImage(make([]byte, 64), chain)

	start, err := LocateChain(testReader(img))
	require.NoError(t, err)
	assert.Equal(t, int64(64), start)
}

func TestLocateChain_V1Rejected(t *testing.T) {
	// v1 footer: "NERO" + 32-bit offset in the last 8 bytes.
	img := append(make([]byte, 64), []byte("NERO")...)
	img = append(img, be32(0)...)

	_, err := LocateChain(testReader(img))
	var uve *types.UnsupportedVersionError
	require.ErrorAs(t, err, &uve)
	assert.Equal(t, 1, uve.Version)
}

func TestLocateChain_UnknownFooter(t *testing.T) {
	img := bytes.Repeat([]byte{0xAB}, 64)

	_, err := LocateChain(testReader(img))
	var uve *types.UnsupportedVersionError
	require.ErrorAs(t, err, &uve)
	assert.Zero(t, uve.Version)
	assert.NotEmpty(t, uve.Tag)
}

func TestLocateChain_TooSmall(t *testing.T) {
	for _, size := range []int{0, 5, 7} {
		_, err := LocateChain(testReader(make([]byte, size)))
		var te *types.TruncatedError
		require.ErrorAs(t, err, &te, "size %d", size)
	}
}

func TestLocateChain_V1FooterInTinyFile(t *testing.T) {
	// 8-byte file that is exactly a v1 footer.
	img := append([]byte("NERO"), be32(0)...)

	_, err := LocateChain(testReader(img))
	var uve *types.UnsupportedVersionError
	require.ErrorAs(t, err, &uve)
	assert.Equal(t, 1, uve.Version)
}

func TestLocateChain_OffsetOutsideImage(t *testing.T) {
	img := append(make([]byte, 64), footerTagV2...)
	img = append(img, be64(10_000)...)

	_, err := LocateChain(testReader(img))
	var mce *types.MalformedChunkError
	require.ErrorAs(t, err, &mce)
	assert.True(t, errors.As(err, &mce))
}
