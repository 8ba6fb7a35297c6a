package chunk

import (
	"bytes"
	gobinary "encoding/binary"

	"github.com/simonhull/nrg/internal/binary"
)

// appendChunk writes one chain record: 4-byte tag, 8-byte big-endian
// length, payload.
func appendChunk(buf *bytes.Buffer, tag string, payload []byte) {
	buf.WriteString(tag)
	var length [8]byte
	gobinary.BigEndian.PutUint64(length[:], uint64(len(payload)))
	buf.Write(length[:])
	buf.Write(payload)
}

// buildImage assembles a synthetic v2 container: a data area, the chunk
// chain, the end tag, and the trailing footer.
func buildImage(data []byte, chain *bytes.Buffer) []byte {
	img := append([]byte{}, data...)
	start := int64(len(img))
	img = append(img, chain.Bytes()...)
	img = append(img, EndTag...)
	img = append(img, footerTagV2...)
	var offset [8]byte
	gobinary.BigEndian.PutUint64(offset[:], uint64(start))
	return append(img, offset[:]...)
}

func testReader(data []byte) *binary.SafeReader {
	return binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.nrg")
}

func be16(v uint16) []byte {
	b := make([]byte, 2)
	gobinary.BigEndian.PutUint16(b, v)
	return b
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	gobinary.BigEndian.PutUint32(b, v)
	return b
}

func be64(v uint64) []byte {
	b := make([]byte, 8)
	gobinary.BigEndian.PutUint64(b, v)
	return b
}

// cstr returns s null-padded to length n.
func cstr(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

// cuePayload builds a CUEX payload from 8-byte point specs.
func cuePayload(points ...[]byte) []byte {
	var buf bytes.Buffer
	for _, p := range points {
		buf.Write(p)
	}
	return buf.Bytes()
}

// cuePoint builds one 8-byte CUEX entry. Track and index are raw bytes,
// BCD-encoded by the caller when needed.
func cuePoint(mode, track, index byte, position int32) []byte {
	p := []byte{mode, track, index, 0}
	return append(p, be32(uint32(position))...)
}

// daoPayload builds a DAOX payload from a session header and 42-byte track
// blocks.
func daoPayload(first, last byte, tracks ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write(be32(0))        // duplicated size, unused
	buf.Write(cstr("", 13))   // UPC
	buf.WriteByte(0)          // padding
	buf.Write(be16(0x0001))   // TOC type
	buf.WriteByte(first)
	buf.WriteByte(last)
	for _, t := range tracks {
		buf.Write(t)
	}
	return buf.Bytes()
}

// daoTrack builds one 42-byte DAOX track block.
func daoTrack(isrc string, sectorSize uint16, pregap, start, end uint64) []byte {
	var buf bytes.Buffer
	buf.Write(cstr(isrc, 12))
	buf.Write(be16(sectorSize))
	buf.Write(be16(0x0700)) // data mode: audio
	buf.Write(be16(0x0001))
	buf.Write(be64(pregap))
	buf.Write(be64(start))
	buf.Write(be64(end))
	return buf.Bytes()
}
