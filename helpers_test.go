package nrg

import (
	"bytes"
	"encoding/binary"
)

// imageBuilder assembles synthetic NRG v2 containers for tests: an audio
// data area followed by the metadata chain and the trailing footer.
type imageBuilder struct {
	data  bytes.Buffer
	chain bytes.Buffer
}

// addAudio appends sectors filled with a marker byte and returns their
// absolute byte offset.
func (b *imageBuilder) addAudio(sectors, sectorSize int, fill byte) int64 {
	offset := int64(b.data.Len())
	b.data.Write(bytes.Repeat([]byte{fill}, sectors*sectorSize))
	return offset
}

// addAudioSectors appends sectors whose payload and subchannel portions
// carry distinct marker bytes, for subchannel stripping tests.
func (b *imageBuilder) addAudioSectors(sectors int, payload, sub byte) int64 {
	offset := int64(b.data.Len())
	for i := 0; i < sectors; i++ {
		b.data.Write(bytes.Repeat([]byte{payload}, SectorSize))
		b.data.Write(bytes.Repeat([]byte{sub}, SubchannelSize))
	}
	return offset
}

func (b *imageBuilder) addChunk(tag string, payload []byte) {
	b.chain.WriteString(tag)
	b.chain.Write(be64(uint64(len(payload))))
	b.chain.Write(payload)
}

// build finishes the container: data, chain, end tag, v2 footer.
func (b *imageBuilder) build() []byte {
	start := int64(b.data.Len())
	img := append([]byte{}, b.data.Bytes()...)
	img = append(img, b.chain.Bytes()...)
	img = append(img, "END!"...)
	img = append(img, "NER5"...)
	return append(img, be64(uint64(start))...)
}

func be16(v uint16) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return buf
}

func be32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return buf
}

func be64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// daoxTrack builds one 42-byte DAOX track block with audio data mode.
func daoxTrack(isrc string, sectorSize uint16, pregap, start, end uint64) []byte {
	var buf bytes.Buffer
	field := make([]byte, 12)
	copy(field, isrc)
	buf.Write(field)
	buf.Write(be16(sectorSize))
	buf.Write(be16(0x0700))
	buf.Write(be16(0x0001))
	buf.Write(be64(pregap))
	buf.Write(be64(start))
	buf.Write(be64(end))
	return buf.Bytes()
}

// daoxPayload builds a DAOX payload: 22-byte session header plus track
// blocks.
func daoxPayload(first, last byte, tracks ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write(be32(0))
	buf.Write(make([]byte, 13)) // UPC, unset
	buf.WriteByte(0)
	buf.Write(be16(0x0001))
	buf.WriteByte(first)
	buf.WriteByte(last)
	for _, t := range tracks {
		buf.Write(t)
	}
	return buf.Bytes()
}

// cuexPoint builds one 8-byte CUEX entry. Track and index bytes are taken
// raw; BCD-encode them at the call site when above 9.
func cuexPoint(mode, track, index byte, position int32) []byte {
	p := []byte{mode, track, index, 0}
	return append(p, be32(uint32(position))...)
}

func cuexPayload(points ...[]byte) []byte {
	var buf bytes.Buffer
	for _, p := range points {
		buf.Write(p)
	}
	return buf.Bytes()
}

// buildTwoTrack builds the standard fixture: track 1 with 100 plain
// sectors, track 2 with 50 sectors of which the first 10 are pregap.
func buildTwoTrack() []byte {
	b := &imageBuilder{}
	t1 := b.addAudio(100, SectorSize, 0x11)
	t2 := b.addAudio(50, SectorSize, 0x22)

	b.addChunk("DAOX", daoxPayload(1, 2,
		daoxTrack("USABC2400001", SectorSize, uint64(t1), uint64(t1), uint64(t2)),
		daoxTrack("", SectorSize, uint64(t2), uint64(t2)+10*SectorSize, uint64(t2)+50*SectorSize),
	))
	b.addChunk("SINF", be32(2))
	b.addChunk("MTYP", be32(0x1C))
	return b.build()
}
