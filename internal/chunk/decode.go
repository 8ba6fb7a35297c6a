package chunk

import (
	"bytes"
	"fmt"

	"github.com/simonhull/nrg/internal/binary"
	"github.com/simonhull/nrg/internal/types"
)

// Decoder decodes the payload of one chunk into its typed representation.
type Decoder func(sr *binary.SafeReader, h Header) (Decoded, error)

// Registry maps chunk tags to their decoders. It is constructed once and
// passed to the parse loop; there is no process-wide mutable state.
type Registry map[string]Decoder

// NewRegistry returns a registry holding the built-in decoders.
func NewRegistry() Registry {
	return Registry{
		TagCue:       decodeCue,
		TagDAO:       decodeDAO,
		TagSession:   decodeSession,
		TagMediaType: decodeMediaType,
		TagFileNames: decodeFileNames,
	}
}

// Decode dispatches a chunk header to its decoder. Chunks with no
// registered decoder are retained as *Opaque; this is not an error, so a
// future chunk type never breaks decoding of the rest of the chain.
func (reg Registry) Decode(sr *binary.SafeReader, h Header) (Decoded, error) {
	dec, ok := reg[h.Tag]
	if !ok {
		return &Opaque{Tag: h.Tag, Offset: h.Offset, Length: h.Length}, nil
	}
	return dec(sr, h)
}

// malformed builds the error for a recognized chunk whose payload does not
// have the shape its tag requires.
func malformed(sr *binary.SafeReader, h Header, format string, args ...any) error {
	return &types.MalformedChunkError{
		Path:   sr.Path(),
		Tag:    h.Tag,
		Offset: h.Offset,
		Reason: fmt.Sprintf(format, args...),
	}
}

const cuePointSize = 8

// decodeCue decodes a CUEX payload: a flat array of 8-byte cue points.
func decodeCue(sr *binary.SafeReader, h Header) (Decoded, error) {
	if h.Length%cuePointSize != 0 {
		return nil, malformed(sr, h, "payload length %d is not a multiple of %d", h.Length, cuePointSize)
	}

	cue := &Cue{Points: make([]CuePoint, 0, h.Length/cuePointSize)}
	cr := binary.NewChainReader(binary.NewReader(sr, h.Payload))
	for i := int64(0); i < h.Length/cuePointSize; i++ {
		p := CuePoint{
			Mode:    binary.ReadChained[uint8](cr, "cue point mode"),
			Track:   binary.ReadChainedBCD(cr, "cue point track number"),
			Index:   binary.ReadChainedBCD(cr, "cue point index number"),
			Padding: binary.ReadChained[uint8](cr, "cue point padding"),
		}
		p.Position = int32(binary.ReadChained[uint32](cr, "cue point position"))
		if err := cr.Error(); err != nil {
			return nil, err
		}
		cue.Points = append(cue.Points, p)
	}
	return cue, nil
}

const (
	daoHeaderSize = 22
	daoTrackSize  = 42
)

// decodeDAO decodes a DAOX payload: a 22-byte session header followed by a
// flat array of 42-byte track blocks.
func decodeDAO(sr *binary.SafeReader, h Header) (Decoded, error) {
	if h.Length < daoHeaderSize {
		return nil, malformed(sr, h, "payload length %d is shorter than the %d-byte header", h.Length, daoHeaderSize)
	}
	if (h.Length-daoHeaderSize)%daoTrackSize != 0 {
		return nil, malformed(sr, h, "track blocks occupy %d bytes, not a multiple of %d", h.Length-daoHeaderSize, daoTrackSize)
	}

	cr := binary.NewChainReader(binary.NewReader(sr, h.Payload))
	dao := &DAO{
		SizeDup: binary.ReadChained[uint32](cr, "duplicated chunk size"),
		UPC:     cr.CString(13, "UPC"),
		Padding: binary.ReadChained[uint8](cr, "padding"),
		TOCType: binary.ReadChained[uint16](cr, "TOC type"),
	}
	dao.FirstTrack = binary.ReadChained[uint8](cr, "first track")
	dao.LastTrack = binary.ReadChained[uint8](cr, "last track")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	count := (h.Length - daoHeaderSize) / daoTrackSize
	dao.Tracks = make([]DAOTrack, 0, count)
	for i := int64(0); i < count; i++ {
		t := DAOTrack{
			ISRC:       cr.CString(12, "ISRC"),
			SectorSize: int(binary.ReadChained[uint16](cr, "sector size")),
			DataMode:   binary.ReadChained[uint16](cr, "data mode"),
			Unknown:    binary.ReadChained[uint16](cr, "unknown field"),
		}
		t.Pregap = int64(binary.ReadChained[uint64](cr, "pregap offset"))
		t.Start = int64(binary.ReadChained[uint64](cr, "track start offset"))
		t.End = int64(binary.ReadChained[uint64](cr, "track end offset"))
		if err := cr.Error(); err != nil {
			return nil, err
		}
		if t.Pregap < 0 || t.Start < 0 || t.End < 0 {
			return nil, malformed(sr, h, "track %d: byte offset overflows", i+1)
		}
		dao.Tracks = append(dao.Tracks, t)
	}
	return dao, nil
}

// decodeSession decodes a SINF payload: the number of tracks in a session.
func decodeSession(sr *binary.SafeReader, h Header) (Decoded, error) {
	if h.Length != 4 {
		return nil, malformed(sr, h, "payload length %d, expected 4", h.Length)
	}
	count, err := binary.Read[uint32](sr, h.Payload, "session track count")
	if err != nil {
		return nil, err
	}
	return &Session{TrackCount: count}, nil
}

// decodeMediaType decodes an MTYP payload.
func decodeMediaType(sr *binary.SafeReader, h Header) (Decoded, error) {
	if h.Length != 4 {
		return nil, malformed(sr, h, "payload length %d, expected 4", h.Length)
	}
	value, err := binary.Read[uint32](sr, h.Payload, "media type value")
	if err != nil {
		return nil, err
	}
	return &MediaType{Value: value}, nil
}

// decodeFileNames decodes an AFNM payload: a sequence of null-terminated
// file names.
func decodeFileNames(sr *binary.SafeReader, h Header) (Decoded, error) {
	buf := make([]byte, h.Length)
	if err := sr.ReadAt(buf, h.Payload, "audio file names"); err != nil {
		return nil, err
	}

	names := &FileNames{}
	for _, name := range bytes.Split(buf, []byte{0}) {
		if len(name) > 0 {
			names.Names = append(names.Names, string(name))
		}
	}
	return names, nil
}
