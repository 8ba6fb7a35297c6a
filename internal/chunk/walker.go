package chunk

import (
	"github.com/simonhull/nrg/internal/binary"
	"github.com/simonhull/nrg/internal/types"
)

// EndTag terminates the chunk chain. Unlike regular chunks it is a bare
// 4-byte tag with no length field.
const EndTag = "END!"

// headerSize is the fixed per-chunk header: 4-byte tag + uint64 length.
const headerSize = 12

// Header describes one raw chunk in the chain: its tag, where its payload
// lives, and how long the payload is. Payload bytes are not materialized
// until a decoder asks for them.
type Header struct {
	Tag     string
	Offset  int64 // offset of the chunk header within the image
	Payload int64 // offset of the payload within the image
	Length  int64 // payload length in bytes
}

// Walker produces a lazy, finite, non-restartable sequence of chunk headers
// by following the chain from its start offset. Usage follows the scanner
// pattern:
//
//	w := chunk.NewWalker(sr, start)
//	for w.Next() {
//		h := w.Chunk()
//		...
//	}
//	if err := w.Err(); err != nil {
//		...
//	}
//
// The walker never advances past the end of the image: a chunk whose
// declared length would run past end-of-file stops the walk with a
// *types.MalformedChunkError.
type Walker struct {
	sr   *binary.SafeReader
	next int64
	cur  Header
	done bool
	err  error
}

// NewWalker creates a Walker starting at the given chain offset.
func NewWalker(sr *binary.SafeReader, start int64) *Walker {
	return &Walker{sr: sr, next: start}
}

// Next advances to the next chunk in the chain. It returns false when the
// end-of-chain tag is reached or an error occurs; check Err afterwards.
func (w *Walker) Next() bool {
	if w.done || w.err != nil {
		return false
	}

	tag := make([]byte, 4)
	if err := w.sr.ReadAt(tag, w.next, "chunk tag"); err != nil {
		w.err = &types.MalformedChunkError{
			Path:   w.sr.Path(),
			Tag:    "",
			Offset: w.next,
			Reason: "chunk header runs past end of file",
		}
		return false
	}

	if string(tag) == EndTag {
		w.done = true
		return false
	}

	length, err := binary.Read[uint64](w.sr, w.next+4, "chunk length")
	if err != nil {
		w.err = &types.MalformedChunkError{
			Path:   w.sr.Path(),
			Tag:    string(tag),
			Offset: w.next,
			Reason: "chunk header runs past end of file",
		}
		return false
	}

	payload := w.next + headerSize
	if int64(length) < 0 || payload+int64(length) > w.sr.Size() {
		w.err = &types.MalformedChunkError{
			Path:   w.sr.Path(),
			Tag:    string(tag),
			Offset: w.next,
			Reason: "declared payload length runs past end of file",
		}
		return false
	}

	w.cur = Header{
		Tag:     string(tag),
		Offset:  w.next,
		Payload: payload,
		Length:  int64(length),
	}
	w.next = payload + int64(length)
	return true
}

// Chunk returns the header read by the last successful call to Next.
func (w *Walker) Chunk() Header {
	return w.cur
}

// Err returns the error that stopped the walk, if any.
func (w *Walker) Err() error {
	return w.err
}
