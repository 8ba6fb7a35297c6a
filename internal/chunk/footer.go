// Package chunk implements the NRG v2 container layer: the trailing footer
// that locates the metadata chain, the walker that iterates its typed
// length-prefixed chunks, and the decoders for the chunk types needed to
// reconstruct a disc layout.
package chunk

import (
	"github.com/simonhull/nrg/internal/binary"
	"github.com/simonhull/nrg/internal/types"
)

// Footer layouts. The v2 footer occupies the last 12 bytes of the image;
// v1 images end with a narrower 8-byte footer and are rejected.
const (
	footerTagV2 = "NER5"
	footerTagV1 = "NERO"

	footerSizeV2 = 12 // tag + uint64 first-chunk offset
	footerSizeV1 = 8  // tag + uint32 first-chunk offset
)

// LocateChain reads the image footer and returns the absolute byte offset
// of the first chunk in the metadata chain.
//
// It fails with *types.UnsupportedVersionError when the footer identifies
// anything other than an NRG v2 image, and with *types.TruncatedError when
// the file is too small to hold a v2 footer.
func LocateChain(sr *binary.SafeReader) (int64, error) {
	size := sr.Size()

	if size < footerSizeV1 {
		return 0, &types.TruncatedError{
			Path: sr.Path(),
			What: "image footer",
			Size: size,
			Need: footerSizeV2,
		}
	}

	if size >= footerSizeV2 {
		tag := make([]byte, 4)
		if err := sr.ReadAt(tag, size-footerSizeV2, "footer tag"); err != nil {
			return 0, err
		}
		if string(tag) == footerTagV2 {
			offset, err := binary.Read[uint64](sr, size-8, "first chunk offset")
			if err != nil {
				return 0, err
			}
			if int64(offset) < 0 || int64(offset) > size-footerSizeV2 {
				return 0, &types.MalformedChunkError{
					Path:   sr.Path(),
					Tag:    footerTagV2,
					Offset: size - footerSizeV2,
					Reason: "first chunk offset points outside the image",
				}
			}
			return int64(offset), nil
		}

		if v1, err := hasV1Footer(sr); err != nil {
			return 0, err
		} else if v1 {
			return 0, &types.UnsupportedVersionError{Path: sr.Path(), Version: 1}
		}
		return 0, &types.UnsupportedVersionError{Path: sr.Path(), Tag: string(tag)}
	}

	// Too small for a v2 footer, but a v1 footer could still fit.
	if v1, err := hasV1Footer(sr); err != nil {
		return 0, err
	} else if v1 {
		return 0, &types.UnsupportedVersionError{Path: sr.Path(), Version: 1}
	}
	return 0, &types.TruncatedError{
		Path: sr.Path(),
		What: "image footer",
		Size: size,
		Need: footerSizeV2,
	}
}

// hasV1Footer reports whether the last 8 bytes of the image look like an
// NRG v1 footer.
func hasV1Footer(sr *binary.SafeReader) (bool, error) {
	tag := make([]byte, 4)
	if err := sr.ReadAt(tag, sr.Size()-footerSizeV1, "v1 footer tag"); err != nil {
		return false, err
	}
	return string(tag) == footerTagV1, nil
}
