// Package nrg reads Nero Burning ROM disc-image containers (NRG, version 2)
// and derives two artifacts from them: a textual cue sheet describing the
// track and index layout, and a raw audio stream of the concatenated sector
// payloads.
//
// # Quick Start
//
// Parsing an image and extracting both artifacts:
//
//	img, err := nrg.Open("disc.nrg")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sheet, err := img.CueSheet("disc.raw")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	f, _ := os.Open("disc.nrg")
//	defer f.Close()
//	out, _ := os.Create("disc.raw")
//	defer out.Close()
//	_, err = img.ExtractAudio(f, out, nrg.ExtractOptions{StripSubchannel: true})
//
// # Architecture
//
// The library is layered:
//
//	[Image]              - Entry point with Open()
//	  ├─ [Sessions]      - Track/index layout folded from the chunks
//	  ├─ [Chunks]        - Raw chunk listing for inspection
//	  └─ [Warnings]      - Non-fatal issues found while parsing
//
// An NRG v2 file is a binary container whose trailing footer locates a
// chain of typed, length-prefixed metadata chunks. Open reads the footer,
// walks the chain lazily, decodes the chunk types that carry track
// geometry and cue points, and folds them into the read-only Image model.
// The cue sheet generator and the raw audio extractor are then independent
// consumers of that model and may run in parallel.
//
// # Error Handling
//
// The package distinguishes between fatal errors and warnings:
//
//   - Fatal errors stop parsing or extraction entirely: a v1 or unknown
//     footer (UnsupportedVersionError), a file shorter than a required
//     structure (TruncatedError), a chunk inconsistent with the file
//     bounds (MalformedChunkError), a layout violating the track
//     invariants (LayoutError), or a short sector read (ShortReadError).
//   - Warnings indicate tolerated oddities: unrecognized chunk types,
//     multisession markers, nonzero padding. They are collected in
//     Image.Warnings; WithStrictChunks promotes them to errors.
//
// Unrecognized chunk tags are always tolerated, so a future chunk type
// never breaks extraction of an otherwise well-formed image. All other
// structural violations abort the operation rather than guess a repair.
package nrg
