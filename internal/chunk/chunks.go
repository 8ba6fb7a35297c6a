package chunk

// Chunk tags recognized by the decoder registry. Tags not listed here are
// retained as opaque records and never stop the walk.
const (
	TagCue       = "CUEX" // cue sheet: per-track index points
	TagDAO       = "DAOX" // disc-at-once geometry: track extents and sector sizes
	TagSession   = "SINF" // session information: track count
	TagMediaType = "MTYP" // media type
	TagFileNames = "AFNM" // audio file names
)

// Decoded is implemented by every typed chunk produced by the registry.
type Decoded interface {
	// ChunkTag returns the 4-byte tag this value was decoded from.
	ChunkTag() string
}

// CuePoint is one 8-byte entry of a CUEX chunk: a cue marker placing an
// index of a track at an absolute sector position. Track number 0 marks the
// lead-in area and 0xAA the lead-out; positions inside the lead-in are
// negative.
type CuePoint struct {
	Mode     uint8
	Track    uint8 // BCD-decoded
	Index    uint8 // BCD-decoded
	Padding  uint8 // expect 0
	Position int32 // absolute sector number
}

// Cue is a decoded CUEX chunk.
type Cue struct {
	Points []CuePoint
}

func (c *Cue) ChunkTag() string { return TagCue }

// DAOTrack is one 42-byte track block of a DAOX chunk. The three offsets
// are absolute byte positions within the image: Pregap is the start of the
// pregap (index 0), Start the start of the track proper (index 1), and End
// one past the last byte of the track.
type DAOTrack struct {
	ISRC       string
	SectorSize int
	DataMode   uint16
	Unknown    uint16 // expect 0x0001
	Pregap     int64
	Start      int64
	End        int64
}

// DAO is a decoded DAOX chunk: the disc-at-once geometry of one session.
type DAO struct {
	SizeDup    uint32 // duplicated chunk size field
	UPC        string
	Padding    uint8 // expect 0
	TOCType    uint16
	FirstTrack uint8
	LastTrack  uint8
	Tracks     []DAOTrack
}

func (d *DAO) ChunkTag() string { return TagDAO }

// Session is a decoded SINF chunk.
type Session struct {
	TrackCount uint32
}

func (s *Session) ChunkTag() string { return TagSession }

// MediaType is a decoded MTYP chunk. The value is recorded for display;
// its encoding is not interpreted.
type MediaType struct {
	Value uint32
}

func (m *MediaType) ChunkTag() string { return TagMediaType }

// FileNames is a decoded AFNM chunk: the null-terminated list of audio file
// names the image was burned from. Display-only.
type FileNames struct {
	Names []string
}

func (f *FileNames) ChunkTag() string { return TagFileNames }

// Opaque retains a chunk whose tag has no decoder, or a recognized chunk
// that failed to decode in lenient mode. It is kept for informational
// listing only.
type Opaque struct {
	Tag    string
	Offset int64
	Length int64
}

func (o *Opaque) ChunkTag() string { return o.Tag }
