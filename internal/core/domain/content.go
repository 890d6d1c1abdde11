package domain

// ContentLocation is where a payload lives inside a portable case bundle.
type ContentLocation struct {
	// Fingerprint is the lower-case hex blake3 digest of the raw payload bytes.
	Fingerprint string
	// RelPath is the slash-separated path relative to the case root.
	RelPath string
	// Size is the raw (uncompressed) payload size.
	Size int64
	// Compressed is true when the stored file is zstd encoded.
	Compressed bool
	// Deduplicated is true when an earlier object already stored the same bytes.
	Deduplicated bool
}

// ContentRecord binds a fingerprint to its location for the lifetime of one build.
type ContentRecord struct {
	Fingerprint string
	Location    ContentLocation
	// Refs lists every object that resolved to this payload, first writer first.
	Refs []SourceObjectRef
}

// Compression selects how payloads are encoded in the content area.
type Compression string

const (
	// CompressionNone stores payloads verbatim.
	CompressionNone Compression = "none"
	// CompressionZstd stores payloads zstd encoded with a .zst suffix.
	CompressionZstd Compression = "zstd"
)

// Valid reports whether c is a known compression, treating empty as none.
func (c Compression) Valid() bool {
	switch c {
	case "", CompressionNone, CompressionZstd:
		return true
	default:
		return false
	}
}
