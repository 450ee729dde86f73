package compress

// ZstdCodec compresses snapshot payloads with Zstandard, favoring ratio over
// speed. It suits archived datasets that are decoded infrequently.
//
// The default implementation is pure Go (klauspost/compress/zstd); building
// with the gozstd tag swaps in the cgo libzstd bindings for workloads where
// encode throughput dominates.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
