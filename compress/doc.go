// Package compress provides the payload codecs used by dataset snapshots:
// None, Zstd, S2 and LZ4.
//
// All codecs implement the Codec interface and are selected by
// format.CompressionType through GetCodec. Zstd favors ratio for archived
// datasets; S2 and LZ4 favor speed for short-lived caches.
package compress
