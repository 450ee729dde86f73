// Package snapshot persists datasets as compact binary blobs, so cleaned
// and recoded tables can be cached between analysis runs instead of
// re-running the ingestion pipeline.
//
// A snapshot is a fixed header followed by a compressed columnar payload.
// The header records the codec and an xxHash64 checksum of the payload;
// decoding verifies the checksum before parsing, so truncated or corrupted
// caches fail fast with ErrInvalidSnapshot.
//
//	raw, err := snapshot.Encode(ds, snapshot.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	// ... write raw to the cache, read it back later ...
//	ds2, err := snapshot.Decode(raw)
//
// Round-tripping preserves column order, kinds, level sets, reference
// levels and missing values.
package snapshot
