package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// Snapshot column records store the ID of the column name next to the name
// itself, so the decode path can detect mis-framed records as soon as the
// name is read.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum computes the xxHash64 of the given byte payload.
//
// Snapshot encoding stores this value in the header so the decode path can
// detect corrupted or truncated payloads before parsing them.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
