package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/fitwise/format"
)

const (
	headerSize = 28
	version    = 1
)

// magic identifies fitwise snapshot bytes.
var magic = [4]byte{'F', 'W', 'S', 'N'}

// header is the fixed-size snapshot preamble.
//
// Layout (little-endian):
//
//	[0:4)   magic "FWSN"
//	[4]     version
//	[5]     compression type
//	[6:8)   reserved, zero
//	[8:12)  column count
//	[12:16) row count
//	[16:24) xxHash64 checksum of the compressed payload
//	[24:28) compressed payload length
type header struct {
	compression format.CompressionType
	colCount    uint32
	rowCount    uint32
	checksum    uint64
	payloadLen  uint32
}

func (h header) marshal(dst []byte) {
	copy(dst[0:4], magic[:])
	dst[4] = version
	dst[5] = byte(h.compression)
	dst[6] = 0
	dst[7] = 0
	binary.LittleEndian.PutUint32(dst[8:12], h.colCount)
	binary.LittleEndian.PutUint32(dst[12:16], h.rowCount)
	binary.LittleEndian.PutUint64(dst[16:24], h.checksum)
	binary.LittleEndian.PutUint32(dst[24:28], h.payloadLen)
}

func parseHeader(data []byte) (header, error) {
	if len(data) < headerSize {
		return header{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header",
			ErrInvalidSnapshot, len(data), headerSize)
	}
	if [4]byte(data[0:4]) != magic {
		return header{}, fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	if data[4] != version {
		return header{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, data[4])
	}

	h := header{
		compression: format.CompressionType(data[5]),
		colCount:    binary.LittleEndian.Uint32(data[8:12]),
		rowCount:    binary.LittleEndian.Uint32(data[12:16]),
		checksum:    binary.LittleEndian.Uint64(data[16:24]),
		payloadLen:  binary.LittleEndian.Uint32(data[24:28]),
	}
	if !h.compression.IsValid() {
		return header{}, fmt.Errorf("%w: unknown compression type 0x%x", ErrInvalidSnapshot, data[5])
	}
	if int(h.payloadLen) != len(data)-headerSize {
		return header{}, fmt.Errorf("%w: payload length %d does not match %d trailing bytes",
			ErrInvalidSnapshot, h.payloadLen, len(data)-headerSize)
	}

	return h, nil
}
