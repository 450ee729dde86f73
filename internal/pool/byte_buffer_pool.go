package pool

import "sync"

const (
	// SnapshotBufferDefaultSize is the initial capacity of pooled snapshot buffers.
	SnapshotBufferDefaultSize = 16 * 1024
	// SnapshotBufferMaxThreshold is the capacity above which buffers are not
	// returned to the pool, preventing a single huge dataset from pinning memory.
	SnapshotBufferMaxThreshold = 4 * 1024 * 1024
)

// ByteBuffer is a reusable append-based byte buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

var snapshotBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, SnapshotBufferDefaultSize)}
	},
}

// GetSnapshotBuffer returns an empty buffer from the pool.
func GetSnapshotBuffer() *ByteBuffer {
	buf, _ := snapshotBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutSnapshotBuffer returns a buffer to the pool unless it grew past the
// retention threshold.
func PutSnapshotBuffer(buf *ByteBuffer) {
	if buf == nil || cap(buf.B) > SnapshotBufferMaxThreshold {
		return
	}
	snapshotBufferPool.Put(buf)
}
