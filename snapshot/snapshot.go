package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/fitwise/compress"
	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/format"
	"github.com/arloliu/fitwise/internal/hash"
	"github.com/arloliu/fitwise/internal/options"
	"github.com/arloliu/fitwise/internal/pool"
)

// ErrInvalidSnapshot indicates snapshot bytes that cannot be decoded:
// truncated data, a bad magic or version, an unknown codec, or a checksum
// mismatch.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// missingLevel marks a missing categorical observation in the payload.
const missingLevel = 0xFFFF

// Config holds snapshot encoding configuration.
type Config struct {
	Compression format.CompressionType
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithCompression sets the payload compression codec. The default is S2,
// which decodes fast enough that cached datasets load at interactive speed.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if !c.IsValid() {
			return fmt.Errorf("%w: unknown compression type 0x%x", dataset.ErrInvalidInput, byte(c))
		}
		cfg.Compression = c

		return nil
	})
}

// Encode serializes a dataset into a compact binary snapshot: a fixed
// header carrying the codec and an xxHash64 payload checksum, followed by a
// compressed columnar payload.
func Encode(ds *dataset.Dataset, opts ...Option) ([]byte, error) {
	cfg := &Config{Compression: format.CompressionS2}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	for _, col := range ds.Columns() {
		if err := encodeColumn(buf, col); err != nil {
			return nil, err
		}
	}

	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress snapshot payload: %w", err)
	}

	h := header{
		compression: cfg.Compression,
		colCount:    uint32(ds.NumCols()),
		rowCount:    uint32(ds.NumRows()),
		checksum:    hash.Checksum(payload),
		payloadLen:  uint32(len(payload)),
	}

	out := make([]byte, headerSize+len(payload))
	h.marshal(out)
	copy(out[headerSize:], payload)

	return out, nil
}

// Decode restores a dataset from snapshot bytes produced by Encode.
func Decode(data []byte) (*dataset.Dataset, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	compressed := data[headerSize:]
	if hash.Checksum(compressed) != h.checksum {
		return nil, fmt.Errorf("%w: payload checksum mismatch", ErrInvalidSnapshot)
	}

	codec, err := compress.GetCodec(h.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress payload: %v", ErrInvalidSnapshot, err)
	}

	cols := make([]dataset.Column, 0, h.colCount)
	rest := payload
	for i := uint32(0); i < h.colCount; i++ {
		var col dataset.Column
		col, rest, err = decodeColumn(rest, int(h.rowCount))
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", ErrInvalidSnapshot, len(rest))
	}

	return dataset.New(cols...)
}

// encodeColumn appends one column record: length-prefixed name, the xxHash64
// ID of the name, kind byte, then the kind-specific body.
func encodeColumn(buf *pool.ByteBuffer, col dataset.Column) error {
	if err := writeString(buf, col.Name()); err != nil {
		return err
	}
	writeUint64(buf, hash.ID(col.Name()))
	_ = buf.WriteByte(byte(col.Kind()))

	switch c := col.(type) {
	case *dataset.NumericColumn:
		var scratch [8]byte
		for _, v := range c.Values() {
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
			buf.MustWrite(scratch[:])
		}
	case *dataset.CategoricalColumn:
		levels := c.Levels()
		if len(levels) >= missingLevel {
			return fmt.Errorf("%w: column %q has %d levels, snapshot supports %d",
				dataset.ErrInvalidInput, c.Name(), len(levels), missingLevel-1)
		}

		writeUint16(buf, uint16(len(levels)))
		levelIdx := make(map[string]uint16, len(levels))
		for i, lv := range levels {
			if err := writeString(buf, lv); err != nil {
				return err
			}
			levelIdx[lv] = uint16(i)
		}

		ref := uint16(missingLevel)
		if i, ok := levelIdx[c.Reference()]; ok {
			ref = i
		}
		writeUint16(buf, ref)

		for _, v := range c.Labels() {
			if v == "" {
				writeUint16(buf, missingLevel)
			} else {
				writeUint16(buf, levelIdx[v])
			}
		}
	default:
		return fmt.Errorf("%w: column %q has unsupported kind %s",
			dataset.ErrInvalidInput, col.Name(), col.Kind())
	}

	return nil
}

func decodeColumn(data []byte, rows int) (dataset.Column, []byte, error) {
	name, rest, err := readString(data)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) < 9 {
		return nil, nil, fmt.Errorf("%w: truncated column record %q", ErrInvalidSnapshot, name)
	}
	// A misaligned record yields a "name" whose ID cannot match the one
	// written next to it, so framing errors surface here with the column
	// identified instead of as garbage further down.
	if id := binary.LittleEndian.Uint64(rest); id != hash.ID(name) {
		return nil, nil, fmt.Errorf("%w: column name %q does not match its ID", ErrInvalidSnapshot, name)
	}
	rest = rest[8:]
	kind := format.ColumnKind(rest[0])
	rest = rest[1:]

	switch kind {
	case format.KindNumeric:
		need := rows * 8
		if len(rest) < need {
			return nil, nil, fmt.Errorf("%w: truncated numeric column %q", ErrInvalidSnapshot, name)
		}
		values := make([]float64, rows)
		for i := 0; i < rows; i++ {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(rest[i*8:]))
		}

		return dataset.NewNumeric(name, values), rest[need:], nil

	case format.KindCategorical:
		levelCount, rest, err := readUint16(rest, name)
		if err != nil {
			return nil, nil, err
		}
		levels := make([]string, levelCount)
		for i := range levels {
			levels[i], rest, err = readString(rest)
			if err != nil {
				return nil, nil, err
			}
		}

		refIdx, rest, err := readUint16(rest, name)
		if err != nil {
			return nil, nil, err
		}
		if refIdx != missingLevel && int(refIdx) >= len(levels) {
			return nil, nil, fmt.Errorf("%w: column %q reference index %d out of range",
				ErrInvalidSnapshot, name, refIdx)
		}

		values := make([]string, rows)
		for i := 0; i < rows; i++ {
			var idx uint16
			idx, rest, err = readUint16(rest, name)
			if err != nil {
				return nil, nil, err
			}
			if idx == missingLevel {
				continue // stays ""
			}
			if int(idx) >= len(levels) {
				return nil, nil, fmt.Errorf("%w: column %q level index %d out of range",
					ErrInvalidSnapshot, name, idx)
			}
			values[i] = levels[idx]
		}

		col := dataset.NewCategorical(name, values)
		if refIdx != missingLevel {
			rebuilt, err := rebuildReference(col, levels[refIdx])
			if err != nil {
				return nil, nil, err
			}
			col = rebuilt
		}

		return col, rest, nil

	default:
		return nil, nil, fmt.Errorf("%w: column %q has unknown kind 0x%x", ErrInvalidSnapshot, name, byte(kind))
	}
}

// rebuildReference restores the reference level through the dataset API so
// the column stays consistent with its surviving observations.
func rebuildReference(col *dataset.CategoricalColumn, ref string) (*dataset.CategoricalColumn, error) {
	if !col.HasLevel(ref) {
		// Reference level had no surviving observation; keep the rebuilt default.
		return col, nil
	}

	ds, err := dataset.New(col)
	if err != nil {
		return nil, err
	}
	ds, err = ds.WithReference(col.Name(), ref)
	if err != nil {
		return nil, err
	}

	return ds.Categorical(col.Name())
}

func writeString(buf *pool.ByteBuffer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: string of %d bytes exceeds snapshot limit", dataset.ErrInvalidInput, len(s))
	}
	writeUint16(buf, uint16(len(s)))
	buf.MustWrite([]byte(s))

	return nil
}

func readString(data []byte) (string, []byte, error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("%w: truncated string length", ErrInvalidSnapshot)
	}
	n := int(binary.LittleEndian.Uint16(data))
	data = data[2:]
	if len(data) < n {
		return "", nil, fmt.Errorf("%w: truncated string body", ErrInvalidSnapshot)
	}

	return string(data[:n]), data[n:], nil
}

func writeUint16(buf *pool.ByteBuffer, v uint16) {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], v)
	buf.MustWrite(scratch[:])
}

func writeUint64(buf *pool.ByteBuffer, v uint64) {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], v)
	buf.MustWrite(scratch[:])
}

func readUint16(data []byte, col string) (uint16, []byte, error) {
	if len(data) < 2 {
		return 0, nil, fmt.Errorf("%w: truncated column %q", ErrInvalidSnapshot, col)
	}

	return binary.LittleEndian.Uint16(data), data[2:], nil
}
