package snapshot

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/format"
	"github.com/arloliu/fitwise/internal/hash"
)

func buildDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.New(
		dataset.NewNumeric("imdb_rating", []float64{7.2, 6.1, math.NaN(), 5.9, 8.8}),
		dataset.NewNumeric("runtime", []float64{128, 95, 103, 88, 141}),
		dataset.NewCategorical("genre", []string{"Drama", "Comedy", "Drama", "", "Horror"}),
	)
	require.NoError(t, err)

	ds, err = ds.WithReference("genre", "Comedy")
	require.NoError(t, err)

	return ds
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression format.CompressionType
	}{
		{name: "none", compression: format.CompressionNone},
		{name: "zstd", compression: format.CompressionZstd},
		{name: "s2", compression: format.CompressionS2},
		{name: "lz4", compression: format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := buildDataset(t)

			raw, err := Encode(ds, WithCompression(tt.compression))
			require.NoError(t, err)

			decoded, err := Decode(raw)
			require.NoError(t, err)

			require.Equal(t, ds.NumRows(), decoded.NumRows())
			require.Equal(t, ds.Names(), decoded.Names())

			rating, err := decoded.Numeric("imdb_rating")
			require.NoError(t, err)
			require.Equal(t, 7.2, rating.At(0))
			require.True(t, math.IsNaN(rating.At(2)), "NaN observations must survive the round trip")

			genre, err := decoded.Categorical("genre")
			require.NoError(t, err)
			require.Equal(t, []string{"Drama", "Comedy", "Horror"}, genre.Levels())
			require.Equal(t, "Comedy", genre.Reference(), "reference level must survive the round trip")
			require.Equal(t, "", genre.At(3), "missing labels must survive the round trip")
		})
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	ds := buildDataset(t)
	raw, err := Encode(ds)
	require.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		bad := append([]byte(nil), raw...)
		bad[len(bad)-1] ^= 0xFF
		_, err := Decode(bad)
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(raw[:len(raw)-4])
		require.ErrorIs(t, err, ErrInvalidSnapshot)

		_, err = Decode(raw[:10])
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), raw...)
		bad[0] = 'X'
		_, err := Decode(bad)
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("bad version", func(t *testing.T) {
		bad := append([]byte(nil), raw...)
		bad[4] = 99
		_, err := Decode(bad)
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("unknown codec", func(t *testing.T) {
		bad := append([]byte(nil), raw...)
		bad[5] = 0x7F
		_, err := Decode(bad)
		require.ErrorIs(t, err, ErrInvalidSnapshot)
	})
}

func TestEncodeRejectsUnknownCompression(t *testing.T) {
	ds, err := dataset.New(dataset.NewNumeric("x", []float64{1, 2, 3}))
	require.NoError(t, err)

	_, err = Encode(ds, WithCompression(format.CompressionType(0x7F)))
	require.ErrorIs(t, err, dataset.ErrInvalidInput)
}

func TestDecodeRejectsMismatchedColumnID(t *testing.T) {
	ds, err := dataset.New(dataset.NewNumeric("x", []float64{1, 2, 3}))
	require.NoError(t, err)

	raw, err := Encode(ds, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// The first column record starts right after the header: a 2-byte name
	// length, the name "x", then the xxHash64 ID of the name. Corrupt the ID
	// and re-stamp the payload checksum so only the ID check can fire.
	idOff := headerSize + 2 + len("x")
	raw[idOff] ^= 0xFF
	binary.LittleEndian.PutUint64(raw[16:24], hash.Checksum(raw[headerSize:]))

	_, err = Decode(raw)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	require.ErrorContains(t, err, "does not match its ID")
}

func TestEncodeDecodeSingleNumericColumn(t *testing.T) {
	ds, err := dataset.New(dataset.NewNumeric("x", []float64{1, 2, 3}))
	require.NoError(t, err)

	raw, err := Encode(ds, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	x, err := decoded.Numeric("x")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, x.Values())
}
