package huffpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packedContainer(freqs *FrequencyTable, bitCount uint64, payload []byte) []byte {
	var buf bytes.Buffer
	var word [8]byte
	for _, freq := range freqs {
		binary.BigEndian.PutUint64(word[:], freq)
		buf.Write(word[:])
	}
	buf.WriteByte('|')
	binary.BigEndian.PutUint64(word[:], bitCount)
	buf.Write(word[:])
	buf.WriteByte('|')
	buf.Write(payload)
	return buf.Bytes()
}

func legacyContainer(freqs *FrequencyTable, bitCount uint64, payload string) []byte {
	var buf bytes.Buffer
	for _, freq := range freqs {
		fmt.Fprintf(&buf, "%08b", freq)
	}
	buf.WriteByte('|')
	fmt.Fprintf(&buf, "%032b", bitCount)
	buf.WriteByte('|')
	buf.WriteString(payload)
	return buf.Bytes()
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatPacked, FormatLegacyASCII} {
		t.Run(format.String(), func(t *testing.T) {
			var hdr header
			for symbol := range hdr.freqs {
				hdr.freqs[symbol] = uint64(symbol*31) % 256
			}
			hdr.bitCount = 123456

			var buf bytes.Buffer
			bw := NewBitWriter(&buf)
			require.NoError(t, writeHeader(bw, format, &hdr))
			require.NoError(t, bw.Flush())

			br := NewBitReader(bytes.NewReader(buf.Bytes()))
			actual, err := readHeader(br, format)
			require.NoError(t, err)
			assert.Equal(t, hdr, actual)

			ok, err := br.HasNext()
			require.NoError(t, err)
			assert.False(t, ok, "header reader left bytes unread")
		})
	}
}

func TestHeader_Layout(t *testing.T) {
	var hdr header
	hdr.freqs['a'] = 3
	hdr.freqs['b'] = 1
	hdr.bitCount = 4

	var packed bytes.Buffer
	bw := NewBitWriter(&packed)
	require.NoError(t, writeHeader(bw, FormatPacked, &hdr))
	require.NoError(t, bw.Flush())
	assert.Equal(t, packedContainer(&hdr.freqs, 4, nil), packed.Bytes())
	assert.Equal(t, 256*8+1+8+1, packed.Len())

	var legacy bytes.Buffer
	bw = NewBitWriter(&legacy)
	require.NoError(t, writeHeader(bw, FormatLegacyASCII, &hdr))
	require.NoError(t, bw.Flush())
	assert.Equal(t, legacyContainer(&hdr.freqs, 4, ""), legacy.Bytes())
	assert.Equal(t, "00000011", legacy.String()[97*8:98*8])
	assert.Equal(t, "|00000000000000000000000000000100|", legacy.String()[256*8:])
}

func TestHeader_LegacyLimits(t *testing.T) {
	var hdr header
	hdr.freqs[7] = 256

	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	err := writeHeader(bw, FormatLegacyASCII, &hdr)
	require.Error(t, err)
	assert.True(t, IsEncodingError(err))
	assert.Zero(t, bw.BitsWritten())

	hdr.freqs[7] = 255
	hdr.bitCount = 1 << 32
	err = writeHeader(bw, FormatLegacyASCII, &hdr)
	assert.True(t, IsEncodingError(err))
}

func TestHeader_Corrupt(t *testing.T) {
	var freqs FrequencyTable
	freqs['z'] = 9
	good := packedContainer(&freqs, 40, nil)

	type testRow struct {
		name   string
		format Format
		data   []byte
	}

	badSeparator := append([]byte(nil), good...)
	badSeparator[256*8] = '#'

	badDigit := legacyContainer(&freqs, 40, "")
	badDigit[5] = '2'

	testData := [...]testRow{
		{"empty", FormatPacked, nil},
		{"truncated table", FormatPacked, good[:100]},
		{"missing separator", FormatPacked, good[:256*8]},
		{"bad separator", FormatPacked, badSeparator},
		{"truncated count", FormatPacked, good[:256*8+4]},
		{"missing second separator", FormatPacked, good[:len(good)-1]},
		{"legacy bad digit", FormatLegacyASCII, badDigit},
		{"legacy truncated", FormatLegacyASCII, legacyContainer(&freqs, 40, "")[:300]},
		{"packed read as legacy", FormatLegacyASCII, good},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := readHeader(NewBitReader(bytes.NewReader(row.data)), row.format)
			require.Error(t, err)
			assert.True(t, IsCorruptStream(err), "unexpected error: %v", err)
		})
	}
}
