package huffpack

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/icza/bitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	writes int
}

func (fw *failingWriter) Write(p []byte) (int, error) {
	fw.writes++
	return 0, errors.New("disk full")
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (cr *closeRecorder) Close() error {
	cr.closed = true
	return nil
}

func TestBitWriter_FlushLength(t *testing.T) {
	for n := 0; n <= 40; n++ {
		var buf bytes.Buffer
		bw := NewBitWriter(&buf)
		for i := 0; i < n; i++ {
			require.NoError(t, bw.WriteBit(true))
		}
		require.NoError(t, bw.Flush())

		out := buf.Bytes()
		require.Len(t, out, (n+7)/8, "bits=%d", n)
		assert.Equal(t, int64(n), bw.BitsWritten())
		if n%8 != 0 {
			last := out[len(out)-1]
			padding := byte(0xff) >> uint(n%8)
			assert.Zero(t, last&padding, "bits=%d: padding not zero in %08b", n, last)
		}
	}
}

func TestBitWriter_SmallBuffer(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriterSize(&buf, 16)

	require.NoError(t, bw.WriteBits("1111111111111111"))
	require.NoError(t, bw.WriteBits("101"))
	require.NoError(t, bw.Flush())

	// bits 3..7 of the buffer still held ones from the first fill
	assert.Equal(t, []byte{0xff, 0xff, 0xa0}, buf.Bytes())
}

func TestBitWriter_BytesAndWords(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)

	require.NoError(t, bw.WriteByte(0xab))
	require.NoError(t, bw.WriteWord(0x0102030405060708))
	require.NoError(t, bw.WriteBitArray(BitArrayFromByte(0x0f)))
	require.NoError(t, bw.WriteCode(MustParseCode("101")))
	require.NoError(t, bw.Flush())

	expect := []byte{0xab, 1, 2, 3, 4, 5, 6, 7, 8, 0x0f, 0xa0}
	assert.Equal(t, expect, buf.Bytes())
	assert.Equal(t, int64(8+64+8+3), bw.BitsWritten())
}

func TestBitWriter_FlushDoesNotAllocate(t *testing.T) {
	bw := NewBitWriter(io.Discard)

	allocs := testing.AllocsPerRun(100, func() {
		_ = bw.WriteBits("101")
		_ = bw.WriteByte(0x5a)
		_ = bw.Flush()
	})
	assert.Zero(t, allocs)
	assert.Equal(t, int64(101*11), bw.BitsWritten())
}

func TestBitWriter_InvalidBitString(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)

	require.Error(t, bw.WriteBits("0110x1"))
	require.NoError(t, bw.Flush())
	assert.Zero(t, buf.Len())
	assert.Zero(t, bw.BitsWritten())
}

func TestBitWriter_SinkFailure(t *testing.T) {
	fw := &failingWriter{}
	bw := NewBitWriterSize(fw, 8)

	require.NoError(t, bw.WriteByte(0x55))
	err := bw.WriteBit(true)
	require.Error(t, err)
	assert.True(t, IsIOFailure(err))

	// errors are sticky and the sink is not retried
	assert.True(t, IsIOFailure(bw.WriteBit(false)))
	assert.True(t, IsIOFailure(bw.Flush()))
	assert.Equal(t, 1, fw.writes)
}

func TestBitWriter_Close(t *testing.T) {
	sink := &closeRecorder{}
	bw := NewBitWriter(sink)

	require.NoError(t, bw.WriteBits("11"))
	require.NoError(t, bw.Close())
	assert.True(t, sink.closed)
	assert.Equal(t, []byte{0xc0}, sink.Bytes())
}

func TestBitWriter_MatchesBitio(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, n := range []int{1, 7, 8, 9, 100, 1000, 40000} {
		var actual, expect bytes.Buffer
		bw := NewBitWriterSize(&actual, 64)
		ref := bitio.NewWriter(&expect)

		for i := 0; i < n; i++ {
			bit := rng.Intn(2) == 1
			require.NoError(t, bw.WriteBit(bit))
			require.NoError(t, ref.WriteBool(bit))
		}
		require.NoError(t, bw.Flush())
		require.NoError(t, ref.Close())

		assert.Equal(t, expect.Bytes(), actual.Bytes(), "bits=%d", n)
	}
}
