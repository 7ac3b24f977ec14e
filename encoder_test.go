package huffpack

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/nuclio/logger"
	"github.com/nuclio/zap"
	"github.com/stretchr/testify/suite"
)

type EncoderTestSuite struct {
	suite.Suite
	logger logger.Logger
}

func (suite *EncoderTestSuite) SetupTest() {
	var err error
	suite.logger, err = nucliozap.NewNuclioZapTest("test")
	suite.Require().NoError(err)
}

func (suite *EncoderTestSuite) newEncoder(format Format) *Encoder {
	opts := DefaultOptions()
	opts.Format = format
	opts.Logger = suite.logger
	return NewEncoder(opts)
}

func (suite *EncoderTestSuite) TestPackedLayout() {
	container, err := suite.newEncoder(FormatPacked).EncodeBytes([]byte("aaab"))
	suite.Require().NoError(err)

	var freqs FrequencyTable
	freqs['a'] = 3
	freqs['b'] = 1
	suite.Require().Equal(packedContainer(&freqs, 4, []byte{0xe0}), container)

	suite.Require().Len(container, 2059)
	suite.Require().Equal(byte(3), container[97*8+7])
	suite.Require().Equal(byte(1), container[98*8+7])
	suite.Require().Equal(byte('|'), container[2048])
	suite.Require().Equal(byte(4), container[2056])
	suite.Require().Equal(byte('|'), container[2057])
}

func (suite *EncoderTestSuite) TestLegacyLayout() {
	container, err := suite.newEncoder(FormatLegacyASCII).EncodeBytes([]byte("aaab"))
	suite.Require().NoError(err)

	var freqs FrequencyTable
	freqs['a'] = 3
	freqs['b'] = 1
	suite.Require().Equal(legacyContainer(&freqs, 4, "1110"), container)
	suite.Require().Len(container, 2086)
	suite.Require().True(strings.HasSuffix(string(container), "|1110"))
}

func (suite *EncoderTestSuite) TestEmptyInput() {
	var freqs FrequencyTable

	container, err := suite.newEncoder(FormatPacked).EncodeBytes(nil)
	suite.Require().NoError(err)
	suite.Require().Equal(packedContainer(&freqs, 0, nil), container)
	suite.Require().Len(container, 2058)

	container, err = suite.newEncoder(FormatLegacyASCII).EncodeBytes([]byte{})
	suite.Require().NoError(err)
	suite.Require().Equal(legacyContainer(&freqs, 0, ""), container)
}

func (suite *EncoderTestSuite) TestSingleSymbol() {
	var freqs FrequencyTable
	freqs['a'] = 4

	container, err := suite.newEncoder(FormatPacked).EncodeBytes([]byte("aaaa"))
	suite.Require().NoError(err)
	suite.Require().Equal(packedContainer(&freqs, 4, []byte{0x00}), container)

	container, err = suite.newEncoder(FormatLegacyASCII).EncodeBytes([]byte("aaaa"))
	suite.Require().NoError(err)
	suite.Require().Equal(legacyContainer(&freqs, 4, "0000"), container)
}

func (suite *EncoderTestSuite) TestCodeOrder() {
	var freqs FrequencyTable
	freqs['a'] = 1
	freqs['b'] = 1
	freqs['c'] = 1

	// c:"0" a:"10" b:"11"
	container, err := suite.newEncoder(FormatLegacyASCII).EncodeBytes([]byte("cab"))
	suite.Require().NoError(err)
	suite.Require().Equal(legacyContainer(&freqs, 5, "01011"), container)

	container, err = suite.newEncoder(FormatPacked).EncodeBytes([]byte("cab"))
	suite.Require().NoError(err)
	suite.Require().Equal(packedContainer(&freqs, 5, []byte{0x58}), container)
}

func (suite *EncoderTestSuite) TestLegacyFrequencyLimit() {
	encoder := suite.newEncoder(FormatLegacyASCII)

	_, err := encoder.EncodeBytes(bytes.Repeat([]byte{'a'}, 255))
	suite.Require().NoError(err)

	var out bytes.Buffer
	err = encoder.Encode(&out, bytes.NewReader(bytes.Repeat([]byte{'a'}, 256)))
	suite.Require().Error(err)
	suite.Require().True(IsEncodingError(err))
	suite.Require().Zero(out.Len())

	// the packed format has no such limit
	_, err = suite.newEncoder(FormatPacked).EncodeBytes(bytes.Repeat([]byte{'a'}, 256))
	suite.Require().NoError(err)
}

func (suite *EncoderTestSuite) TestCurrentOffset() {
	encoder := suite.newEncoder(FormatPacked)

	expect, err := encoder.EncodeBytes([]byte("aaab"))
	suite.Require().NoError(err)

	reader := bytes.NewReader([]byte("xxaaab"))
	_, err = reader.Seek(2, io.SeekStart)
	suite.Require().NoError(err)

	var out bytes.Buffer
	suite.Require().NoError(encoder.Encode(&out, reader))
	suite.Require().Equal(expect, out.Bytes())
}

func (suite *EncoderTestSuite) TestSinkFailure() {
	fw := &failingWriter{}
	err := suite.newEncoder(FormatPacked).Encode(fw, bytes.NewReader([]byte("hello, world")))
	suite.Require().Error(err)
	suite.Require().True(IsIOFailure(err))
	suite.Require().False(IsEncodingError(err))
}

func (suite *EncoderTestSuite) TestBufferSizes() {
	rng := rand.New(rand.NewSource(4))
	input := make([]byte, 10000)
	for i := range input {
		input[i] = byte(rng.Intn(40) * rng.Intn(7))
	}

	expect, err := suite.newEncoder(FormatPacked).EncodeBytes(input)
	suite.Require().NoError(err)

	for _, sizes := range [][2]int{{1, 8}, {3, 16}, {7, 64}, {4096, 8}, {1, 1 << 20}} {
		opts := DefaultOptions()
		opts.ReaderBufferSize = sizes[0]
		opts.WriterBufferBits = sizes[1]
		opts.Logger = suite.logger

		actual, err := NewEncoder(opts).EncodeBytes(input)
		suite.Require().NoError(err)
		suite.Require().Equal(expect, actual, "buffer sizes %v", sizes)
	}
}

func (suite *EncoderTestSuite) TestDefaultEncoder() {
	expect, err := suite.newEncoder(FormatPacked).EncodeBytes([]byte("mississippi"))
	suite.Require().NoError(err)

	actual, err := EncodeBytes([]byte("mississippi"))
	suite.Require().NoError(err)
	suite.Require().Equal(expect, actual)

	var out bytes.Buffer
	suite.Require().NoError(Encode(&out, strings.NewReader("mississippi")))
	suite.Require().Equal(expect, out.Bytes())
}

func TestEncoderTestSuite(t *testing.T) {
	suite.Run(t, new(EncoderTestSuite))
}
