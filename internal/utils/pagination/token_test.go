package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeOffsetToken(t *testing.T) {
	for _, offset := range []int{0, 1, 20, 12345} {
		token := EncodeOffsetToken(offset)
		assert.NotEmpty(t, token, "Token should not be empty")

		decoded, err := DecodeOffsetToken(token)
		assert.NoError(t, err, "Decoding should not return an error")
		assert.Equal(t, offset, decoded, "Offset should match after decode")
	}
}

func TestDecodeOffsetTokenError(t *testing.T) {
	// Test invalid base64
	_, err := DecodeOffsetToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test wrong tag
	_, err = DecodeOffsetToken(EncodeMultiFieldToken("x", "10"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Test non-numeric offset
	_, err = DecodeOffsetToken(EncodeMultiFieldToken("o", "ten"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offset parse")

	// Test negative offset
	_, err = DecodeOffsetToken(EncodeMultiFieldToken("o", "-5"))
	assert.Error(t, err)
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"2023-05-15", "abc", "42"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)
}
