package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharLength(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input []byte
		count int
		valid bool
	}{
		{"empty", []byte{}, 0, true},
		{"ascii", []byte("hello"), 5, true},
		{"two byte", []byte("héllo"), 5, true},
		{"three byte", []byte("€uro"), 4, true},
		{"four byte", []byte("a😀b"), 3, true},
		{"mixed", []byte("Ωmega 😀 €"), 9, true},
		{"lone continuation", []byte{0x80}, 0, false},
		{"truncated two byte", []byte{0xc3}, 0, false},
		{"truncated four byte", []byte{0xf0, 0x9f, 0x98}, 0, false},
		{"bad continuation", []byte{0xe2, 0x28, 0xa1}, 0, false},
		{"five byte leader", []byte{0xf8, 0x88, 0x80, 0x80, 0x80}, 0, false},
		{"six byte leader", []byte{0xfc, 0x84, 0x80, 0x80, 0x80, 0x80}, 0, false},
		{"invalid byte", []byte{0xff}, 0, false},
		{"valid then invalid", []byte{'o', 'k', 0xfe}, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			count, valid := CharLength(tc.input)
			assert.Equal(t, tc.valid, valid)
			if tc.valid {
				assert.Equal(t, tc.count, count)
			}
			assert.Equal(t, tc.valid, IsUTF8(tc.input))
		})
	}
}

// A character count must equal the number of code points, never the number
// of bytes.
func TestCharLengthCountsCodePoints(t *testing.T) {
	s := "naïve café 🚀🚀"
	count, ok := CharLength([]byte(s))
	assert.True(t, ok)
	assert.Equal(t, len([]rune(s)), count)
	assert.NotEqual(t, len(s), count)
}

func TestIsUTF8Stable(t *testing.T) {
	b := []byte{0xe2, 0x82, 0xac, 0x00}
	assert.Equal(t, IsUTF8(b), IsUTF8(b))
	assert.Equal(t, []byte{0xe2, 0x82, 0xac, 0x00}, b)
}
