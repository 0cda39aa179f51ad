package wat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"123", true},
		{"1_000", true},
		{"1__000", false},
		{"_123", false},
		{"123_", false},
		{"0x1F", true},
		{"0x1_F", true},
		{"0x", false},
		{"abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, isNumber([]byte(tt.input)))
		})
	}
}

func TestIsFloat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1.0", true},
		{"1.", true},
		{"1.0e10", true},
		{"1.0e+10", true},
		{"1.0e-10", true},
		{".5", false},
		{"nan", true},
		{"-nan", true},
		{"+inf", true},
		{"nan:0x1", true},
		{"nan:0x", false},
		{"0x1.8p3", true},
		{"0x1.8p-3", true},
		{"0x1p3", true},
		{"0x1", true}, // matches the hexfloat grammar too; scanReserved's rule order prefers Unsigned
		{"1e", false},
		{"1.0p10", false},
		{"-1.5", true},
		{"+1.5e2", true},
		{"-1", true}, // matches the hexfloat-less decimal grammar trivially
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, isFloat([]byte(tt.input)))
		})
	}
}

func TestIsHexDigitChar(t *testing.T) {
	require.True(t, isHexDigitChar('a'))
	require.True(t, isHexDigitChar('F'))
	require.True(t, isHexDigitChar('9'))
	require.False(t, isHexDigitChar('g'))
	require.False(t, isHexDigitChar('Z'))
}
