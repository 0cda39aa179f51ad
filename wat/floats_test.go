package wat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFloat(t *testing.T) {
	t.Run("nan", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("nan"))
		require.True(t, ok)
		require.Equal(t, FloatLit{Kind: FloatNaN, Sign: SignPositive}, lit)
	})

	t.Run("signed nan", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("-nan"))
		require.True(t, ok)
		require.Equal(t, FloatLit{Kind: FloatNaN, Sign: SignNegative}, lit)
	})

	t.Run("inf", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("+inf"))
		require.True(t, ok)
		require.Equal(t, FloatLit{Kind: FloatInf, Sign: SignPositive}, lit)
	})

	t.Run("nan payload", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("nan:0x7f0001"))
		require.True(t, ok)
		require.Equal(t, FloatKind(FloatNaN), lit.Kind)
		require.Equal(t, []byte("7f0001"), lit.Payload)
	})

	t.Run("decimal with exponent", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("1.5e10"))
		require.True(t, ok)
		require.Equal(t, FloatNumber, lit.Kind)
		require.Equal(t, []byte("1.5"), lit.Mantissa)
		require.Equal(t, int32(10), lit.Exponent)
	})

	t.Run("decimal without exponent", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("3.14"))
		require.True(t, ok)
		require.Equal(t, []byte("3.14"), lit.Mantissa)
		require.Equal(t, int32(0), lit.Exponent)
	})

	t.Run("hex float", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("0x1.8p3"))
		require.True(t, ok)
		require.Equal(t, []byte("1.8"), lit.Mantissa)
		require.Equal(t, int32(3), lit.Exponent)
	})

	t.Run("negative exponent", func(t *testing.T) {
		lit, ok := decodeFloat([]byte("-1.0e-5"))
		require.True(t, ok)
		require.Equal(t, SignNegative, lit.Sign)
		require.Equal(t, int32(-5), lit.Exponent)
	})
}
