package wat

import "strconv"

// decodeFloat parses the content of a Float token into its sign, kind, and
// (for an ordinary number) mantissa bytes and exponent. The lexer has
// already validated the token against the float grammar, so this pass only
// needs to locate the pieces.
func decodeFloat(content []byte) (FloatLit, bool) {
	sign := SignPositive
	i := 0
	if len(content) > 0 && (content[0] == '+' || content[0] == '-') {
		if content[0] == '-' {
			sign = SignNegative
		}
		i = 1
	}
	rest := content[i:]

	if string(rest) == "nan" {
		return FloatLit{Kind: FloatNaN, Sign: sign}, true
	}
	if string(rest) == "inf" {
		return FloatLit{Kind: FloatInf, Sign: sign}, true
	}
	if len(rest) > 6 && string(rest[:6]) == "nan:0x" {
		return FloatLit{Kind: FloatNaN, Sign: sign, Payload: append([]byte(nil), rest[6:]...)}, true
	}

	if len(rest) > 2 && rest[0] == '0' && rest[1] == 'x' {
		mantissa, exponent := splitHexFloat(rest[2:])
		return FloatLit{Kind: FloatNumber, Sign: sign, Mantissa: mantissa, Exponent: exponent}, true
	}

	mantissa, exponent := splitDecimalFloat(rest)
	return FloatLit{Kind: FloatNumber, Sign: sign, Mantissa: mantissa, Exponent: exponent}, true
}

// splitDecimalFloat separates a validated decimal float body (no sign) into
// its mantissa bytes (digits and an optional '.', underscores retained) and
// its base-10 exponent (0 if no e/E marker is present).
func splitDecimalFloat(s []byte) ([]byte, int32) {
	return splitFloat(s, 'e', 'E')
}

// splitHexFloat separates a validated hexfloat body (post "0x", no sign)
// into its mantissa bytes and its base-2 exponent (0 if no p/P marker).
func splitHexFloat(s []byte) ([]byte, int32) {
	return splitFloat(s, 'p', 'P')
}

func splitFloat(s []byte, lower, upper byte) ([]byte, int32) {
	for i, b := range s {
		if b == lower || b == upper {
			mantissa := append([]byte(nil), s[:i]...)
			exp := parseSignedExponent(s[i+1:])
			return mantissa, exp
		}
	}
	return append([]byte(nil), s...), 0
}

func parseSignedExponent(s []byte) int32 {
	clean := stripUnderscoresLocal(s)
	n, err := strconv.ParseInt(string(clean), 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}

func stripUnderscoresLocal(s []byte) []byte {
	out := make([]byte, 0, len(s))
	for _, b := range s {
		if b != '_' {
			out = append(out, b)
		}
	}
	return out
}
