package wat

import "unicode/utf8"

// decodeString unescapes the content of a String token, which includes the
// surrounding quotes. Escapes are resolved per the WAT string grammar:
// single-char escapes, \u{HEX} Unicode scalars re-encoded as UTF-8, and
// two-hex-digit raw byte escapes. The lexer has already validated the
// grammar, so this pass does not re-check UTF-8 validity of unescaped bytes.
func decodeString(raw []byte) string {
	// raw[0] and raw[len-1] are the delimiting quotes.
	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	i := 0
	for i < len(body) {
		ch := body[i]
		i++
		if ch != '\\' {
			out = append(out, ch)
			continue
		}
		escape := body[i]
		i++
		switch escape {
		case 't':
			out = append(out, 0x09)
		case 'n':
			out = append(out, 0x0A)
		case 'r':
			out = append(out, 0x0D)
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		case '\\':
			out = append(out, '\\')
		case 'u':
			// escape == 'u', body[i] == '{'
			i++ // skip '{'
			j := i
			for body[i] != '}' {
				i++
			}
			code, _ := parseHexU32Bytes(body[j:i])
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], rune(code))
			out = append(out, buf[:n]...)
			i++ // skip '}'
		default:
			// Two-hex-digit byte escape: escape is the first digit.
			hi := hexDigitValue(escape)
			lo := hexDigitValue(body[i])
			i++
			out = append(out, hi<<4|lo)
		}
	}
	return string(out)
}

func hexDigitValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return 0
	}
}

func parseHexU32Bytes(s []byte) (uint32, bool) {
	var n uint32
	for _, b := range s {
		if !isHexDigitChar(b) {
			continue
		}
		n = n<<4 | uint32(hexDigitValue(b))
	}
	return n, true
}
