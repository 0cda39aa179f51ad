// Package watcodec implements the small numeric codecs the WAT grammar
// needs: decimal/hex u32 parsing and little-endian byte encoding of the
// resulting value. It is kept out of the public wat package the way wazero
// keeps leb128/u32/u64 as small internal helper packages.
package watcodec

import "strconv"

// ParseU32 parses bytes as a u32: "0x"-prefixed hex, or plain decimal.
// Underscore digit separators are stripped first.
func ParseU32(bytes []byte) (uint32, bool) {
	if len(bytes) > 2 && bytes[0] == '0' && bytes[1] == 'x' {
		return ParseHexU32(bytes[2:])
	}
	clean := stripUnderscores(bytes)
	n, err := strconv.ParseUint(string(clean), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// ParseHexU32 parses bytes as hex digits (no "0x" prefix) into a u32.
func ParseHexU32(bytes []byte) (uint32, bool) {
	clean := stripUnderscores(bytes)
	n, err := strconv.ParseUint(string(clean), 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func stripUnderscores(bytes []byte) []byte {
	out := make([]byte, 0, len(bytes))
	for _, b := range bytes {
		if b != '_' {
			out = append(out, b)
		}
	}
	return out
}

// EncodeU32LE renders num as little-endian bytes, emitting at least one byte
// and continuing until the remaining value is zero.
func EncodeU32LE(num uint32) []byte {
	result := []byte{byte(num & 0xFF)}
	for num >= 0x100 {
		num >>= 8
		result = append(result, byte(num&0xFF))
	}
	return result
}

// ParseNum parses the content of an Unsigned/Signed-magnitude token (after
// any leading sign has been stripped by the caller) into little-endian byte
// data, per the WAT "num"/"0x hexnum" grammar.
func ParseNum(bytes []byte) ([]byte, bool) {
	if len(bytes) > 2 && bytes[0] == '0' && bytes[1] == 'x' {
		return ParseHexNum(bytes[2:])
	}
	n, ok := ParseU32(bytes)
	if !ok {
		return nil, false
	}
	return EncodeU32LE(n), true
}

// ParseHexNum parses hex digit bytes (no "0x" prefix) into little-endian
// byte data.
func ParseHexNum(bytes []byte) ([]byte, bool) {
	n, ok := ParseHexU32(bytes)
	if !ok {
		return nil, false
	}
	return EncodeU32LE(n), true
}
