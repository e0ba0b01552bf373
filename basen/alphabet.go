package basen

// Preconfigured alphabets, spec.md §6.
const (
	alphabetBase64Std = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	alphabetBase64URL = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	alphabetBase32Std = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	alphabetBase16    = "0123456789ABCDEF"
)

// Base64Std returns a paired encoder/decoder for standard Base64
// (RFC 4648 §4): '=' padding on encode, case-sensitive decode.
func Base64Std() (*Encoder, *Decoder) {
	return mustPair(alphabetBase64Std, 6, '=', false)
}

// Base64URL returns a paired encoder/decoder for URL-safe Base64
// (RFC 4648 §5).
func Base64URL() (*Encoder, *Decoder) {
	return mustPair(alphabetBase64URL, 6, '=', false)
}

// Base32Std returns a paired encoder/decoder for standard Base32
// (RFC 4648 §6).
func Base32Std() (*Encoder, *Decoder) {
	return mustPair(alphabetBase32Std, 5, '=', false)
}

// Base16 returns a paired encoder/decoder for hex (RFC 4648 §8),
// unpadded, case-insensitive on decode since hex digits are
// conventionally written in either case.
func Base16() (*Encoder, *Decoder) {
	return mustPair(alphabetBase16, 4, 0, true)
}

func mustPair(alphabet string, bitsPerChar int, padding byte, caseInsensitive bool) (*Encoder, *Decoder) {
	p := noPadding
	if padding != 0 {
		p = int(padding)
	}
	enc, err := NewEncoder([]byte(alphabet), bitsPerChar, p)
	if err != nil {
		panic(err)
	}
	lookup := NewDecodeLookup([]byte(alphabet), 1<<uint(bitsPerChar), caseInsensitive)
	dec, err := NewDecoder(lookup, bitsPerChar)
	if err != nil {
		panic(err)
	}
	return enc, dec
}
