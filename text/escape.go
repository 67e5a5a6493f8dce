package text

const lowerHex = "0123456789abcdef"

// NostrEscape appends src to dst as the body of a JSON string, escaped the way
// every nostr implementation must escape the canonical form of an event:
//
//   - a double quote as \" and a backslash as \\
//   - backspace, tab, line feed, form feed and carriage return as \b \t \n
//     \f \r
//   - any other byte below 0x20 as \u00XX with lowercase hex digits
//
// Everything else, including '/' and multi-byte UTF-8, is copied verbatim.
func NostrEscape(dst, src []byte) []byte {
	for _, c := range src {
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\r':
			dst = append(dst, '\\', 'r')
		default:
			if c < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', lowerHex[c>>4], lowerHex[c&0xf])
			} else {
				dst = append(dst, c)
			}
		}
	}
	return dst
}
