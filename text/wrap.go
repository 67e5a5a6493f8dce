// Package text has the small appending writers used to build the canonical
// and wire JSON forms of events without reflection.
package text

// AppendBytesClosure appends an encoding of src to dst.
type AppendBytesClosure func(dst, src []byte) []byte

// Noop appends src unchanged.
func Noop(dst, src []byte) []byte { return append(dst, src...) }

// AppendQuote appends src between double quotes, encoded by ac.
func AppendQuote(dst, src []byte, ac AppendBytesClosure) []byte {
	dst = append(dst, '"')
	dst = ac(dst, src)
	dst = append(dst, '"')
	return dst
}

// Quote appends src between double quotes unchanged.
func Quote(dst, src []byte) []byte { return AppendQuote(dst, src, Noop) }

// AppendList appends each element of src encoded by ac, separated by
// separator.
func AppendList(dst []byte, src [][]byte, separator byte,
	ac AppendBytesClosure) []byte {
	last := len(src) - 1
	for i := range src {
		dst = ac(dst, src[i])
		if i < last {
			dst = append(dst, separator)
		}
	}
	return dst
}

// JSONKey appends a quoted object key and its colon.
func JSONKey(dst, k []byte) (b []byte) {
	dst = Quote(dst, k)
	return append(dst, ':')
}
