package codec

// WriteFixed writes exactly len(items) encodings back to back, with no
// length prefix — the fixed-array rule of §4.1. The caller is responsible
// for knowing N on both ends; the wire bytes carry no indication of it.
func WriteFixed[T Encoder](w *Writer, items []T) {
	for _, item := range items {
		item.Write(w)
	}
}

// ReadFixed reads exactly n values with no length prefix.
func ReadFixed[T any](r *Reader, n int, read func(*Reader) (T, error)) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		v, err := read(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SizeFixed sums the encoded size of a fixed-length array of Encoders.
func SizeFixed[T Encoder](items []T) int {
	total := 0
	for _, item := range items {
		total += item.Size()
	}
	return total
}

// WriteSeq writes an 8-byte little-endian length prefix followed by that
// many encodings — the variable-sequence rule of §4.1.
func WriteSeq[T Encoder](w *Writer, items []T) {
	w.WriteInt(len(items))
	WriteFixed(w, items)
}

// ReadSeq reads a length prefix, then that many values.
func ReadSeq[T any](r *Reader, read func(*Reader) (T, error)) ([]T, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	return ReadFixed(r, n, read)
}

// SizeSeq is SizeFixed plus the 8-byte length prefix.
func SizeSeq[T Encoder](items []T) int {
	return 8 + SizeFixed(items)
}
