package wire

// EncodeBool appends a single byte: 0x01 for true, 0x00 for false.
func EncodeBool(sink *Sink, b bool) {
	if b {
		sink.buf = append(sink.buf, 1)
		return
	}
	sink.buf = append(sink.buf, 0)
}

// DecodeBool reads a single byte; zero is false, anything else is true.
func DecodeBool(src *Source) (bool, error) {
	b, err := src.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}
