package lockb

// FormatHash renders a 32-byte meta hash as four dash-separated groups of
// sixteen hex digits. The first group is upper case, the rest lower case.
func FormatHash(b []byte) (string, error) {
	if len(b) < MetaHashSize {
		return "", tooShort("meta hash", MetaHashSize, len(b))
	}

	out := make([]byte, 0, MetaHashSize*2+3)
	for i := range MetaHashSize {
		const lower, upper = "0123456789abcdef", "0123456789ABCDEF"
		digits := lower
		if i < 8 {
			digits = upper
		}
		out = append(out, digits[b[i]>>4], digits[b[i]&0x0f])
		if i < MetaHashSize-1 && (i+1)%8 == 0 {
			out = append(out, '-')
		}
	}
	return string(out), nil
}
