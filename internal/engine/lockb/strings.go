package lockb

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/text/encoding/unicode"
)

const (
	// SlotSize is the width of an encoded string slot.
	SlotSize = 8

	externalFlag    = 0x80
	externalLenMask = 0x7fffffff
)

// ResolveString decodes a string slot. Inline slots hold the bytes
// themselves up to the first NUL. External slots hold an (offset, length)
// pair into stringBytes; the high bit of the length marks the slot external.
// The bytes are decoded as UTF-8: a leading byte order mark is dropped and
// each ill-formed subsequence becomes U+FFFD.
func ResolveString(slot, stringBytes []byte) (string, error) {
	if len(slot) < SlotSize {
		return "", tooShort("string slot", SlotSize, len(slot))
	}
	slot = slot[:SlotSize]

	if slot[SlotSize-1]&externalFlag == 0 {
		if i := bytes.IndexByte(slot, 0); i >= 0 {
			slot = slot[:i]
		}
		return decodeUTF8(slot), nil
	}

	off := uint64(binary.LittleEndian.Uint32(slot[0:4]))
	n := uint64(binary.LittleEndian.Uint32(slot[4:8]) & externalLenMask)
	if off+n > uint64(len(stringBytes)) {
		err := zerr.Wrap(domain.ErrInvalidRange, "external string out of bounds")
		err = zerr.With(err, "offset", off)
		err = zerr.With(err, "length", n)
		return "", zerr.With(err, "string_bytes", len(stringBytes))
	}
	return decodeUTF8(stringBytes[off : off+n]), nil
}

func decodeUTF8(b []byte) string {
	if utf8.Valid(b) && !bytes.HasPrefix(b, utf8BOM) {
		return string(b)
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError))))
	}
	return string(out)
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}
