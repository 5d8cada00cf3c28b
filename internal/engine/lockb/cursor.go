package lockb

import (
	"encoding/binary"

	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/zerr"
)

// cursor reads little-endian fields from a bounded byte slice.
// Every read is checked against len(data); nothing is copied.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// read returns the next n bytes as a view and advances the cursor.
func (c *cursor) read(n uint64) ([]byte, error) {
	if c.pos > len(c.data) || n > uint64(len(c.data)-c.pos) {
		return nil, truncated(c.pos, n, len(c.data))
	}
	end := c.pos + int(n)
	b := c.data[c.pos:end:end]
	c.pos = end
	return b, nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// seek moves the cursor to an absolute offset inside data.
func (c *cursor) seek(pos uint64) error {
	if pos > uint64(len(c.data)) {
		return truncated(len(c.data), pos-uint64(len(c.data)), len(c.data))
	}
	c.pos = int(pos)
	return nil
}

func truncated(offset int, need uint64, have int) error {
	err := zerr.Wrap(domain.ErrTruncatedInput, "read past end of data")
	err = zerr.With(err, "offset", offset)
	err = zerr.With(err, "need", need)
	return zerr.With(err, "have", have)
}

func tooShort(record string, need, have int) error {
	err := zerr.Wrap(domain.ErrRecordTooShort, record+" too short")
	err = zerr.With(err, "need", need)
	return zerr.With(err, "have", have)
}
