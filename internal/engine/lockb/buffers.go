package lockb

import (
	"encoding/binary"

	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/zerr"
)

// DependencySize is the width of one record in the dependencies buffer.
const DependencySize = 26

// Buffers holds the six variable-length regions that follow the package table.
type Buffers struct {
	Trees               []byte
	HoistedDependencies []byte
	Resolutions         []byte
	Dependencies        []byte
	ExternStrings       []byte
	StringBytes         []byte
}

// BufferNames lists the auxiliary buffers in stream order.
var BufferNames = [...]string{
	"trees",
	"hoisted_dependencies",
	"resolutions",
	"dependencies",
	"extern_strings",
	"string_bytes",
}

func (b *Buffers) targets() [len(BufferNames)]*[]byte {
	return [...]*[]byte{
		&b.Trees,
		&b.HoistedDependencies,
		&b.Resolutions,
		&b.Dependencies,
		&b.ExternStrings,
		&b.StringBytes,
	}
}

// readBuffers reads each (start, end) pair from endAt on and captures the
// region it points to. The cursor is left at the end of the last region.
func readBuffers(c *cursor, endAt uint64) (Buffers, error) {
	var b Buffers
	if err := c.seek(endAt); err != nil {
		return b, err
	}
	for i, dst := range b.targets() {
		start, err := c.u64()
		if err != nil {
			return b, err
		}
		end, err := c.u64()
		if err != nil {
			return b, err
		}
		if start > end || end > uint64(len(c.data)) {
			err := zerr.Wrap(domain.ErrInvalidRange, "auxiliary buffer bounds")
			err = zerr.With(err, "buffer", BufferNames[i])
			err = zerr.With(err, "start", start)
			return b, zerr.With(err, "end", end)
		}
		c.pos = int(start)
		if *dst, err = c.read(end - start); err != nil {
			return b, err
		}
	}
	return b, nil
}

// resolutionIDs is a little-endian u32 array viewed in place.
type resolutionIDs []byte

func (r resolutionIDs) Len() int {
	return len(r) / 4
}

func (r resolutionIDs) At(i int) uint32 {
	return binary.LittleEndian.Uint32(r[i*4:])
}

// indexFrom returns the first position at or after from holding v, or -1.
func (r resolutionIDs) indexFrom(from int, v uint32) int {
	for i := from; i < r.Len(); i++ {
		if r.At(i) == v {
			return i
		}
	}
	return -1
}
