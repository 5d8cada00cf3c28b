package lockb

import (
	"encoding/binary"

	"go.trai.ch/lockb/internal/core/domain"
)

// Offsets inside a dependency record. Byte 17 holds the parse tag of the
// literal, which conversion does not need.
const (
	depNameOffset     = 0
	depNameHashOffset = 8
	depBehaviorOffset = 16
	depLiteralOffset  = 18
)

// Dependency is a view over one 26-byte record of the dependencies buffer.
type Dependency struct {
	rec     []byte
	strings []byte
}

// Name decodes the name of the dependency.
func (d Dependency) Name() (string, error) {
	return ResolveString(d.rec[depNameOffset:depNameOffset+SlotSize], d.strings)
}

// NameHash returns the stored hash of the name.
func (d Dependency) NameHash() uint64 {
	return binary.LittleEndian.Uint64(d.rec[depNameHashOffset:])
}

// Behavior returns the raw behavior flags.
func (d Dependency) Behavior() domain.Behavior {
	return domain.Behavior(d.rec[depBehaviorOffset])
}

// Literal decodes the version range as written by the requester.
func (d Dependency) Literal() (string, error) {
	return ResolveString(d.rec[depLiteralOffset:depLiteralOffset+SlotSize], d.strings)
}
