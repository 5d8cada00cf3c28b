// Package lockbtest builds well-formed binary lockfiles for tests.
package lockbtest

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/engine/lockb"
)

// Byte offsets of the envelope fields.
const (
	OffsetFormat     = len(lockb.Magic)
	OffsetMetaHash   = OffsetFormat + 4
	OffsetEnd        = OffsetMetaHash + lockb.MetaHashSize
	OffsetListLen    = OffsetEnd + 8
	OffsetAlignment  = OffsetListLen + 8
	OffsetFieldCount = OffsetAlignment + 8
	OffsetBeginAt    = OffsetFieldCount + 8
	OffsetEndAt      = OffsetBeginAt + 8

	// TableOffset is where the builder places the package table: the first
	// aligned offset past the envelope.
	TableOffset = (lockb.HeaderSize + 7) &^ 7
)

// Dependency is a dependency declared by a package.
type Dependency struct {
	Name     string
	Literal  string
	Behavior domain.Behavior
	Tag      uint8
	// Resolves is the index of the package the declaration resolved to.
	Resolves int
}

// Package is one row of the package table. Tag defaults to ResolutionNPM.
type Package struct {
	Name         string
	Tag          domain.ResolutionTag
	URL          string
	Version      domain.Version
	Integrity    domain.IntegrityTag
	Digest       []byte
	Dependencies []Dependency
}

// Builder assembles a binary lockfile. The root package is always index 0.
type Builder struct {
	format   uint32
	metaHash [lockb.MetaHashSize]byte
	root     []Dependency
	packages []Package
}

// New returns a builder holding only the root package.
func New() *Builder {
	return &Builder{format: lockb.FormatVersion}
}

// Format overrides the format revision written to the envelope.
func (b *Builder) Format(v uint32) *Builder {
	b.format = v
	return b
}

// MetaHash sets the lockfile content hash.
func (b *Builder) MetaHash(h [lockb.MetaHashSize]byte) *Builder {
	b.metaHash = h
	return b
}

// Root sets the dependencies declared by the root package.
func (b *Builder) Root(deps ...Dependency) *Builder {
	b.root = deps
	return b
}

// Add appends a package and returns its index.
func (b *Builder) Add(p Package) int {
	b.packages = append(b.packages, p)
	return len(b.packages)
}

// Build encodes the lockfile.
func (b *Builder) Build() []byte {
	w := &writer{}
	rows := append([]Package{{Tag: domain.ResolutionRoot, Dependencies: b.root}}, b.packages...)

	// Dependency records are laid out row by row so each row's list is contiguous.
	var deps, ids []byte
	depSlots := make([][2]uint32, len(rows))
	for i, row := range rows {
		depSlots[i] = [2]uint32{uint32(len(deps) / lockb.DependencySize), uint32(len(row.Dependencies))}
		for _, d := range row.Dependencies {
			rec := make([]byte, lockb.DependencySize)
			copy(rec[0:8], w.slot(d.Name))
			binary.LittleEndian.PutUint64(rec[8:16], xxhash.Sum64String(d.Name))
			rec[16] = byte(d.Behavior)
			rec[17] = d.Tag
			copy(rec[18:26], w.slot(d.Literal))
			deps = append(deps, rec...)
			ids = binary.LittleEndian.AppendUint32(ids, uint32(d.Resolves))
		}
	}

	var columns [8][]byte
	for i, row := range rows {
		columns[0] = append(columns[0], w.slot(row.Name)...)
		columns[1] = binary.LittleEndian.AppendUint64(columns[1], xxhash.Sum64String(row.Name))
		columns[2] = append(columns[2], w.resolution(row)...)
		columns[3] = binary.LittleEndian.AppendUint32(columns[3], depSlots[i][0])
		columns[3] = binary.LittleEndian.AppendUint32(columns[3], depSlots[i][1])
		columns[4] = append(columns[4], make([]byte, lockb.ColumnResolutions.Stride())...)
		columns[5] = append(columns[5], meta(row)...)
		columns[6] = append(columns[6], make([]byte, lockb.ColumnBin.Stride())...)
		columns[7] = append(columns[7], make([]byte, lockb.ColumnScripts.Stride())...)
	}

	out := make([]byte, TableOffset, TableOffset+len(rows)*lockb.RowSize)
	for _, col := range columns {
		out = append(out, col...)
	}
	endAt := len(out)

	for _, data := range [][]byte{nil, nil, ids, deps, nil, w.strings} {
		start := uint64(len(out) + 16)
		out = binary.LittleEndian.AppendUint64(out, start)
		out = binary.LittleEndian.AppendUint64(out, start+uint64(len(data)))
		out = append(out, data...)
	}

	copy(out, lockb.Magic)
	binary.LittleEndian.PutUint32(out[OffsetFormat:], b.format)
	copy(out[OffsetMetaHash:], b.metaHash[:])
	binary.LittleEndian.PutUint64(out[OffsetEnd:], uint64(len(out)))
	binary.LittleEndian.PutUint64(out[OffsetListLen:], uint64(len(rows)))
	binary.LittleEndian.PutUint64(out[OffsetAlignment:], lockb.InputAlignment)
	binary.LittleEndian.PutUint64(out[OffsetFieldCount:], lockb.FieldCount)
	binary.LittleEndian.PutUint64(out[OffsetBeginAt:], uint64(TableOffset))
	binary.LittleEndian.PutUint64(out[OffsetEndAt:], uint64(endAt))
	return out
}

// writer accumulates the string_bytes buffer while slots are encoded.
type writer struct {
	strings []byte
}

// slot encodes s inline when it fits in eight bytes without setting the
// external flag, and appends it to string_bytes otherwise.
func (w *writer) slot(s string) []byte {
	out := make([]byte, lockb.SlotSize)
	if len(s) < lockb.SlotSize || (len(s) == lockb.SlotSize && s[lockb.SlotSize-1] < 0x80) {
		copy(out, s)
		return out
	}
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(w.strings)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(s))|0x80000000)
	w.strings = append(w.strings, s...)
	return out
}

func (w *writer) resolution(p Package) []byte {
	rec := make([]byte, lockb.ResolutionSize)
	tag := p.Tag
	if tag == domain.ResolutionUninitialized {
		tag = domain.ResolutionNPM
	}
	rec[0] = byte(tag)
	if tag != domain.ResolutionNPM {
		return rec
	}
	copy(rec[8:16], w.slot(p.URL))
	binary.LittleEndian.PutUint32(rec[16:20], p.Version.Major)
	binary.LittleEndian.PutUint32(rec[20:24], p.Version.Minor)
	binary.LittleEndian.PutUint32(rec[24:28], p.Version.Patch)
	copy(rec[32:40], w.slot(p.Version.Pre))
	copy(rec[48:56], w.slot(p.Version.Build))
	return rec
}

func meta(p Package) []byte {
	m := make([]byte, lockb.ColumnMeta.Stride())
	m[lockb.IntegrityOffset] = byte(p.Integrity)
	copy(m[lockb.IntegrityOffset+1:lockb.IntegrityOffset+lockb.IntegritySize], p.Digest)
	return m
}
