// Package lockb decodes binary lockfiles into read-only views over the
// input buffer.
package lockb

import (
	"encoding/binary"
	"iter"

	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/zerr"
)

// Lockfile is a decoded binary lockfile. All views alias the input buffer,
// which must not be modified while the Lockfile is in use.
type Lockfile struct {
	Envelope Envelope
	Table    Table
	Buffers  Buffers

	requests [][]Dependency
}

// Decode validates buf and builds the package table, the auxiliary buffers
// and the per-package request lists. It fails on the first violated bound.
func Decode(buf []byte) (*Lockfile, error) {
	c := newCursor(buf)
	env, err := readEnvelope(c)
	if err != nil {
		return nil, err
	}

	// Everything past the envelope lives inside the declared extent.
	c.data = buf[:env.End:env.End]

	table, err := readTable(c, env.BeginAt, env.ListLen)
	if err != nil {
		return nil, err
	}
	buffers, err := readBuffers(c, env.EndAt)
	if err != nil {
		return nil, err
	}

	lf := &Lockfile{
		Envelope: env,
		Table:    table,
		Buffers:  buffers,
	}
	lf.requests = buildRequests(
		resolutionIDs(buffers.Resolutions),
		buffers.Dependencies,
		buffers.StringBytes,
		table.Len(),
	)
	return lf, nil
}

// Hash returns the formatted meta hash.
func (l *Lockfile) Hash() (string, error) {
	return FormatHash(l.Envelope.MetaHash)
}

// Len returns the number of packages including the root.
func (l *Lockfile) Len() int {
	return l.Table.Len()
}

// Package returns the view of package i. Index 0 is the root.
func (l *Lockfile) Package(i int) Package {
	return Package{lf: l, index: i}
}

// Packages yields every package after the root in table order.
func (l *Lockfile) Packages() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for i := 1; i < l.Len(); i++ {
			if !yield(l.Package(i)) {
				return
			}
		}
	}
}

// Package is a view over one row of the package table.
type Package struct {
	lf    *Lockfile
	index int
}

// Index returns the row of the package in the table.
func (p Package) Index() int {
	return p.index
}

// Field returns the raw span of one column for this package.
func (p Package) Field(col Column) []byte {
	return p.lf.Table.Field(p.index, col)
}

// Name decodes the package name.
func (p Package) Name() (string, error) {
	return ResolveString(p.Field(ColumnName), p.lf.Buffers.StringBytes)
}

// NameHash returns the stored hash of the package name.
func (p Package) NameHash() uint64 {
	return binary.LittleEndian.Uint64(p.Field(ColumnNameHash))
}

// Resolution decodes where and at which version the package was resolved.
func (p Package) Resolution() (Resolution, error) {
	return DecodeResolution(p.Field(ColumnResolution), p.lf.Buffers.StringBytes)
}

// Integrity formats the integrity record held in the meta column.
func (p Package) Integrity() (string, error) {
	meta := p.Field(ColumnMeta)
	return FormatIntegrity(meta[IntegrityOffset : IntegrityOffset+IntegritySize])
}

// Dependencies returns the dependencies the package declares, in stored order.
// The dependencies column holds the first record index and the record count.
func (p Package) Dependencies() ([]Dependency, error) {
	slot := p.Field(ColumnDependencies)
	off := uint64(binary.LittleEndian.Uint32(slot[0:4]))
	n := uint64(binary.LittleEndian.Uint32(slot[4:8]))

	buf := p.lf.Buffers.Dependencies
	start, end := off*DependencySize, (off+n)*DependencySize
	if end > uint64(len(buf)) {
		err := zerr.Wrap(domain.ErrInvalidRange, "dependency list out of bounds")
		err = zerr.With(err, "package", p.index)
		err = zerr.With(err, "offset", off)
		return nil, zerr.With(err, "length", n)
	}

	deps := make([]Dependency, 0, n)
	for at := start; at < end; at += DependencySize {
		deps = append(deps, Dependency{
			rec:     buf[at : at+DependencySize : at+DependencySize],
			strings: p.lf.Buffers.StringBytes,
		})
	}
	return deps, nil
}

// Requests returns the dependency records of other packages that resolved
// to this one, in the order they appear in the dependencies buffer.
func (p Package) Requests() []Dependency {
	return p.lf.requests[p.index]
}
