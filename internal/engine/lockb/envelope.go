package lockb

import (
	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// Magic is the fixed preamble of every binary lockfile.
	Magic = "#!/usr/bin/env bun\nbun-lockfile-format-v0\n"
	// FormatVersion is the only layout revision the decoder accepts.
	FormatVersion uint32 = 2
	// InputAlignment is the required value of the alignment header field.
	InputAlignment uint64 = 8
	// FieldCount is the required number of package table columns.
	FieldCount uint64 = 8
	// MetaHashSize is the length of the lockfile content hash.
	MetaHashSize = 32
	// HeaderSize is the number of bytes consumed by the envelope.
	HeaderSize = len(Magic) + 4 + MetaHashSize + 6*8

	maxListLen uint64 = 1 << 32
)

// Envelope is the decoded fixed header of a binary lockfile.
type Envelope struct {
	Format         uint32
	MetaHash       []byte
	End            uint64
	ListLen        uint64
	InputAlignment uint64
	FieldCount     uint64
	BeginAt        uint64
	EndAt          uint64
}

// readEnvelope decodes the header at the cursor position and validates it
// against the total input length.
func readEnvelope(c *cursor) (Envelope, error) {
	var env Envelope

	magic, err := c.read(uint64(len(Magic)))
	if err != nil {
		return env, err
	}
	if string(magic) != Magic {
		return env, zerr.Wrap(domain.ErrInvalidLockfile, "magic header mismatch")
	}

	if env.Format, err = c.u32(); err != nil {
		return env, err
	}
	if env.Format != FormatVersion {
		return env, zerr.With(
			zerr.Wrap(domain.ErrOutdatedLockfile, "unsupported format"), "format", env.Format)
	}

	if env.MetaHash, err = c.read(MetaHashSize); err != nil {
		return env, err
	}

	if env.End, err = c.u64(); err != nil {
		return env, err
	}
	if env.End > uint64(len(c.data)) {
		err := zerr.Wrap(domain.ErrTruncatedInput, "declared end exceeds input")
		err = zerr.With(err, "end", env.End)
		return env, zerr.With(err, "len", len(c.data))
	}

	if env.ListLen, err = c.u64(); err != nil {
		return env, err
	}
	if env.ListLen >= maxListLen {
		return env, zerr.With(zerr.Wrap(domain.ErrListTooLong, "package list"), "list_len", env.ListLen)
	}

	if env.InputAlignment, err = c.u64(); err != nil {
		return env, err
	}
	if env.InputAlignment != InputAlignment {
		return env, zerr.With(
			zerr.Wrap(domain.ErrInvalidAlignment, "package list"), "alignment", env.InputAlignment)
	}

	if env.FieldCount, err = c.u64(); err != nil {
		return env, err
	}
	if env.FieldCount != FieldCount {
		return env, zerr.With(
			zerr.Wrap(domain.ErrInvalidFieldCount, "package list"), "field_count", env.FieldCount)
	}

	if env.BeginAt, err = c.u64(); err != nil {
		return env, err
	}
	if env.EndAt, err = c.u64(); err != nil {
		return env, err
	}
	if env.BeginAt > env.End || env.EndAt > env.End || env.BeginAt > env.EndAt {
		err := zerr.Wrap(domain.ErrInvalidRange, "package list bounds")
		err = zerr.With(err, "begin_at", env.BeginAt)
		err = zerr.With(err, "end_at", env.EndAt)
		return env, zerr.With(err, "end", env.End)
	}

	return env, nil
}
