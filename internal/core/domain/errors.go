package domain

import "go.trai.ch/zerr"

var (
	// ErrTruncatedInput is returned when a read would run past the end of the lockfile data.
	ErrTruncatedInput = zerr.New("lockfile is missing data")

	// ErrInvalidLockfile is returned when the lockfile does not start with the expected banner.
	ErrInvalidLockfile = zerr.New("invalid lockfile")

	// ErrOutdatedLockfile is returned when the lockfile format revision is not supported.
	ErrOutdatedLockfile = zerr.New("outdated lockfile version")

	// ErrInvalidAlignment is returned when the envelope declares an input alignment other than 8.
	ErrInvalidAlignment = zerr.New("lockfile validation failed: unexpected input alignment")

	// ErrInvalidFieldCount is returned when the envelope declares a package field count other than 8.
	ErrInvalidFieldCount = zerr.New("lockfile validation failed: unexpected package field count")

	// ErrInvalidRange is returned when an offset or length points outside the data it indexes.
	ErrInvalidRange = zerr.New("lockfile validation failed: invalid range")

	// ErrListTooLong is returned when the package count does not fit in 32 bits.
	ErrListTooLong = zerr.New("lockfile validation failed: list is impossibly long")

	// ErrRecordTooShort is returned when a fixed-size record is shorter than its decoder requires.
	ErrRecordTooShort = zerr.New("record too short")

	// ErrLockfileReadFailed is returned when the binary lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileWriteFailed is returned when the text lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrLockfileOutOfDate is returned when an existing text lockfile differs from the converted output.
	ErrLockfileOutOfDate = zerr.New("text lockfile is out of date")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrWatchFailed is returned when the lockfile cannot be watched for changes.
	ErrWatchFailed = zerr.New("failed to watch lockfile")
)
