package lockb

import (
	"encoding/base64"

	"go.trai.ch/lockb/internal/core/domain"
)

const (
	// IntegrityOffset is where the integrity record starts inside the meta column.
	IntegrityOffset = 20
	// IntegritySize is the tag byte plus the digest.
	IntegritySize = 1 + 64
)

// FormatIntegrity renders an integrity record as "<algo>-<base64 digest>".
// It returns an empty string for IntegrityNone and unknown tags.
func FormatIntegrity(rec []byte) (string, error) {
	if len(rec) < IntegritySize {
		return "", tooShort("integrity", IntegritySize, len(rec))
	}
	prefix, ok := domain.IntegrityTag(rec[0]).Prefix()
	if !ok {
		return "", nil
	}
	return prefix + base64.StdEncoding.EncodeToString(rec[1:IntegritySize]), nil
}
