package lockb

import (
	"encoding/binary"

	"go.trai.ch/lockb/internal/core/domain"
)

// ResolutionSize is the width of a resolution record.
const ResolutionSize = 64

// Offsets inside a registry resolution record.
const (
	npmURLOffset     = 8
	npmMajorOffset   = 16
	npmMinorOffset   = 20
	npmPatchOffset   = 24
	npmVersionTagOff = 32
	npmPreOffset     = npmVersionTagOff
	npmBuildOffset   = npmVersionTagOff + 16
)

// Resolution is the decoded form of a resolution record.
// Only registry packages carry a URL and version; other tags leave both empty.
type Resolution struct {
	Tag     domain.ResolutionTag
	URL     string
	Version string
}

// DecodeResolution decodes a 64-byte resolution record.
func DecodeResolution(rec, stringBytes []byte) (Resolution, error) {
	if len(rec) < ResolutionSize {
		return Resolution{}, tooShort("resolution", ResolutionSize, len(rec))
	}

	res := Resolution{Tag: domain.ResolutionTag(rec[0])}
	if res.Tag != domain.ResolutionNPM {
		return res, nil
	}

	url, err := ResolveString(rec[npmURLOffset:npmURLOffset+SlotSize], stringBytes)
	if err != nil {
		return res, err
	}
	pre, err := ResolveString(rec[npmPreOffset:npmPreOffset+SlotSize], stringBytes)
	if err != nil {
		return res, err
	}
	build, err := ResolveString(rec[npmBuildOffset:npmBuildOffset+SlotSize], stringBytes)
	if err != nil {
		return res, err
	}

	v := domain.Version{
		Major: binary.LittleEndian.Uint32(rec[npmMajorOffset:]),
		Minor: binary.LittleEndian.Uint32(rec[npmMinorOffset:]),
		Patch: binary.LittleEndian.Uint32(rec[npmPatchOffset:]),
		Pre:   pre,
		Build: build,
	}
	res.URL = url
	res.Version = v.String()
	return res, nil
}
