package domain

import "strconv"

// ResolutionTag discriminates how a package was obtained.
// Only ResolutionNPM carries a payload the decoder understands.
type ResolutionTag uint8

const (
	ResolutionUninitialized    ResolutionTag = 0
	ResolutionRoot             ResolutionTag = 1
	ResolutionNPM              ResolutionTag = 2
	ResolutionFolder           ResolutionTag = 4
	ResolutionLocalTarball     ResolutionTag = 8
	ResolutionGitHub           ResolutionTag = 16
	ResolutionGitLab           ResolutionTag = 24
	ResolutionGit              ResolutionTag = 32
	ResolutionSymlink          ResolutionTag = 64
	ResolutionWorkspace        ResolutionTag = 72
	ResolutionRemoteTarball    ResolutionTag = 80
	ResolutionSingleFileModule ResolutionTag = 100
)

var resolutionTagNames = map[ResolutionTag]string{
	ResolutionUninitialized:    "uninitialized",
	ResolutionRoot:             "root",
	ResolutionNPM:              "npm",
	ResolutionFolder:           "folder",
	ResolutionLocalTarball:     "local_tarball",
	ResolutionGitHub:           "github",
	ResolutionGitLab:           "gitlab",
	ResolutionGit:              "git",
	ResolutionSymlink:          "symlink",
	ResolutionWorkspace:        "workspace",
	ResolutionRemoteTarball:    "remote_tarball",
	ResolutionSingleFileModule: "single_file_module",
}

// String returns the tag name, or the numeric value for unknown tags.
func (t ResolutionTag) String() string {
	if name, ok := resolutionTagNames[t]; ok {
		return name
	}
	return "resolution(" + strconv.Itoa(int(t)) + ")"
}

// IntegrityTag identifies the digest algorithm of an integrity record.
type IntegrityTag uint8

const (
	IntegrityNone   IntegrityTag = 0
	IntegritySHA1   IntegrityTag = 1
	IntegritySHA256 IntegrityTag = 2
	IntegritySHA384 IntegrityTag = 3
	IntegritySHA512 IntegrityTag = 4
)

// Prefix returns the subresource-integrity prefix for the algorithm.
// It returns false for IntegrityNone and unknown tags.
func (t IntegrityTag) Prefix() (string, bool) {
	switch t {
	case IntegritySHA1:
		return "sha1-", true
	case IntegritySHA256:
		return "sha256-", true
	case IntegritySHA384:
		return "sha384-", true
	case IntegritySHA512:
		return "sha512-", true
	default:
		return "", false
	}
}

// Behavior is the bit set classifying a dependency declaration.
type Behavior uint8

const (
	// BehaviorUnset is the zero value carried by the root entry.
	BehaviorUnset     Behavior = 0
	BehaviorNormal    Behavior = 1 << 1
	BehaviorOptional  Behavior = 1 << 2
	BehaviorDev       Behavior = 1 << 3
	BehaviorPeer      Behavior = 1 << 4
	BehaviorWorkspace Behavior = 1 << 5
)

// Has reports whether any bit of flag is set in b.
func (b Behavior) Has(flag Behavior) bool {
	return b&flag != 0
}

// Version is a decoded semantic version of a registry package.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
	Pre   string
	Build string
}

// String renders the version as major.minor.patch[-pre][+build].
func (v Version) String() string {
	s := strconv.FormatUint(uint64(v.Major), 10) + "." +
		strconv.FormatUint(uint64(v.Minor), 10) + "." +
		strconv.FormatUint(uint64(v.Patch), 10)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}
