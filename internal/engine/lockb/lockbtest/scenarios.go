package lockbtest

import (
	"go.trai.ch/lockb/internal/core/domain"
)

// Package indexes of the Sample lockfile.
const (
	SampleReact = iota + 1
	SampleLooseEnvify
	SampleJSTokens
	SampleCodeFrame
	SampleFSEvents
	SampleTypeScript
	SampleLeftPad
)

// Digest returns a deterministic 64-byte digest derived from seed.
func Digest(seed byte) []byte {
	d := make([]byte, 64)
	for i := range d {
		d[i] = seed + byte(i*7)
	}
	return d
}

// SampleHash is the meta hash of the Sample lockfile.
func SampleHash() [32]byte {
	var h [32]byte
	for i := range h {
		h[i] = 0xa0 + byte(i*5)
	}
	return h
}

// Sample returns a small but complete lockfile: inline and external
// strings, every dependency section, a peer-only dependency, a package
// without integrity, a non-registry resolution and duplicate specifiers.
func Sample() *Builder {
	b := New().MetaHash(SampleHash())
	b.Root(
		Dependency{Name: "react", Literal: "^18.2.0", Behavior: domain.BehaviorNormal, Resolves: SampleReact},
		Dependency{Name: "@babel/code-frame", Literal: "^7.23.5", Behavior: domain.BehaviorDev, Resolves: SampleCodeFrame},
		Dependency{Name: "js-tokens", Literal: "^4.0.0", Behavior: domain.BehaviorDev, Resolves: SampleJSTokens},
		Dependency{Name: "fsevents", Literal: "", Behavior: domain.BehaviorOptional, Resolves: SampleFSEvents},
		Dependency{Name: "typescript", Literal: "5.4.0-beta", Behavior: domain.BehaviorDev, Resolves: SampleTypeScript},
	)
	b.Add(Package{
		Name:      "react",
		URL:       "https://registry.npmjs.org/react/-/react-18.2.0.tgz",
		Version:   domain.Version{Major: 18, Minor: 2},
		Integrity: domain.IntegritySHA512,
		Digest:    Digest(1),
		Dependencies: []Dependency{
			{Name: "loose-envify", Literal: "^1.1.0", Behavior: domain.BehaviorNormal, Resolves: SampleLooseEnvify},
			{Name: "left-pad", Literal: "^1.3.0", Behavior: domain.BehaviorPeer, Resolves: SampleLeftPad},
		},
	})
	b.Add(Package{
		Name:      "loose-envify",
		URL:       "https://registry.npmjs.org/loose-envify/-/loose-envify-1.4.0.tgz",
		Version:   domain.Version{Major: 1, Minor: 4},
		Integrity: domain.IntegritySHA512,
		Digest:    Digest(2),
		Dependencies: []Dependency{
			{Name: "js-tokens", Literal: "^3.0.0 || ^4.0.0", Behavior: domain.BehaviorNormal, Resolves: SampleJSTokens},
		},
	})
	b.Add(Package{
		Name:      "js-tokens",
		URL:       "https://registry.npmjs.org/js-tokens/-/js-tokens-4.0.0.tgz",
		Version:   domain.Version{Major: 4},
		Integrity: domain.IntegritySHA1,
		Digest:    Digest(3),
	})
	b.Add(Package{
		Name:      "@babel/code-frame",
		URL:       "https://registry.npmjs.org/@babel/code-frame/-/code-frame-7.23.5.tgz",
		Version:   domain.Version{Major: 7, Minor: 23, Patch: 5},
		Integrity: domain.IntegritySHA512,
		Digest:    Digest(4),
		Dependencies: []Dependency{
			{Name: "js-tokens", Literal: "^4.0.0", Behavior: domain.BehaviorNormal, Resolves: SampleJSTokens},
			{Name: "fsevents", Literal: "^2.3.2", Behavior: domain.BehaviorOptional, Resolves: SampleFSEvents},
			{Name: "typescript", Literal: "*", Behavior: domain.BehaviorDev, Resolves: SampleTypeScript},
		},
	})
	b.Add(Package{
		Name:    "fsevents",
		URL:     "https://registry.npmjs.org/fsevents/-/fsevents-2.3.3.tgz",
		Version: domain.Version{Major: 2, Minor: 3, Patch: 3},
	})
	b.Add(Package{
		Name:      "typescript",
		URL:       "https://registry.npmjs.org/typescript/-/typescript-5.4.0-beta.tgz",
		Version:   domain.Version{Major: 5, Minor: 4, Pre: "beta", Build: "sha.1"},
		Integrity: domain.IntegritySHA256,
		Digest:    Digest(6),
	})
	b.Add(Package{
		Name: "left-pad",
		Tag:  domain.ResolutionFolder,
	})
	return b
}
