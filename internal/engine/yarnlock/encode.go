// Package yarnlock renders decoded binary lockfiles as yarn lockfile v1 text.
package yarnlock

import (
	"strings"

	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/engine/lockb"
	"go.trai.ch/zerr"
)

const (
	headerNotice  = "# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY."
	headerVersion = "# yarn lockfile v1"
	headerHash    = "# bun ./bun.lockb --hash: "
)

// Convert decodes a binary lockfile and renders it as text.
func Convert(buf []byte) (string, error) {
	lf, err := lockb.Decode(buf)
	if err != nil {
		return "", err
	}
	return Encode(lf)
}

// Encode renders lf as yarn lockfile v1 text. The root package is omitted.
// The result ends with a single newline.
func Encode(lf *lockb.Lockfile) (string, error) {
	hash, err := lf.Hash()
	if err != nil {
		return "", err
	}

	lines := []string{headerNotice, headerVersion, headerHash + hash, ""}
	for pkg := range lf.Packages() {
		if lines, err = appendPackage(lines, pkg); err != nil {
			return "", zerr.With(err, "package", pkg.Index())
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}

func appendPackage(lines []string, pkg lockb.Package) ([]string, error) {
	name, err := pkg.Name()
	if err != nil {
		return nil, err
	}
	res, err := pkg.Resolution()
	if err != nil {
		return nil, err
	}
	integrity, err := pkg.Integrity()
	if err != nil {
		return nil, err
	}
	specs, err := specifiers(name, res.Version, pkg.Requests())
	if err != nil {
		return nil, err
	}

	lines = append(lines,
		"",
		specs,
		"  version "+jsonString(res.Version),
		"  resolved "+jsonString(res.URL),
	)
	if integrity != "" {
		lines = append(lines, "  integrity "+integrity)
	}

	deps, err := pkg.Dependencies()
	if err != nil {
		return nil, err
	}
	return appendDependencies(lines, deps)
}

// specifiers renders the "name@range" list of a stanza header. Ranges are
// deduplicated in first-seen order; an empty range stands for ^version.
func specifiers(name, version string, requests []lockb.Dependency) (string, error) {
	seen := make(map[string]struct{}, len(requests))
	items := make([]string, 0, len(requests))
	for _, req := range requests {
		spec, err := req.Literal()
		if err != nil {
			return "", err
		}
		if spec == "" {
			spec = "^" + version
		}
		if _, ok := seen[spec]; ok {
			continue
		}
		seen[spec] = struct{}{}
		items = append(items, Quote(name+"@"+spec))
	}
	return strings.Join(items, ", ") + ":", nil
}

// appendDependencies writes the dependency sections. A new section header
// is written whenever the raw behavior byte changes. Entries whose behavior
// is neither optional, normal nor dev get no header and are skipped.
func appendDependencies(lines []string, deps []lockb.Dependency) ([]string, error) {
	current := domain.BehaviorUnset
	for _, dep := range deps {
		behavior := dep.Behavior()
		if behavior != current {
			header, ok := sectionHeader(behavior)
			if !ok {
				continue
			}
			lines = append(lines, header)
			current = behavior
		}

		name, err := dep.Name()
		if err != nil {
			return nil, err
		}
		literal, err := dep.Literal()
		if err != nil {
			return nil, err
		}
		lines = append(lines, "    "+Quote(name)+` "`+literal+`"`)
	}
	return lines, nil
}

func sectionHeader(b domain.Behavior) (string, bool) {
	switch {
	case b.Has(domain.BehaviorOptional):
		return "  optionalDependencies:", true
	case b.Has(domain.BehaviorNormal):
		return "  dependencies:", true
	case b.Has(domain.BehaviorDev):
		return "  devDependencies:", true
	default:
		return "", false
	}
}
