package yarnlock_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/engine/lockb"
	"go.trai.ch/lockb/internal/engine/lockb/lockbtest"
	"go.trai.ch/lockb/internal/engine/yarnlock"
)

func convert(t *testing.T, b *lockbtest.Builder) string {
	t.Helper()
	out, err := yarnlock.Convert(b.Build())
	require.NoError(t, err)
	return out
}

func TestConvert_Golden(t *testing.T) {
	tests := []struct {
		name    string
		builder *lockbtest.Builder
	}{
		{name: "sample", builder: lockbtest.Sample()},
		{name: "root_only", builder: lockbtest.New()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, tt.name, []byte(convert(t, tt.builder)))
		})
	}
}

func TestConvert_RootOnly(t *testing.T) {
	out := convert(t, lockbtest.New())

	assert.Equal(t, "# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.\n"+
		"# yarn lockfile v1\n"+
		"# bun ./bun.lockb --hash: 0000000000000000-0000000000000000-0000000000000000-0000000000000000\n"+
		"\n", out)
}

func TestConvert_Header(t *testing.T) {
	out := convert(t, lockbtest.Sample())
	lines := strings.Split(out, "\n")

	require.Greater(t, len(lines), 3)
	assert.Equal(t, "# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.", lines[0])
	assert.Equal(t, "# yarn lockfile v1", lines[1])
	assert.Equal(t, "# bun ./bun.lockb --hash: A0A5AAAFB4B9BEC3-c8cdd2d7dce1e6eb-f0f5faff04090e13-181d22272c31363b", lines[2])
	assert.Empty(t, lines[3])
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestConvert_Deterministic(t *testing.T) {
	buf := lockbtest.Sample().Build()

	first, err := yarnlock.Convert(buf)
	require.NoError(t, err)
	second, err := yarnlock.Convert(buf)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConvert_Version(t *testing.T) {
	b := lockbtest.New().Root(lockbtest.Dependency{
		Name: "pkg", Literal: "^1.0.0", Behavior: domain.BehaviorNormal, Resolves: 1,
	})
	b.Add(lockbtest.Package{Name: "pkg", URL: "u", Version: domain.Version{Major: 1, Minor: 2, Patch: 3}})

	out := convert(t, b)
	assert.Contains(t, out, "\n  version \"1.2.3\"\n")
	assert.Contains(t, out, "\n  resolved \"u\"\n")
}

func TestConvert_SpecifierMerge(t *testing.T) {
	b := lockbtest.New().Root(
		lockbtest.Dependency{Name: "a", Literal: "^1.0.0", Behavior: domain.BehaviorNormal, Resolves: 2},
		lockbtest.Dependency{Name: "b", Literal: "^2.0.0", Behavior: domain.BehaviorNormal, Resolves: 1},
	)
	b.Add(lockbtest.Package{
		Name:    "b",
		Version: domain.Version{Major: 2},
		Dependencies: []lockbtest.Dependency{
			{Name: "a", Literal: "^1.0.0", Behavior: domain.BehaviorNormal, Resolves: 2},
		},
	})
	b.Add(lockbtest.Package{Name: "a", Version: domain.Version{Major: 1, Minor: 4}})

	out := convert(t, b)
	assert.Contains(t, out, "\na@^1.0.0:\n")
	assert.NotContains(t, out, "a@^1.0.0, a@^1.0.0")
}

func TestConvert_EmptySpecifierUsesVersion(t *testing.T) {
	b := lockbtest.New().Root(
		lockbtest.Dependency{Name: "a", Literal: "", Behavior: domain.BehaviorNormal, Resolves: 1},
		lockbtest.Dependency{Name: "a", Literal: "^1.4.0", Behavior: domain.BehaviorDev, Resolves: 1},
	)
	b.Add(lockbtest.Package{Name: "a", Version: domain.Version{Major: 1, Minor: 4}})

	assert.Contains(t, convert(t, b), "\na@^1.4.0:\n")
}

func TestConvert_IntegrityOmitted(t *testing.T) {
	b := lockbtest.New()
	b.Add(lockbtest.Package{Name: "none", Integrity: domain.IntegrityNone, Digest: lockbtest.Digest(9)})
	b.Add(lockbtest.Package{Name: "some", Integrity: domain.IntegritySHA512, Digest: lockbtest.Digest(9)})

	out := convert(t, b)
	assert.Equal(t, 1, strings.Count(out, "  integrity sha512-"))
	assert.NotContains(t, out, "  integrity \n")
}

func TestConvert_ScopedNameQuoted(t *testing.T) {
	b := lockbtest.New().Root(lockbtest.Dependency{
		Name: "@scope/pkg", Literal: "^1.0.0", Behavior: domain.BehaviorNormal, Resolves: 1,
	})
	b.Add(lockbtest.Package{Name: "@scope/pkg", Version: domain.Version{Major: 1}})

	assert.Contains(t, convert(t, b), "\n\"@scope/pkg@^1.0.0\":\n")
}

func TestConvert_DependencySections(t *testing.T) {
	b := lockbtest.New()
	b.Add(lockbtest.Package{
		Name: "host",
		Dependencies: []lockbtest.Dependency{
			{Name: "a", Literal: "1", Behavior: domain.BehaviorNormal, Resolves: 2},
			{Name: "peer", Literal: "2", Behavior: domain.BehaviorPeer, Resolves: 2},
			{Name: "b", Literal: "3", Behavior: domain.BehaviorNormal, Resolves: 2},
			{Name: "c", Literal: "4", Behavior: domain.BehaviorOptional | domain.BehaviorNormal, Resolves: 2},
			{Name: "d", Literal: "5", Behavior: domain.BehaviorDev, Resolves: 2},
			{Name: "e", Literal: "6", Behavior: domain.BehaviorNormal, Resolves: 2},
		},
	})
	b.Add(lockbtest.Package{Name: "target"})

	out := convert(t, b)
	assert.Contains(t, out, "  dependencies:\n"+
		"    a \"1\"\n"+
		"    b \"3\"\n"+
		"  optionalDependencies:\n"+
		"    c \"4\"\n"+
		"  devDependencies:\n"+
		"    d \"5\"\n"+
		"  dependencies:\n"+
		"    e \"6\"\n")
	assert.NotContains(t, out, "peer")
}

func TestConvert_LiteralNotEscaped(t *testing.T) {
	b := lockbtest.New()
	b.Add(lockbtest.Package{
		Name: "host",
		Dependencies: []lockbtest.Dependency{
			{Name: "a", Literal: `>=1 <2 "x"`, Behavior: domain.BehaviorNormal, Resolves: 1},
		},
	})

	assert.Contains(t, convert(t, b), "    a \">=1 <2 \"x\"\"\n")
}

func TestConvert_InvalidUTF8Replaced(t *testing.T) {
	b := lockbtest.New().Root(lockbtest.Dependency{
		Name: "ab\xffc", Literal: "^1\xff", Behavior: domain.BehaviorNormal, Resolves: 1,
	})
	b.Add(lockbtest.Package{
		Name:    "ab\xffc",
		URL:     "u\xfe",
		Version: domain.Version{Major: 1},
		Dependencies: []lockbtest.Dependency{
			{Name: "d\xff", Literal: "^2\xff", Behavior: domain.BehaviorNormal, Resolves: 2},
		},
	})
	b.Add(lockbtest.Package{Name: "d\xff", Version: domain.Version{Major: 2}})

	out := convert(t, b)
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "\nab\ufffdc@^1\ufffd:\n")
	assert.Contains(t, out, "  resolved \"u\ufffd\"\n")
	assert.Contains(t, out, "    d\ufffd \"^2\ufffd\"\n")
	assert.Contains(t, out, "\nd\ufffd@^2\ufffd:\n")
}

func TestConvert_Errors(t *testing.T) {
	buf := lockbtest.Sample().Build()

	_, err := yarnlock.Convert(buf[:len(buf)-1])
	require.ErrorIs(t, err, domain.ErrTruncatedInput)

	_, err = yarnlock.Convert(nil)
	require.ErrorIs(t, err, domain.ErrTruncatedInput)
}

func TestEncode_PackageError(t *testing.T) {
	b := lockbtest.New()
	b.Add(lockbtest.Package{Name: "a-long-external-name"})
	buf := b.Build()

	lf, err := lockb.Decode(buf)
	require.NoError(t, err)
	// Point the name slot past the end of string_bytes.
	name := lf.Package(1).Field(lockb.ColumnName)
	name[0] = 0xff

	_, err = yarnlock.Encode(lf)
	require.ErrorIs(t, err, domain.ErrInvalidRange)
}
