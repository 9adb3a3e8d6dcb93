package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjorndm/bazel/internal/core/domain"
)

func TestPackageBuilder_AddRule(t *testing.T) {
	b := domain.NewPackageBuilder("pkg/lib", "pkg/lib/BUILD")

	require.NoError(t, b.AddRule(domain.Rule{
		Kind: domain.NewInternedString("filegroup"),
		Name: domain.NewInternedString("srcs"),
	}))
	require.NoError(t, b.AddRule(domain.Rule{
		Kind: domain.NewInternedString("genrule"),
		Name: domain.NewInternedString("gen"),
	}))

	err := b.AddRule(domain.Rule{
		Kind: domain.NewInternedString("filegroup"),
		Name: domain.NewInternedString("srcs"),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateRule)

	pkg := b.Build()
	require.Len(t, pkg.Rules, 2)

	rule, ok := pkg.Rule("gen")
	require.True(t, ok)
	require.Equal(t, "genrule", rule.Kind.String())
	_, ok = pkg.Rule("absent")
	require.False(t, ok)
}

func TestPackageBuilder_DefaultsOnlyOnce(t *testing.T) {
	b := domain.NewPackageBuilder("pkg", "pkg/BUILD")
	require.NoError(t, b.MarkDefaultsSet())
	require.Error(t, b.MarkDefaultsSet())
}

func TestPackageBuilder_ErrorsFlagSticks(t *testing.T) {
	b := domain.NewPackageBuilder("pkg", "pkg/BUILD")
	require.False(t, b.ContainsErrors())
	b.SetContainsErrors()
	require.True(t, b.ContainsErrors())

	b.AddEvent(domain.ErrorEvent(domain.Position{File: "pkg/BUILD", Line: 3}, "boom"))
	pkg := b.Build()
	require.True(t, pkg.ContainsErrors)
	require.Len(t, pkg.Events, 1)
}

func TestValidatePackageName(t *testing.T) {
	for _, name := range []string{
		"",
		"foo",
		"foo/bar",
		"foo/bar-baz_1.2",
		"Foo/B a r",
	} {
		require.NoError(t, domain.ValidatePackageName(name), "name %q", name)
	}

	for _, name := range []string{
		"/abs",
		"trailing/",
		"a//b",
		"a/./b",
		"a/../b",
		"..",
		"bad*char",
		"colon:name",
	} {
		err := domain.ValidatePackageName(name)
		require.ErrorIs(t, err, domain.ErrInvalidPackageName, "name %q", name)
	}
}
