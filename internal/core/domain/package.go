package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Rule is one build declaration produced by evaluating a build file.
type Rule struct {
	// Kind is the declaration function that produced the rule, e.g.
	// "filegroup" or "genrule".
	Kind InternedString

	// Name is the rule's package-unique name.
	Name InternedString

	// Attrs holds the evaluated attribute values.
	Attrs map[string]any

	// Pos is the declaration site in the build file.
	Pos Position
}

// Package is the set of build declarations produced from one build script.
// A package that contains errors still carries its best-effort declarations
// so that independent packages keep evaluating in parallel.
type Package struct {
	Name      string
	BuildFile string

	DefaultVisibility string
	Rules             []Rule
	Events            []Event

	// ContainsErrors is set when preprocessing failed, the package name is
	// invalid, parsing reported errors, a builtin was shadowed, or script
	// execution reported errors.
	ContainsErrors bool

	// AST is the retained syntax tree, present only when the factory was
	// configured to keep it. It uses a substantial amount of memory; only
	// retain it when a tool genuinely needs the syntax.
	AST any
}

// Rule returns the rule with the given name, if declared.
func (p *Package) Rule(name string) (Rule, bool) {
	for _, r := range p.Rules {
		if r.Name.String() == name {
			return r, true
		}
	}
	return Rule{}, false
}

// PackageBuilder accumulates the package under construction during one build
// file evaluation.
type PackageBuilder struct {
	pkg         Package
	ruleNames   map[InternedString]struct{}
	defaultsSet bool
}

// NewPackageBuilder creates a builder for the named package.
func NewPackageBuilder(name, buildFile string) *PackageBuilder {
	return &PackageBuilder{
		pkg:       Package{Name: name, BuildFile: buildFile},
		ruleNames: make(map[InternedString]struct{}),
	}
}

// Name returns the package name.
func (b *PackageBuilder) Name() string { return b.pkg.Name }

// BuildFile returns the build file path.
func (b *PackageBuilder) BuildFile() string { return b.pkg.BuildFile }

// AddRule records a declaration. Two rules with the same name conflict.
func (b *PackageBuilder) AddRule(r Rule) error {
	if _, exists := b.ruleNames[r.Name]; exists {
		return zerr.With(ErrDuplicateRule, "rule_name", r.Name.String())
	}
	b.ruleNames[r.Name] = struct{}{}
	b.pkg.Rules = append(b.pkg.Rules, r)
	return nil
}

// SetDefaultVisibility records the package-wide default visibility.
func (b *PackageBuilder) SetDefaultVisibility(v string) {
	b.pkg.DefaultVisibility = v
}

// MarkDefaultsSet records that the package defaults declaration was used.
// It may appear at most once per build file.
func (b *PackageBuilder) MarkDefaultsSet() error {
	if b.defaultsSet {
		return fmt.Errorf("'package' can only be used once per build file")
	}
	b.defaultsSet = true
	return nil
}

// SetContainsErrors flags the package as erroneous. Evaluation continues so
// a best-effort package is still produced.
func (b *PackageBuilder) SetContainsErrors() {
	b.pkg.ContainsErrors = true
}

// ContainsErrors reports whether the package was flagged erroneous.
func (b *PackageBuilder) ContainsErrors() bool { return b.pkg.ContainsErrors }

// SetAST attaches the retained syntax tree.
func (b *PackageBuilder) SetAST(ast any) { b.pkg.AST = ast }

// AddEvent appends a diagnostic to the package record.
func (b *PackageBuilder) AddEvent(e Event) {
	b.pkg.Events = append(b.pkg.Events, e)
}

// Build finalizes and returns the package.
func (b *PackageBuilder) Build() *Package {
	pkg := b.pkg
	return &pkg
}
