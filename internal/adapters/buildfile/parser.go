// Package buildfile implements the build script surface over HCL. A build
// file declares rules as labeled blocks and may call the glob function; the
// same parsed script executes once per pass with different bindings.
package buildfile

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
)

// packageBlock is the block type carrying package-wide defaults.
const packageBlock = "package"

var _ ports.ScriptParser = (*Parser)(nil)

// Parser parses build files into executable scripts. One parser serves the
// whole process; it carries the registered rule kinds, which double as the
// builtin names that top-level assignments must not shadow.
type Parser struct {
	ruleKinds map[string]struct{}
}

// NewParser creates a parser accepting the given rule kinds as declaration
// blocks.
func NewParser(ruleKinds []string) *Parser {
	kinds := make(map[string]struct{}, len(ruleKinds))
	for _, k := range ruleKinds {
		kinds[k] = struct{}{}
	}
	return &Parser{ruleKinds: kinds}
}

// Parse parses src and reports syntax diagnostics to sink. It never fails:
// a script with parse errors still executes its well-formed statements.
func (p *Parser) Parse(src []byte, filename string, sink ports.Sink) ports.Script {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	reportDiags(diags, sink)

	body, _ := file.Body.(*hclsyntax.Body)
	return &script{
		body:        body,
		filename:    filename,
		parseErrors: diags.HasErrors(),
		ruleKinds:   p.ruleKinds,
	}
}

// reportDiags converts HCL diagnostics into sink events.
func reportDiags(diags hcl.Diagnostics, sink ports.Sink) {
	for _, d := range diags {
		pos := domain.Position{}
		if d.Subject != nil {
			pos = rangePosition(*d.Subject)
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		if d.Severity == hcl.DiagWarning {
			sink.Handle(domain.WarningEvent(pos, msg))
			continue
		}
		sink.Handle(domain.ErrorEvent(pos, msg))
	}
}

func rangePosition(rng hcl.Range) domain.Position {
	return domain.Position{
		File:   rng.Filename,
		Line:   rng.Start.Line,
		Column: rng.Start.Column,
	}
}
