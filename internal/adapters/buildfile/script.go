package buildfile

import (
	"context"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
)

var _ ports.Script = (*script)(nil)

// script is one parsed build file. Execution walks top-level statements in
// source order: assignments bind variables for later expressions, blocks
// declare rules or package defaults.
type script struct {
	body        *hclsyntax.Body
	filename    string
	parseErrors bool
	ruleKinds   map[string]struct{}
}

func (s *script) HasParseErrors() bool { return s.parseErrors }

func (s *script) AST() any { return s.body }

// isBuiltin reports whether name is claimed by a declaration function.
func (s *script) isBuiltin(name string) bool {
	if name == globFunction || name == packageBlock {
		return true
	}
	_, ok := s.ruleKinds[name]
	return ok
}

// CheckBuiltinShadowing reports top-level assignments that would shadow a
// builtin declaration function. Shadowing would silently change the meaning
// of every later statement, so it marks the whole package erroneous.
func (s *script) CheckBuiltinShadowing(sink ports.Sink) bool {
	if s.body == nil {
		return true
	}
	ok := true
	for _, attr := range sortedAttributes(s.body) {
		if s.isBuiltin(attr.Name) {
			sink.Handle(domain.ErrorEvent(rangePosition(attr.SrcRange),
				"reassignment of builtin build function '"+attr.Name+"' not allowed"))
			ok = false
		}
	}
	return ok
}

// statement is one top-level unit of execution, ordered by source position.
type statement struct {
	start int
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func (s *script) statements() []statement {
	var stmts []statement
	for _, attr := range s.body.Attributes {
		stmts = append(stmts, statement{start: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range s.body.Blocks {
		stmts = append(stmts, statement{start: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(stmts, func(i, j int) bool { return stmts[i].start < stmts[j].start })
	return stmts
}

func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

// Exec runs the script against the environment. Cancellation is checked at
// every statement boundary and never interrupts an in-flight expression.
func (s *script) Exec(ctx context.Context, env ports.ExecEnv) bool {
	if s.body == nil {
		return !s.parseErrors
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"package_name": cty.StringVal(env.Builder.Name()),
		},
		Functions: map[string]function.Function{
			globFunction: globBinding(ctx, env),
		},
	}

	ok := !s.parseErrors
	for _, stmt := range s.statements() {
		if ctx.Err() != nil {
			return false
		}
		if stmt.attr != nil {
			if !s.execAssignment(stmt.attr, evalCtx, env) {
				ok = false
			}
			continue
		}
		if !s.execBlock(stmt.block, evalCtx, env) {
			ok = false
		}
	}
	return ok
}

// execAssignment evaluates a top-level assignment and binds the result for
// later expressions.
func (s *script) execAssignment(attr *hclsyntax.Attribute, evalCtx *hcl.EvalContext, env ports.ExecEnv) bool {
	val, diags := attr.Expr.Value(evalCtx)
	reportDiags(diags, env.Sink)
	if diags.HasErrors() {
		return false
	}
	evalCtx.Variables[attr.Name] = val
	return true
}

func (s *script) execBlock(block *hclsyntax.Block, evalCtx *hcl.EvalContext, env ports.ExecEnv) bool {
	if block.Type == packageBlock {
		return s.execPackageDefaults(block, evalCtx, env)
	}
	if _, known := s.ruleKinds[block.Type]; !known {
		env.Sink.Handle(domain.ErrorEvent(rangePosition(block.TypeRange),
			"unknown build rule kind '"+block.Type+"'"))
		return false
	}
	return s.execRule(block, evalCtx, env)
}

// execPackageDefaults handles the package defaults declaration.
func (s *script) execPackageDefaults(block *hclsyntax.Block, evalCtx *hcl.EvalContext, env ports.ExecEnv) bool {
	pos := rangePosition(block.TypeRange)
	if len(block.Labels) != 0 {
		env.Sink.Handle(domain.ErrorEvent(pos, "'package' does not take a label"))
		return false
	}
	if err := env.Builder.MarkDefaultsSet(); err != nil {
		env.Sink.Handle(domain.ErrorEvent(pos, err.Error()))
		return false
	}

	ok := true
	for _, attr := range sortedAttributes(block.Body) {
		val, diags := attr.Expr.Value(evalCtx)
		reportDiags(diags, env.Sink)
		if diags.HasErrors() {
			ok = false
			continue
		}
		switch attr.Name {
		case "default_visibility":
			if val.Type() != cty.String {
				env.Sink.Handle(domain.ErrorEvent(rangePosition(attr.SrcRange),
					"default_visibility must be a string"))
				ok = false
				continue
			}
			env.Builder.SetDefaultVisibility(val.AsString())
		default:
			env.Sink.Handle(domain.ErrorEvent(rangePosition(attr.SrcRange),
				"unknown package argument '"+attr.Name+"'"))
			ok = false
		}
	}
	return ok
}

// execRule evaluates a rule declaration block into a domain rule.
func (s *script) execRule(block *hclsyntax.Block, evalCtx *hcl.EvalContext, env ports.ExecEnv) bool {
	pos := rangePosition(block.TypeRange)
	if len(block.Labels) != 1 {
		env.Sink.Handle(domain.ErrorEvent(pos,
			"rule '"+block.Type+"' requires exactly one name label"))
		return false
	}

	ok := true
	attrs := make(map[string]any)
	for _, attr := range sortedAttributes(block.Body) {
		val, diags := attr.Expr.Value(evalCtx)
		reportDiags(diags, env.Sink)
		if diags.HasErrors() {
			ok = false
			continue
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			env.Sink.Handle(domain.ErrorEvent(rangePosition(attr.SrcRange), err.Error()))
			ok = false
			continue
		}
		attrs[attr.Name] = goVal
	}

	rule := domain.Rule{
		Kind:  domain.NewInternedString(block.Type),
		Name:  domain.NewInternedString(block.Labels[0]),
		Attrs: attrs,
		Pos:   pos,
	}
	if err := env.Builder.AddRule(rule); err != nil {
		env.Sink.Handle(domain.ErrorEvent(pos, err.Error()))
		return false
	}
	return ok
}
