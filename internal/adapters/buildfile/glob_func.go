package buildfile

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/bjorndm/bazel/internal/core/ports"
)

// globFunction is the builtin filesystem query:
// glob(include), glob(include, exclude), glob(include, exclude, exclude_directories).
const globFunction = "glob"

// globBinding builds the glob function for one execution pass. In async mode
// the expansion is scheduled in the background and the call returns an empty
// list, which is fine because the pass's output is discarded anyway.
func globBinding(ctx context.Context, env ports.ExecEnv) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "include", Type: cty.List(cty.String)},
		},
		VarParam: &function.Parameter{Name: "options", Type: cty.DynamicPseudoType},
		Type:     function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			include, err := stringList(args[0])
			if err != nil {
				return cty.NilVal, fmt.Errorf("glob include: %w", err)
			}

			var exclude []string
			excludeDirs := true
			if len(args) > 1 {
				exclude, err = stringList(args[1])
				if err != nil {
					return cty.NilVal, fmt.Errorf("glob exclude: %w", err)
				}
			}
			if len(args) > 2 {
				if args[2].Type() != cty.Bool {
					return cty.NilVal, fmt.Errorf("glob exclude_directories must be a bool")
				}
				excludeDirs = args[2].True()
			}
			if len(args) > 3 {
				return cty.NilVal, fmt.Errorf("glob takes at most 3 arguments, got %d", len(args))
			}

			if env.Async {
				if err := env.Globber.GlobAsync(include, exclude, excludeDirs); err != nil {
					return cty.NilVal, err
				}
				return cty.ListValEmpty(cty.String), nil
			}

			paths, err := env.Globber.Glob(ctx, include, exclude, excludeDirs)
			if err != nil {
				return cty.NilVal, err
			}
			if len(paths) == 0 {
				return cty.ListValEmpty(cty.String), nil
			}
			vals := make([]cty.Value, len(paths))
			for i, p := range paths {
				vals[i] = cty.StringVal(p)
			}
			return cty.ListVal(vals), nil
		},
	})
}

// stringList converts a list or tuple value into its string elements.
func stringList(v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	t := v.Type()
	if !t.IsListType() && !t.IsTupleType() && !t.IsSetType() {
		return nil, fmt.Errorf("expected a list of strings, got %s", t.FriendlyName())
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.IsNull() || el.Type() != cty.String {
			return nil, fmt.Errorf("expected a list of strings, got element of %s", el.Type().FriendlyName())
		}
		out = append(out, el.AsString())
	}
	return out, nil
}
