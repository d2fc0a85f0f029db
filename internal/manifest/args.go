package manifest

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

// Apply fills in defaults for missing arguments and checks every declared
// argument against its type. The element is returned with a fresh
// argument map; the input is not modified.
//
// Arguments that the manifest does not declare are passed through.
func (t Transform) Apply(el ir.Element) (ir.Element, error) {
	args := make(map[string]any, len(el.Arguments)+len(t.Arguments))
	for k, v := range el.Arguments {
		args[k] = v
	}

	for _, decl := range t.Arguments {
		v, ok := args[decl.Name]
		if !ok || v == nil {
			if decl.Default == nil {
				continue
			}
			v = decl.Default
		}
		checked, err := decl.check(t.From, v)
		if err != nil {
			return el, err
		}
		args[decl.Name] = checked
	}

	el.Arguments = args
	return el, nil
}

// check validates v against the argument's declared type and returns it in
// canonical Go form (float64 for f64, uint64 for u64, string otherwise).
func (a Argument) check(element string, v any) (any, error) {
	switch a.Kind() {
	case "f64":
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ir.Errorf(ir.ErrCodeInvalidArgument, element, "argument %q must be a number, got %v", a.Name, v)
		}
		return f, nil
	case "u64":
		f, ok := toFloat(v)
		if !ok || f < 0 || f != math.Trunc(f) {
			return nil, ir.Errorf(ir.ErrCodeInvalidArgument, element, "argument %q must be a non-negative integer, got %v", a.Name, v)
		}
		return uint64(f), nil
	case "enum":
		s := stringOf(v)
		allowed := a.Enum()
		if !slices.Contains(allowed, s) {
			return nil, ir.Errorf(ir.ErrCodeInvalidArgument, element, "argument %q must be one of %v, got %q", a.Name, allowed, s)
		}
		return s, nil
	default:
		return stringOf(v), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringOf(v any) string {
	return ir.Element{Arguments: map[string]any{"v": v}}.Arg("v")
}
