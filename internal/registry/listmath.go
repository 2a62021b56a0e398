package registry

import "math"

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func lengthOf(v any) int {
	switch t := v.(type) {
	case string:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}

// ListMathGroup implements the list/math catalogue: max, len, sum,
// return_longest, return_shortest, list_lengths, next_integer, identity,
// remove_nan. map is not registered under any name.
func ListMathGroup() []Entry {
	return []Entry{
		{
			Name:   "identity",
			Params: []string{"value"},
			Doc:    "Return value unchanged.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				return args["value"], nil
			},
		},
		{
			Name:   "max",
			Params: []string{"values"},
			Doc:    "The largest numeric value in a list.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				values, _ := args["values"].([]any)
				best := math.Inf(-1)
				found := false
				for _, v := range values {
					f, ok := toFloat(v)
					if !ok {
						continue
					}
					found = true
					if f > best {
						best = f
					}
				}
				if !found {
					return nil, nil
				}
				return best, nil
			},
		},
		{
			Name:   "len",
			Params: []string{"value"},
			Doc:    "The length of a string or list.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				return lengthOf(args["value"]), nil
			},
		},
		{
			Name:   "sum",
			Params: []string{"values"},
			Doc:    "The sum of a list of numbers.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				values, _ := args["values"].([]any)
				var total float64
				for _, v := range values {
					if f, ok := toFloat(v); ok {
						total += f
					}
				}
				return total, nil
			},
		},
		{
			Name:   "return_longest",
			Params: []string{"values"},
			Doc:    "The item in values with the greatest length.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				values, _ := args["values"].([]any)
				var best any
				bestLen := -1
				for _, v := range values {
					if l := lengthOf(v); l > bestLen {
						bestLen = l
						best = v
					}
				}
				return best, nil
			},
		},
		{
			Name:   "return_shortest",
			Params: []string{"values"},
			Doc:    "The item in values with the smallest length.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				values, _ := args["values"].([]any)
				var best any
				bestLen := -1
				for _, v := range values {
					l := lengthOf(v)
					if bestLen == -1 || l < bestLen {
						bestLen = l
						best = v
					}
				}
				return best, nil
			},
		},
		{
			Name:   "list_lengths",
			Params: []string{"values"},
			Doc:    "The length of each item in values.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				values, _ := args["values"].([]any)
				out := make([]int, len(values))
				for i, v := range values {
					out[i] = lengthOf(v)
				}
				return out, nil
			},
		},
		{
			Name:   "next_integer",
			Params: []string{"current"},
			Defaults: map[string]any{
				"current": 0,
			},
			Doc: "current + 1.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				f, _ := toFloat(args["current"])
				return int(f) + 1, nil
			},
		},
		{
			Name:   "remove_nan",
			Params: []string{"values"},
			Doc:    "Filter NaN entries out of a list.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				values, _ := args["values"].([]any)
				out := make([]any, 0, len(values))
				for _, v := range values {
					if f, ok := toFloat(v); ok && math.IsNaN(f) {
						continue
					}
					out = append(out, v)
				}
				return out, nil
			},
		},
	}
}
