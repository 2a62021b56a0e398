package registry

import (
	"sort"
	"strings"
	"time"
)

func withEachRow(ctx *Context, fn func(primary string) error) error {
	for _, pk := range ctx.DataFrame.PrimaryIndex() {
		if err := ctx.DataFrame.SetFocus(pk); err != nil {
			return err
		}
		if err := fn(pk); err != nil {
			return err
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// DataFrameGroup implements the whole-dataset catalogue that needs no
// external model or plotting library: addmonth, addyear, augmentmonth,
// augmentyear, ascending, descending, columncontains, columnis, onbool.
// Every entry is context-flagged: it receives the engine and performs its
// own row iteration rather than being driven per-row by the scheduler,
// either mutating the DataFrame directly or producing a boolean-mask
// column.
func DataFrameGroup() []Entry {
	return []Entry{
		{
			Name:        "addmonth",
			ContextFlag: true,
			Params:      []string{"column", "months"},
			Doc:         "Add a number of months to every value of a date column, in place.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				column := asString(args["column"])
				months, _ := toFloat(args["months"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(column)
					if err != nil {
						return err
					}
					t, ok := parseTimeValue(v)
					if !ok {
						return nil
					}
					return ctx.DataFrame.SetValue(column, t.AddDate(0, int(months), 0).Format(time.RFC3339))
				})
			},
		},
		{
			Name:        "addyear",
			ContextFlag: true,
			Params:      []string{"column", "years"},
			Doc:         "Add a number of years to every value of a date column, in place.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				column := asString(args["column"])
				years, _ := toFloat(args["years"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(column)
					if err != nil {
						return err
					}
					t, ok := parseTimeValue(v)
					if !ok {
						return nil
					}
					return ctx.DataFrame.SetValue(column, t.AddDate(int(years), 0, 0).Format(time.RFC3339))
				})
			},
		},
		{
			Name:        "augmentmonth",
			ContextFlag: true,
			Params:      []string{"source", "target"},
			Doc:         "Write the month number of a date column into a new/existing column.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				source, target := asString(args["source"]), asString(args["target"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(source)
					if err != nil {
						return err
					}
					t, ok := parseTimeValue(v)
					if !ok {
						return nil
					}
					return ctx.DataFrame.SetValue(target, int(t.Month()))
				})
			},
		},
		{
			Name:        "augmentyear",
			ContextFlag: true,
			Params:      []string{"source", "target"},
			Doc:         "Write the year of a date column into a new/existing column.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				source, target := asString(args["source"]), asString(args["target"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(source)
					if err != nil {
						return err
					}
					t, ok := parseTimeValue(v)
					if !ok {
						return nil
					}
					return ctx.DataFrame.SetValue(target, t.Year())
				})
			},
		},
		{
			Name:        "ascending",
			ContextFlag: true,
			Params:      []string{"column"},
			Doc:         "Sort the primary index ascending by a column's values.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				return nil, sortByColumn(ctx, asString(args["column"]), true)
			},
		},
		{
			Name:        "descending",
			ContextFlag: true,
			Params:      []string{"column"},
			Doc:         "Sort the primary index descending by a column's values.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				return nil, sortByColumn(ctx, asString(args["column"]), false)
			},
		},
		{
			Name:        "columncontains",
			ContextFlag: true,
			Params:      []string{"source", "substr", "target"},
			Doc:         "Write a boolean mask column: true where source contains substr.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				source, substr, target := asString(args["source"]), asString(args["substr"]), asString(args["target"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(source)
					if err != nil {
						return err
					}
					return ctx.DataFrame.SetValue(target, strings.Contains(asString(v), substr))
				})
			},
		},
		{
			Name:        "columnis",
			ContextFlag: true,
			Params:      []string{"source", "value", "target"},
			Doc:         "Write a boolean mask column: true where source equals value.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				source, target := asString(args["source"]), asString(args["target"])
				want := args["value"]
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(source)
					if err != nil {
						return err
					}
					return ctx.DataFrame.SetValue(target, v == want)
				})
			},
		},
		{
			Name:        "onbool",
			ContextFlag: true,
			Params:      []string{"source", "whenTrue", "whenFalse", "target"},
			Doc:         "Map a boolean column to one of two values into target.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				source, target := asString(args["source"]), asString(args["target"])
				whenTrue, whenFalse := args["whenTrue"], args["whenFalse"]
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(source)
					if err != nil {
						return err
					}
					b, _ := v.(bool)
					if b {
						return ctx.DataFrame.SetValue(target, whenTrue)
					}
					return ctx.DataFrame.SetValue(target, whenFalse)
				})
			},
		},
	}
}

func sortByColumn(ctx *Context, column string, ascending bool) error {
	col, err := ctx.DataFrame.GetColumn(column)
	if err != nil {
		return err
	}
	values, ok := col.(map[string]any)
	if !ok {
		return nil
	}
	order := ctx.DataFrame.PrimaryIndex()
	sort.SliceStable(order, func(i, j int) bool {
		vi, vj := values[order[i]], values[order[j]]
		less := compareLess(vi, vj)
		if ascending {
			return less
		}
		return !less && vi != vj
	})
	return ctx.DataFrame.ReorderPrimaryIndex(order)
}

func compareLess(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa < fb
		}
	}
	return asString(a) < asString(b)
}

func parseTimeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if t == "" {
			return time.Time{}, false
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
