package registry

import (
	"fmt"
	"strconv"
	"time"
)

// TypeCoercionGroup implements the in-place type-conversion catalogue:
// convert_datetime, convert_int, convert_string, convert_year_iso.
// augmentcurrency is deliberately absent (no currency conversion data
// source is in scope).
func TypeCoercionGroup() []Entry {
	return []Entry{
		{
			Name:        "convert_datetime",
			ContextFlag: true,
			Params:      []string{"column"},
			Doc:         "Parse every value of column as a date/time, storing RFC3339 text.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				column := asString(args["column"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(column)
					if err != nil {
						return err
					}
					t, ok := parseTimeValue(v)
					if !ok {
						return nil
					}
					return ctx.DataFrame.SetValue(column, t.Format(time.RFC3339))
				})
			},
		},
		{
			Name:        "convert_int",
			ContextFlag: true,
			Params:      []string{"column"},
			Doc:         "Parse every value of column as an integer.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				column := asString(args["column"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(column)
					if err != nil {
						return err
					}
					n, ok := coerceInt(v)
					if !ok {
						return nil
					}
					return ctx.DataFrame.SetValue(column, n)
				})
			},
		},
		{
			Name:        "convert_string",
			ContextFlag: true,
			Params:      []string{"column"},
			Doc:         "Render every value of column as its string form.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				column := asString(args["column"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(column)
					if err != nil {
						return err
					}
					return ctx.DataFrame.SetValue(column, fmt.Sprintf("%v", v))
				})
			},
		},
		{
			Name:        "convert_year_iso",
			ContextFlag: true,
			Params:      []string{"column"},
			Doc:         "Parse every value of column as an ISO week-numbering year.",
			Impl: func(ctx *Context, args map[string]any) (any, error) {
				column := asString(args["column"])
				return nil, withEachRow(ctx, func(string) error {
					v, err := ctx.DataFrame.GetValue(column)
					if err != nil {
						return err
					}
					t, ok := parseTimeValue(v)
					if !ok {
						return nil
					}
					year, _ := t.ISOWeek()
					return ctx.DataFrame.SetValue(column, year)
				})
			},
		},
	}
}

func coerceInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
