package registry

import "time"

// DatesGroup implements the single-value date catalogue: fromisoformat,
// strptime.
func DatesGroup() []Entry {
	return []Entry{
		{
			Name:   "fromisoformat",
			Params: []string{"value"},
			Doc:    "Parse an ISO-8601 string into RFC3339 text.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				value, _ := args["value"].(string)
				t, err := time.Parse(time.RFC3339, value)
				if err != nil {
					t, err = time.Parse("2006-01-02", value)
				}
				if err != nil {
					return nil, err
				}
				return t.Format(time.RFC3339), nil
			},
		},
		{
			Name:   "strptime",
			Params: []string{"value", "format"},
			Doc:    "Parse value against a strftime-style format into RFC3339 text.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				value, _ := args["value"].(string)
				format, _ := args["format"].(string)
				layout := strftimeToGoLayout(format)
				t, err := time.Parse(layout, value)
				if err != nil {
					return nil, err
				}
				return t.Format(time.RFC3339), nil
			},
		},
	}
}
