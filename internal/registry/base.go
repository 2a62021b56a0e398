package registry

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

// NewLiquidEngine builds the Liquid engine backing render_liquid and the
// resolver's view_args rendering: URL-escape, Markdown-ify, relative-URL,
// absolute-URL, and integer-coerce filters. Processing is lax: an
// undefined variable renders as empty rather than failing the template —
// osteele/liquid does this by default (it only errors on undefined
// variables when strict-variables mode is explicitly enabled).
func NewLiquidEngine(baseURL string) *liquid.Engine {
	engine := liquid.NewEngine()

	engine.RegisterFilter("url_escape", func(s string) string {
		return url.QueryEscape(s)
	})
	engine.RegisterFilter("markdownify", markdownify)
	engine.RegisterFilter("relative_url", func(path string) string {
		return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	})
	engine.RegisterFilter("absolute_url", func(path string) string {
		joined := strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
		if strings.HasPrefix(joined, "http://") || strings.HasPrefix(joined, "https://") {
			return joined
		}
		return "https://" + strings.TrimPrefix(joined, "/")
	})
	engine.RegisterFilter("to_integer", func(v any) int {
		switch t := v.(type) {
		case int:
			return t
		case float64:
			return int(t)
		case string:
			n, _ := strconv.Atoi(strings.TrimSpace(t))
			return n
		default:
			return 0
		}
	})

	return engine
}

// markdownify is a minimal Markdown-to-HTML pass: it handles the
// constructs a bundled report template plausibly uses (paragraphs,
// *emphasis*, **strong**, and leading "# " headings) without pulling in a
// full Markdown implementation.
func markdownify(src string) string {
	lines := strings.Split(src, "\n")
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "# "):
			out = append(out, fmt.Sprintf("<h1>%s</h1>", trimmed[2:]))
		case strings.HasPrefix(trimmed, "## "):
			out = append(out, fmt.Sprintf("<h2>%s</h2>", trimmed[3:]))
		case trimmed == "":
			out = append(out, "")
		default:
			out = append(out, fmt.Sprintf("<p>%s</p>", inlineMarkdown(trimmed)))
		}
	}
	return strings.Join(out, "\n")
}

func inlineMarkdown(s string) string {
	s = replacePairs(s, "**", "<strong>", "</strong>")
	s = replacePairs(s, "*", "<em>", "</em>")
	return s
}

func replacePairs(s, marker, open, close string) string {
	parts := strings.Split(s, marker)
	if len(parts) < 3 {
		return s
	}
	var b strings.Builder
	for i, p := range parts {
		if i%2 == 1 {
			b.WriteString(open)
			b.WriteString(p)
			b.WriteString(close)
		} else {
			b.WriteString(p)
		}
	}
	return b.String()
}

// BaseGroup returns the canonical bundled functions every implementation
// is expected to provide: render_liquid and today.
func BaseGroup(engine *liquid.Engine) []Entry {
	return []Entry{
		{
			Name:   "render_liquid",
			Params: []string{"template", "context"},
			Defaults: map[string]any{
				"context": map[string]any{},
			},
			Doc: "Expand a Liquid template against a context map (lax: undefined variables render empty).",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				template, _ := args["template"].(string)
				ctx, _ := args["context"].(map[string]any)
				if ctx == nil {
					ctx = map[string]any{}
				}
				out, err := engine.ParseAndRenderString(template, ctx)
				if err != nil {
					return nil, fmt.Errorf("render_liquid: %w", err)
				}
				return out, nil
			},
		},
		{
			Name:   "today",
			Params: []string{"format"},
			Defaults: map[string]any{
				"format": "%Y-%m-%d",
			},
			Doc: "The current date rendered per a strftime-style pattern.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				format, _ := args["format"].(string)
				if format == "" {
					format = "%Y-%m-%d"
				}
				return time.Now().Format(strftimeToGoLayout(format)), nil
			},
		},
	}
}
