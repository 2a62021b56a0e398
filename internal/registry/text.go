package registry

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`(?:[.!?]+)(?:\s+|$)`)

// TextGroup implements the text-processing catalogue that does not
// require an external NLP model: word_count, paragraph_split,
// sentence_split, comment_list. text_summarizer and named_entities are
// deliberately absent (NLP-model collaborators are out of scope); they
// are not registered under any name.
func TextGroup() []Entry {
	return []Entry{
		{
			Name:   "word_count",
			Params: []string{"text"},
			Doc:    "Count whitespace-delimited words in text.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				text, _ := args["text"].(string)
				return len(strings.Fields(text)), nil
			},
		},
		{
			Name:   "paragraph_split",
			Params: []string{"text", "separator"},
			Defaults: map[string]any{
				"separator": "\n\n",
			},
			Doc: "Split text into paragraphs on a separator.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				text, _ := args["text"].(string)
				sep, _ := args["separator"].(string)
				if sep == "" {
					sep = "\n\n"
				}
				parts := strings.Split(text, sep)
				out := make([]string, 0, len(parts))
				for _, p := range parts {
					if strings.TrimSpace(p) != "" {
						out = append(out, p)
					}
				}
				return out, nil
			},
		},
		{
			Name:   "sentence_split",
			Params: []string{"text"},
			Doc:    "Split text into sentences on terminal punctuation.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				text, _ := args["text"].(string)
				idxs := sentenceBoundary.FindAllStringIndex(text, -1)
				var out []string
				start := 0
				for _, idx := range idxs {
					out = append(out, strings.TrimSpace(text[start:idx[0]+1]))
					start = idx[1]
				}
				if rest := strings.TrimSpace(text[start:]); rest != "" {
					out = append(out, rest)
				}
				return out, nil
			},
		},
		{
			Name:   "comment_list",
			Params: []string{"text", "separator"},
			Defaults: map[string]any{
				"separator": "\n",
			},
			Doc: "Split a block of review comments on a separator into a list.",
			Impl: func(_ *Context, args map[string]any) (any, error) {
				text, _ := args["text"].(string)
				sep, _ := args["separator"].(string)
				if sep == "" {
					sep = "\n"
				}
				parts := strings.Split(text, sep)
				out := make([]string, 0, len(parts))
				for _, p := range parts {
					if strings.TrimSpace(p) != "" {
						out = append(out, strings.TrimSpace(p))
					}
				}
				return out, nil
			},
		},
	}
}
