package registry

import (
	"strings"

	"toolbar-cli/internal/model"

	"github.com/sahilm/fuzzy"
)

type Match struct {
	Tool  model.ToolDefinition
	Score int
}

type toolSource []model.ToolDefinition

func (s toolSource) String(i int) string { return s[i].Title + " " + s[i].ID }

func (s toolSource) Len() int { return len(s) }

// Search ranks tools by a fuzzy match on title and id. An empty query
// returns every tool in registry order.
func (r *Registry) Search(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, 0, len(r.defs))
		for _, d := range r.defs {
			out = append(out, Match{Tool: d})
		}
		return out
	}
	matches := fuzzy.FindFrom(query, toolSource(r.defs))
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		out = append(out, Match{Tool: r.defs[m.Index], Score: m.Score})
	}
	return out
}
