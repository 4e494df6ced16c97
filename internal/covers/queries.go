package covers

import (
	"strings"

	"bindery/internal/catalog"
)

// BuildQueries generates the search query tiers for a record, most specific
// first: title+author+publisher, title+author, title. Empty components are
// omitted and tiers that collapse into an earlier tier are dropped. An empty
// title yields no queries at all, which short-circuits resolution to a
// negative outcome without network access.
func BuildQueries(rec catalog.Record) []string {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		return nil
	}
	author := strings.TrimSpace(rec.Author)
	publisher := strings.TrimSpace(rec.Publisher)

	tiers := [][]string{
		{title, author, publisher},
		{title, author},
		{title},
	}

	queries := make([]string, 0, len(tiers))
	seen := make(map[string]struct{}, len(tiers))
	for _, tier := range tiers {
		parts := make([]string, 0, len(tier))
		for _, part := range tier {
			if part != "" {
				parts = append(parts, part)
			}
		}
		query := strings.Join(parts, " ")
		if _, ok := seen[query]; ok {
			continue
		}
		seen[query] = struct{}{}
		queries = append(queries, query)
	}
	return queries
}
