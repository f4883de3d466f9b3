package locales

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search matches free text against country labels. An exact locale id
// (case-insensitive, e.g. "fr_be") wins outright; otherwise labels are
// fuzzy-matched and ordered by edit distance. limit <= 0 returns all matches.
func (r *Registry) Search(query string, limit int) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	for _, e := range r.entries {
		if strings.EqualFold(e.Locale, query) || strings.EqualFold(e.Label, query) {
			return []Entry{e}
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, r.labels)
	sort.Stable(ranks)

	out := make([]Entry, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, r.entries[rank.OriginalIndex])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
