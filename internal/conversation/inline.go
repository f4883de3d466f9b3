package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m3rciful/namebot/core/telegram/format"
	"github.com/m3rciful/namebot/internal/names"
)

// Article is one inline query answer.
type Article struct {
	ID          string
	Title       string
	Description string
	Text        string
}

// ParseInlineQuery splits "<country words> [male|female|any]". A missing or
// unknown trailing word leaves the gender at Any and part of the country.
func ParseInlineQuery(query string) (string, names.Gender) {
	fields := strings.Fields(query)
	if n := len(fields); n > 1 {
		if g, err := names.ParseGender(strings.ToLower(fields[n-1])); err == nil {
			return strings.Join(fields[:n-1], " "), g
		}
	}
	return strings.Join(fields, " "), names.Any
}

// Inline answers an inline query with one article per generated name. It
// returns nil when the query names no country. The failure sentinel yields
// no articles either.
func (d *Dispatcher) Inline(ctx context.Context, query string) []Article {
	country, gender := ParseInlineQuery(query)
	if country == "" {
		return nil
	}
	matches := d.reg.Search(country, 1)
	if len(matches) == 0 {
		return nil
	}
	entry := matches[0]

	res := d.gen.GenerateDetailed(ctx, entry.Locale, gender)
	if d.rec != nil {
		d.rec.Record(ctx, entry.Locale, gender, res)
	}
	if res.Failed() {
		return nil
	}

	desc := fmt.Sprintf("%s · %s", entry.Label, gender.Title())
	out := make([]Article, 0, len(res.Names))
	for _, name := range res.Names {
		out = append(out, Article{
			ID:          uuid.NewString(),
			Title:       name,
			Description: desc,
			Text:        fmt.Sprintf("%s\n_%s_", format.Code(name), format.Escape(desc)),
		})
	}
	return out
}
