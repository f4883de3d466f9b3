// Package conversation renders the bot screens. Every screen is rebuilt from
// the decoded callback token alone; nothing is remembered between turns.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/core/telegram/format"
	"github.com/m3rciful/namebot/core/telegram/keyboard"
	"github.com/m3rciful/namebot/internal/action"
	"github.com/m3rciful/namebot/internal/locales"
	"github.com/m3rciful/namebot/internal/names"
	"github.com/m3rciful/namebot/internal/pager"

	tele "gopkg.in/telebot.v4"
)

const (
	columns     = 2
	searchLimit = 10
	queryLimit  = 64
)

// Screen is one rendered bot message.
type Screen struct {
	Text string
	Rows [][]keyboard.InlineBtn
	// Fresh screens are sent as a new message instead of replacing the one
	// that carried the pressed button.
	Fresh bool
}

// Markup returns the inline keyboard of the screen, or nil when it has none.
func (s Screen) Markup() *tele.ReplyMarkup {
	if len(s.Rows) == 0 {
		return nil
	}
	return keyboard.InlineButtonsRows(s.Rows...)
}

// Buttons returns every button of the screen in display order.
func (s Screen) Buttons() []keyboard.InlineBtn {
	var out []keyboard.InlineBtn
	for _, row := range s.Rows {
		out = append(out, row...)
	}
	return out
}

// NameGenerator produces three distinct names or the failure sentinel.
type NameGenerator interface {
	GenerateDetailed(ctx context.Context, locale string, gender names.Gender) names.Result
}

// Recorder receives the outcome of every generation. Implementations handle
// their own failures.
type Recorder interface {
	Record(ctx context.Context, locale string, gender names.Gender, res names.Result)
}

// Options configures a Dispatcher. Registry and Names are required.
type Options struct {
	Registry *locales.Registry
	Names    NameGenerator
	Recorder Recorder
	PageSize int
}

// Dispatcher builds screens. It is safe for concurrent use.
type Dispatcher struct {
	reg      *locales.Registry
	gen      NameGenerator
	rec      Recorder
	pageSize int
	labels   []string
}

// New returns a Dispatcher. A non-positive PageSize uses pager.DefaultSize.
func New(opts Options) *Dispatcher {
	size := opts.PageSize
	if size <= 0 {
		size = pager.DefaultSize
	}
	return &Dispatcher{
		reg:      opts.Registry,
		gen:      opts.Names,
		rec:      opts.Recorder,
		pageSize: size,
		labels:   opts.Registry.AllLabelsSorted(),
	}
}

func btn(text string, t action.Token) keyboard.InlineBtn {
	return keyboard.InlineBtn{Text: text, Data: t.String()}
}

func backRow() []keyboard.InlineBtn {
	return []keyboard.InlineBtn{btn(btnBack, action.Page(0))}
}

// Welcome is the /start screen.
func (d *Dispatcher) Welcome() Screen {
	return Screen{
		Text:  welcomeText,
		Rows:  [][]keyboard.InlineBtn{{btn(btnStart, action.Page(0))}},
		Fresh: true,
	}
}

// Help repeats the how-to and lists the shortcuts.
func (d *Dispatcher) Help() Screen {
	return Screen{
		Text:  helpText,
		Rows:  [][]keyboard.InlineBtn{{btn(btnStart, action.Page(0))}},
		Fresh: true,
	}
}

// PageView lists one page of countries, two per row, with Previous/Next as
// the pager allows. A page past the end still links back to the first page.
func (d *Dispatcher) PageView(index int) Screen {
	total := pager.Count(len(d.labels), d.pageSize)
	page := pager.Page(d.labels, index, d.pageSize)
	if len(page.Visible) == 0 {
		return Screen{
			Text: fmt.Sprintf(pageMissingText, index+1, total),
			Rows: [][]keyboard.InlineBtn{backRow()},
		}
	}

	countries := make([]keyboard.InlineBtn, 0, len(page.Visible))
	for _, label := range page.Visible {
		locale, _ := d.reg.LocaleFor(label)
		countries = append(countries, btn(label, action.Locale(locale)))
	}
	rows := keyboard.Chunk(countries, columns)

	var nav []keyboard.InlineBtn
	if page.HasPrevious {
		nav = append(nav, btn(btnPrevious, action.Page(index-1)))
	}
	if page.HasNext {
		nav = append(nav, btn(btnNext, action.Page(index+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return Screen{
		Text: fmt.Sprintf(pageHeader, index+1, total),
		Rows: rows,
	}
}

// GenderMenu asks for the gender of the names for a locale.
func (d *Dispatcher) GenderMenu(locale string) Screen {
	rows := make([][]keyboard.InlineBtn, 0, len(names.Genders())+1)
	for _, g := range names.Genders() {
		rows = append(rows, []keyboard.InlineBtn{btn(genderCaptions[g], action.Generate(locale, g))})
	}
	rows = append(rows, backRow())
	return Screen{
		Text: fmt.Sprintf(genderMenuText, format.Escape(d.reg.LabelFor(locale))),
		Rows: rows,
	}
}

// Result generates three names and offers to regenerate, change the gender
// or go back to the first page. The failure sentinel is rendered like any
// other triple.
func (d *Dispatcher) Result(ctx context.Context, locale string, gender names.Gender) Screen {
	res := d.gen.GenerateDetailed(ctx, locale, gender)
	if d.rec != nil {
		d.rec.Record(ctx, locale, gender, res)
	}

	n := res.Names
	title := gender.Title()
	return Screen{
		Text: fmt.Sprintf(resultText,
			format.Escape(d.reg.LabelFor(locale)), locale, title,
			format.Code(n[0]), format.Code(n[1]), format.Code(n[2]),
		),
		Rows: [][]keyboard.InlineBtn{
			{btn(fmt.Sprintf(btnRegenerate, title), action.Generate(locale, gender))},
			{btn(btnChange, action.Locale(locale))},
			backRow(),
		},
		Fresh: true,
	}
}

// Dispatch renders the screen a decoded token asks for.
func (d *Dispatcher) Dispatch(ctx context.Context, t action.Token) (Screen, error) {
	logger.Debug(ctx, logger.ComponentConversation, "dispatch",
		slog.String("kind", string(t.Kind)),
		slog.Int("page", t.Page),
		slog.String("locale", t.Locale),
		slog.String("gender", string(t.Gender)),
	)
	switch t.Kind {
	case action.KindPage:
		return d.PageView(t.Page), nil
	case action.KindLocale:
		return d.GenderMenu(t.Locale), nil
	case action.KindGenerate:
		return d.Result(ctx, t.Locale, t.Gender), nil
	}
	return Screen{}, fmt.Errorf("%w: kind %q", action.ErrUnrecognized, t.Kind)
}

// DispatchData decodes raw callback data and dispatches it.
func (d *Dispatcher) DispatchData(ctx context.Context, data string) (Screen, error) {
	t, err := action.Decode(data)
	if err != nil {
		return Screen{}, err
	}
	return d.Dispatch(ctx, t)
}

// SearchResults lists the countries matching free text. Every outcome links
// to the full list.
func (d *Dispatcher) SearchResults(query string) Screen {
	query = strings.TrimSpace(logger.SanitizeLimit(query, queryLimit))
	if query == "" {
		s := d.PageView(0)
		s.Fresh = true
		return s
	}
	browse := []keyboard.InlineBtn{btn(btnBrowse, action.Page(0))}

	matches := d.reg.Search(query, searchLimit)
	if len(matches) == 1 {
		s := d.GenderMenu(matches[0].Locale)
		s.Fresh = true
		return s
	}
	if len(matches) == 0 {
		return Screen{
			Text:  fmt.Sprintf(searchMissingText, format.Code(query)),
			Rows:  [][]keyboard.InlineBtn{browse},
			Fresh: true,
		}
	}

	found := make([]keyboard.InlineBtn, 0, len(matches))
	for _, e := range matches {
		found = append(found, btn(e.Label, action.Locale(e.Locale)))
	}
	rows := append(keyboard.Chunk(found, columns), browse)
	return Screen{
		Text:  fmt.Sprintf(searchFoundText, format.Code(query)),
		Rows:  rows,
		Fresh: true,
	}
}

// LocaleCount is one row of the usage statistics.
type LocaleCount struct {
	Locale string
	Count  int64
}

// Stats renders usage statistics. enabled is false when no journal is configured.
func (d *Dispatcher) Stats(rows []LocaleCount, enabled bool) Screen {
	switch {
	case !enabled:
		return Screen{Text: statsDisabled, Fresh: true}
	case len(rows) == 0:
		return Screen{Text: statsEmpty, Fresh: true}
	}
	var b strings.Builder
	b.WriteString(statsHeader)
	for i, r := range rows {
		fmt.Fprintf(&b, "\n%d. %s (`%s`): %d", i+1, format.Escape(d.reg.LabelFor(r.Locale)), r.Locale, r.Count)
	}
	return Screen{Text: b.String(), Fresh: true}
}

// Apology is the screen shown when a request could not be handled.
func Apology() Screen {
	return Screen{Text: ApologyText, Fresh: true}
}
