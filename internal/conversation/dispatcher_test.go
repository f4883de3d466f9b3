package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/namebot/internal/action"
	"github.com/m3rciful/namebot/internal/fakedata"
	"github.com/m3rciful/namebot/internal/locales"
	"github.com/m3rciful/namebot/internal/names"
)

type stubGenerator struct {
	res   names.Result
	calls int
}

func (s *stubGenerator) GenerateDetailed(context.Context, string, names.Gender) names.Result {
	s.calls++
	return s.res
}

type recorded struct {
	locale string
	gender names.Gender
	failed bool
}

type memRecorder struct{ got []recorded }

func (m *memRecorder) Record(_ context.Context, locale string, gender names.Gender, res names.Result) {
	m.got = append(m.got, recorded{locale: locale, gender: gender, failed: res.Failed()})
}

func newDispatcher(gen NameGenerator, rec Recorder) *Dispatcher {
	return New(Options{Registry: locales.Default(), Names: gen, Recorder: rec})
}

func realDispatcher() *Dispatcher {
	return newDispatcher(names.NewGenerator(fakedata.Default(), 0), nil)
}

func datas(s Screen) []string {
	var out []string
	for _, b := range s.Buttons() {
		out = append(out, b.Data)
	}
	return out
}

func TestWelcome(t *testing.T) {
	s := realDispatcher().Welcome()
	assert.Contains(t, s.Text, "Welcome to the Name Generator Bot!")
	assert.Equal(t, []string{"PAGE_0"}, datas(s))
	assert.True(t, s.Fresh)
	require.NotNil(t, s.Markup())
	assert.Equal(t, "PAGE_0", s.Markup().InlineKeyboard[0][0].Data)

	assert.Equal(t, []string{"PAGE_0"}, datas(realDispatcher().Help()))
}

func TestPageViewFirstPage(t *testing.T) {
	d := realDispatcher()
	labels := locales.Default().AllLabelsSorted()
	total := (len(labels) + 17) / 18

	s := d.PageView(0)
	assert.Equal(t, fmt.Sprintf(pageHeader, 1, total), s.Text)
	assert.False(t, s.Fresh)

	// 18 countries in 9 rows of two, then a navigation row with Next only.
	require.Len(t, s.Rows, 10)
	for _, row := range s.Rows[:9] {
		assert.Len(t, row, 2)
	}
	nav := s.Rows[9]
	require.Len(t, nav, 1)
	assert.Equal(t, btnNext, nav[0].Text)
	assert.Equal(t, "PAGE_1", nav[0].Data)

	var shown []string
	for _, row := range s.Rows[:9] {
		for _, b := range row {
			shown = append(shown, b.Text)
			locale, ok := locales.Default().LocaleFor(b.Text)
			require.True(t, ok)
			assert.Equal(t, "LOC_"+locale, b.Data)
		}
	}
	assert.Equal(t, labels[:18], shown)
}

func TestPageViewWalksAllPages(t *testing.T) {
	d := realDispatcher()
	labels := locales.Default().AllLabelsSorted()

	var shown []string
	for i := 0; ; i++ {
		s := d.PageView(i)
		var next, prev bool
		for _, b := range s.Buttons() {
			switch {
			case b.Text == btnNext:
				next = true
				assert.Equal(t, action.Page(i+1).String(), b.Data)
			case b.Text == btnPrevious:
				prev = true
				assert.Equal(t, action.Page(i-1).String(), b.Data)
			default:
				shown = append(shown, b.Text)
			}
		}
		assert.Equal(t, i > 0, prev, "page %d", i)
		if !next {
			break
		}
	}
	assert.Equal(t, labels, shown)
}

func TestPageViewOutOfRange(t *testing.T) {
	s := realDispatcher().PageView(99)
	assert.Contains(t, s.Text, "There is no page 100")
	assert.Equal(t, []string{"PAGE_0"}, datas(s))
}

func TestGenderMenu(t *testing.T) {
	d := realDispatcher()
	s := d.GenderMenu("fr_FR")
	assert.Equal(t, fmt.Sprintf(genderMenuText, "France"), s.Text)
	assert.Equal(t, []string{"GEN_fr_FR_male", "GEN_fr_FR_female", "GEN_fr_FR_any", "PAGE_0"}, datas(s))
	assert.Equal(t, "🚹 Male", s.Rows[0][0].Text)

	unknown := d.GenderMenu("xx_XX")
	assert.Contains(t, unknown.Text, locales.UnknownLabel)
}

func TestResult(t *testing.T) {
	gen := &stubGenerator{res: names.Result{Names: names.Triple{"Jean Dupont", "Luc Martin", "Paul Petit"}}}
	rec := &memRecorder{}
	d := newDispatcher(gen, rec)

	s := d.Result(context.Background(), "fr_FR", names.Male)
	assert.True(t, s.Fresh)
	assert.Equal(t, "*Culture:* France (`fr_FR`)\n"+
		"*Gender:* Male\n"+
		"--- *✅ Here are 3 unique names:* ---\n"+
		"1. `Jean Dupont`\n"+
		"2. `Luc Martin`\n"+
		"3. `Paul Petit`", s.Text)
	assert.Equal(t, []string{"GEN_fr_FR_male", "LOC_fr_FR", "PAGE_0"}, datas(s))
	assert.Equal(t, "➕ Generate 3 More Male", s.Rows[0][0].Text)
	assert.Equal(t, []recorded{{locale: "fr_FR", gender: names.Male}}, rec.got)
}

func TestResultSentinel(t *testing.T) {
	d := realDispatcher()
	s := d.Result(context.Background(), "xx_XX", names.Any)
	for _, n := range names.Sentinel {
		assert.Contains(t, s.Text, "`"+n+"`")
	}
	assert.Contains(t, s.Text, locales.UnknownLabel)
	assert.Equal(t, []string{"GEN_xx_XX_any", "LOC_xx_XX", "PAGE_0"}, datas(s))
}

func TestDispatchEndToEnd(t *testing.T) {
	d := realDispatcher()
	ctx := context.Background()

	welcome := d.Welcome()
	page, err := d.DispatchData(ctx, welcome.Buttons()[0].Data)
	require.NoError(t, err)

	var france string
	for i := 0; france == "" && i < 10; i++ {
		for _, b := range page.Buttons() {
			if b.Text == "France" {
				france = b.Data
			}
		}
		if france == "" {
			page, err = d.DispatchData(ctx, action.Page(i+1).String())
			require.NoError(t, err)
		}
	}
	require.Equal(t, "LOC_fr_FR", france)

	menu, err := d.DispatchData(ctx, france)
	require.NoError(t, err)
	male := menu.Buttons()[0].Data
	require.Equal(t, "GEN_fr_FR_male", male)

	for i := 0; i < 5; i++ {
		res, err := d.DispatchData(ctx, male)
		require.NoError(t, err)
		require.Len(t, res.Rows, 3)

		var got []string
		for _, line := range strings.Split(res.Text, "\n")[3:] {
			got = append(got, strings.Trim(line[3:], "`"))
		}
		require.Len(t, got, 3)
		assert.NotContains(t, got, names.Sentinel[0])
		assert.NotEqual(t, got[0], got[1])
		assert.NotEqual(t, got[1], got[2])
		assert.NotEqual(t, got[0], got[2])
		male = res.Buttons()[0].Data
	}
}

func TestDispatchErrors(t *testing.T) {
	d := realDispatcher()
	_, err := d.DispatchData(context.Background(), "GEN_fr_FR_robot")
	assert.ErrorIs(t, err, action.ErrUnrecognized)

	_, err = d.Dispatch(context.Background(), action.Token{Kind: "NOPE"})
	assert.ErrorIs(t, err, action.ErrUnrecognized)
}

func TestSearchResults(t *testing.T) {
	d := realDispatcher()

	one := d.SearchResults("germany")
	assert.Equal(t, []string{"GEN_de_DE_male", "GEN_de_DE_female", "GEN_de_DE_any", "PAGE_0"}, datas(one))
	assert.True(t, one.Fresh)

	many := d.SearchResults("belgium")
	assert.Contains(t, many.Text, "`belgium`")
	assert.Equal(t, []string{"LOC_nl_BE", "LOC_fr_BE", "PAGE_0"}, datas(many))

	none := d.SearchResults("qqqzzz")
	assert.Contains(t, none.Text, "No country matches")
	assert.Equal(t, []string{"PAGE_0"}, datas(none))

	blank := d.SearchResults("   ")
	assert.Equal(t, d.PageView(0).Rows, blank.Rows)
}

func TestStats(t *testing.T) {
	d := realDispatcher()
	assert.Equal(t, statsDisabled, d.Stats(nil, false).Text)
	assert.Equal(t, statsEmpty, d.Stats(nil, true).Text)

	s := d.Stats([]LocaleCount{{Locale: "ja_JP", Count: 12}, {Locale: "fr_FR", Count: 3}}, true)
	assert.Equal(t, statsHeader+"\n1. Japan (`ja_JP`): 12\n2. France (`fr_FR`): 3", s.Text)
}

func TestApology(t *testing.T) {
	s := Apology()
	assert.Contains(t, s.Text, "try /start again")
	assert.Nil(t, s.Markup())
	assert.True(t, s.Fresh)
}
