package fakedata

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/namebot/internal/locales"
)

// sequence returns a deterministic intN that replays values modulo n.
func sequence(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)]
		i++
		return v % n
	}
}

const testTables = `
xx_XX:
  male_first_names: [Adam, Boris]
  female_first_names: [Clara, Dana]
  last_names: [Novak, Horak]
  female_last_names: [Novakova, Horakova]
yy_YY:
  first_names: [Kim]
  last_names: [Lee]
zz_ZZ:
  order: family_first
  compact: true
  male_first_names: [Wei]
  last_names: [Wang]
`

func TestCatalogCoversRegistry(t *testing.T) {
	catalog := Default()
	require.NotNil(t, catalog)

	for _, e := range locales.Default().Entries() {
		caps, err := catalog.Supports(e.Locale)
		require.NoError(t, err, e.Label)
		require.True(t, caps.Generic, e.Label)
	}
	require.Len(t, catalog.Locales(), locales.Default().Len())
}

func TestDefaultGenericOnlyLocales(t *testing.T) {
	for _, locale := range []string{"bn_BD", "ta_IN", "ne_NP"} {
		caps, err := Default().Supports(locale)
		require.NoError(t, err)
		assert.Equal(t, Capabilities{Generic: true}, caps, locale)
	}
}

func TestSupports(t *testing.T) {
	c, err := NewCatalog([]byte(testTables), sequence(0))
	require.NoError(t, err)

	caps, err := c.Supports("xx_XX")
	require.NoError(t, err)
	assert.Equal(t, Capabilities{Male: true, Female: true, Generic: true}, caps)

	caps, err = c.Supports("zz_ZZ")
	require.NoError(t, err)
	assert.True(t, caps.Has(Male))
	assert.False(t, caps.Has(Female))
	assert.True(t, caps.Has(Generic))

	_, err = c.Supports("qq_QQ")
	require.True(t, errors.Is(err, ErrUnsupportedLocale))
}

func TestNameGendered(t *testing.T) {
	c, err := NewCatalog([]byte(testTables), sequence(1, 1))
	require.NoError(t, err)

	name, err := c.Name("xx_XX", Male)
	require.NoError(t, err)
	assert.Equal(t, "Boris Horak", name)

	name, err = c.Name("xx_XX", Female)
	require.NoError(t, err)
	assert.Equal(t, "Dana Horakova", name)
}

func TestNameGenericCombinesLists(t *testing.T) {
	// index 3 of [Adam Boris Clara Dana] is a female name, so the surname follows.
	c, err := NewCatalog([]byte(testTables), sequence(3, 0))
	require.NoError(t, err)

	name, err := c.Name("xx_XX", Generic)
	require.NoError(t, err)
	assert.Equal(t, "Dana Novakova", name)

	name, err = c.Name("yy_YY", Generic)
	require.NoError(t, err)
	assert.Equal(t, "Kim Lee", name)
}

func TestNameFamilyFirst(t *testing.T) {
	c, err := NewCatalog([]byte(testTables), sequence(0))
	require.NoError(t, err)

	name, err := c.Name("zz_ZZ", Male)
	require.NoError(t, err)
	assert.Equal(t, "WangWei", name)

	name, err = Default().Name("hu_HU", Female)
	require.NoError(t, err)
	parts := strings.Split(name, " ")
	require.Len(t, parts, 2)
}

func TestNameErrors(t *testing.T) {
	c, err := NewCatalog([]byte(testTables), sequence(0))
	require.NoError(t, err)

	_, err = c.Name("yy_YY", Female)
	require.True(t, errors.Is(err, ErrNoProducer))

	_, err = c.Name("qq_QQ", Generic)
	require.True(t, errors.Is(err, ErrUnsupportedLocale))
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{name: "no last names", yaml: "aa_AA: {first_names: [A]}", msg: "last_names"},
		{name: "misaligned", yaml: "aa_AA: {first_names: [A], last_names: [B, C], female_last_names: [D]}", msg: "female_last_names"},
		{name: "no given names", yaml: "aa_AA: {last_names: [B]}", msg: "given names"},
		{name: "bad order", yaml: "aa_AA: {first_names: [A], last_names: [B], order: sideways}", msg: "order"},
		{name: "bad yaml", yaml: "aa_AA: [", msg: "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]byte(tt.yaml), nil)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestProducerString(t *testing.T) {
	assert.Equal(t, "male", Male.String())
	assert.Equal(t, "female", Female.String())
	assert.Equal(t, "generic", Generic.String())
}
