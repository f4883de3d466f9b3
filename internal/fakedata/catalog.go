// Package fakedata produces synthetic personal names from embedded per-locale tables.
package fakedata

import (
	_ "embed"
	"log"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed names.yml
var namesFile []byte

var defaultCatalog *Catalog

var (
	// ErrUnsupportedLocale is returned for locale ids that have no name table.
	ErrUnsupportedLocale = errors.New("unsupported locale")
	// ErrNoProducer is returned when a locale cannot produce the requested kind of name.
	ErrNoProducer = errors.New("producer not supported by locale")
)

const orderFamilyFirst = "family_first"

// Producer selects which list of given names a full name is drawn from.
type Producer int

const (
	Generic Producer = iota
	Male
	Female
)

func (p Producer) String() string {
	switch p {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "generic"
	}
}

// Capabilities lists the producers a locale supports.
type Capabilities struct {
	Male    bool
	Female  bool
	Generic bool
}

// Has reports whether p is supported.
func (c Capabilities) Has(p Producer) bool {
	switch p {
	case Male:
		return c.Male
	case Female:
		return c.Female
	default:
		return c.Generic
	}
}

type table struct {
	MaleFirstNames   []string `yaml:"male_first_names"`
	FemaleFirstNames []string `yaml:"female_first_names"`
	FirstNames       []string `yaml:"first_names"`
	LastNames        []string `yaml:"last_names"`
	FemaleLastNames  []string `yaml:"female_last_names"`
	Order            string   `yaml:"order"`
	Compact          bool     `yaml:"compact"`
}

func (t *table) validate() error {
	if len(t.LastNames) == 0 {
		return errors.New("last_names is empty")
	}
	if len(t.FemaleLastNames) > 0 && len(t.FemaleLastNames) != len(t.LastNames) {
		return errors.Errorf("female_last_names has %d entries, last_names has %d",
			len(t.FemaleLastNames), len(t.LastNames))
	}
	if len(t.MaleFirstNames)+len(t.FemaleFirstNames)+len(t.FirstNames) == 0 {
		return errors.New("no given names")
	}
	switch t.Order {
	case "", orderFamilyFirst:
	default:
		return errors.Errorf("unknown order %q", t.Order)
	}
	return nil
}

func (t *table) capabilities() Capabilities {
	return Capabilities{
		Male:    len(t.MaleFirstNames) > 0,
		Female:  len(t.FemaleFirstNames) > 0,
		Generic: len(t.FirstNames)+len(t.MaleFirstNames)+len(t.FemaleFirstNames) > 0,
	}
}

// Catalog holds the name tables. It is safe for concurrent use when intN is.
type Catalog struct {
	tables map[string]*table
	intN   func(int) int
}

// NewCatalog decodes YAML name tables keyed by locale id. intN must return a
// value in [0, n); nil selects math/rand/v2.
func NewCatalog(data []byte, intN func(int) int) (*Catalog, error) {
	var tables map[string]*table
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, errors.Wrap(err, "decode name tables")
	}
	for locale, t := range tables {
		if t == nil {
			return nil, errors.Errorf("locale %q: empty table", locale)
		}
		if err := t.validate(); err != nil {
			return nil, errors.Wrapf(err, "locale %q", locale)
		}
	}
	if intN == nil {
		intN = rand.IntN
	}
	return &Catalog{tables: tables, intN: intN}, nil
}

// Default returns the catalog built from the embedded tables.
func Default() *Catalog {
	return defaultCatalog
}

// Locales returns the supported locale ids in sorted order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.tables))
	for locale := range c.tables {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// Supports reports which producers the locale offers.
func (c *Catalog) Supports(locale string) (Capabilities, error) {
	t, ok := c.tables[locale]
	if !ok {
		return Capabilities{}, errors.Wrapf(ErrUnsupportedLocale, "%q", locale)
	}
	return t.capabilities(), nil
}

// Name draws one full name for the locale using producer p.
func (c *Catalog) Name(locale string, p Producer) (string, error) {
	t, ok := c.tables[locale]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedLocale, "%q", locale)
	}
	if !t.capabilities().Has(p) {
		return "", errors.Wrapf(ErrNoProducer, "%s names for %q", p, locale)
	}

	var (
		given    string
		feminine bool
	)
	switch p {
	case Male:
		given = c.pick(t.MaleFirstNames)
	case Female:
		given, feminine = c.pick(t.FemaleFirstNames), true
	default:
		given, feminine = c.pickGeneric(t)
	}

	i := c.intN(len(t.LastNames))
	family := t.LastNames[i]
	if feminine && len(t.FemaleLastNames) > 0 {
		family = t.FemaleLastNames[i]
	}
	return t.join(given, family), nil
}

func (c *Catalog) pick(list []string) string {
	return list[c.intN(len(list))]
}

// pickGeneric prefers the ungendered list; otherwise it draws uniformly from
// the male and female lists combined.
func (c *Catalog) pickGeneric(t *table) (string, bool) {
	if len(t.FirstNames) > 0 {
		return c.pick(t.FirstNames), false
	}
	i := c.intN(len(t.MaleFirstNames) + len(t.FemaleFirstNames))
	if i < len(t.MaleFirstNames) {
		return t.MaleFirstNames[i], false
	}
	return t.FemaleFirstNames[i-len(t.MaleFirstNames)], true
}

func (t *table) join(given, family string) string {
	sep := " "
	if t.Compact {
		sep = ""
	}
	if t.Order == orderFamilyFirst {
		return strings.Join([]string{family, given}, sep)
	}
	return strings.Join([]string{given, family}, sep)
}

func init() {
	c, err := NewCatalog(namesFile, nil)
	if err != nil {
		log.Fatalf("parse name tables: %s", err)
	}
	defaultCatalog = c
}
