// Package locales holds the static table of selectable countries and the
// locale identifiers used to generate names for them.
package locales

import (
	_ "embed"
	"fmt"
	"log"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownLabel is shown when a locale id has no entry in the table.
const UnknownLabel = "Selected Region"

//go:embed countries.yml
var countriesFile []byte

var defaultRegistry *Registry

// Entry pairs a human-readable country label with a locale id such as "fr_BE".
type Entry struct {
	Label  string `yaml:"label"`
	Locale string `yaml:"locale"`
}

// Registry is an immutable label/locale lookup table. It is safe for concurrent use.
type Registry struct {
	entries  []Entry
	labels   []string
	byLabel  map[string]string
	byLocale map[string]string
}

// New builds a registry from entries. Labels and locale ids must be unique and non-empty.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries:  make([]Entry, 0, len(entries)),
		byLabel:  make(map[string]string, len(entries)),
		byLocale: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		label := strings.TrimSpace(e.Label)
		locale := strings.TrimSpace(e.Locale)
		if label == "" || locale == "" {
			return nil, fmt.Errorf("locales: empty label or locale in entry %+v", e)
		}
		if _, dup := r.byLabel[label]; dup {
			return nil, fmt.Errorf("locales: duplicate label %q", label)
		}
		if prev, dup := r.byLocale[locale]; dup {
			return nil, fmt.Errorf("locales: locale %q used by both %q and %q", locale, prev, label)
		}
		r.byLabel[label] = locale
		r.byLocale[locale] = label
		r.entries = append(r.entries, Entry{Label: label, Locale: locale})
	}

	slices.SortFunc(r.entries, func(a, b Entry) int { return strings.Compare(a.Label, b.Label) })
	r.labels = make([]string, len(r.entries))
	for i, e := range r.entries {
		r.labels[i] = e.Label
	}
	return r, nil
}

// Default returns the registry built from the embedded country table.
func Default() *Registry {
	return defaultRegistry
}

// AllLabelsSorted returns every label in lexicographic order. The slice is a copy.
func (r *Registry) AllLabelsSorted() []string {
	return slices.Clone(r.labels)
}

// Entries returns a copy of the table ordered by label.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Len reports the number of countries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// LocaleFor resolves a label to its locale id.
func (r *Registry) LocaleFor(label string) (string, bool) {
	locale, ok := r.byLabel[label]
	return locale, ok
}

// LabelFor returns the label for a locale id, or UnknownLabel when the id is not in the table.
func (r *Registry) LabelFor(locale string) string {
	if label, ok := r.byLocale[locale]; ok {
		return label
	}
	return UnknownLabel
}

// Has reports whether the locale id belongs to the table.
func (r *Registry) Has(locale string) bool {
	_, ok := r.byLocale[locale]
	return ok
}

func init() {
	var entries []Entry
	if err := yaml.Unmarshal(countriesFile, &entries); err != nil {
		log.Fatalf("parse country table: %s", err)
	}
	reg, err := New(entries)
	if err != nil {
		log.Fatalf("build country table: %s", err)
	}
	defaultRegistry = reg
}
