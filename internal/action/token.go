// Package action encodes and decodes the callback payloads carried by inline
// buttons. The payload is the only conversation state: PAGE_<n>, LOC_<locale>
// and GEN_<locale>_<gender>.
package action

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/m3rciful/namebot/internal/names"
)

// Kind is the payload prefix that selects the next screen.
type Kind string

const (
	KindPage     Kind = "PAGE"
	KindLocale   Kind = "LOC"
	KindGenerate Kind = "GEN"
)

const sep = "_"

// ErrUnrecognized is returned for payloads that match none of the known shapes.
var ErrUnrecognized = errors.New("action: unrecognized token")

var (
	localeRe = regexp.MustCompile(`^[a-z]{2,3}_[A-Z]{2}$`)
	pageRe   = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// Token is a decoded callback payload.
type Token struct {
	Kind   Kind
	Page   int
	Locale string
	Gender names.Gender
}

// Page builds a token that opens country page n.
func Page(n int) Token {
	return Token{Kind: KindPage, Page: n}
}

// Locale builds a token that opens the gender menu for a locale.
func Locale(id string) Token {
	return Token{Kind: KindLocale, Locale: id}
}

// Generate builds a token that produces names for a locale and gender.
func Generate(id string, g names.Gender) Token {
	return Token{Kind: KindGenerate, Locale: id, Gender: g}
}

// String returns the wire form of the token.
func (t Token) String() string {
	switch t.Kind {
	case KindPage:
		return string(KindPage) + sep + strconv.Itoa(t.Page)
	case KindLocale:
		return string(KindLocale) + sep + t.Locale
	case KindGenerate:
		return string(KindGenerate) + sep + t.Locale + sep + string(t.Gender)
	}
	return ""
}

// ValidLocale reports whether id has the language_REGION shape, e.g. "fil_PH".
func ValidLocale(id string) bool {
	return localeRe.MatchString(id)
}

// KindOf returns the prefix of a payload without validating the rest.
func KindOf(data string) (Kind, bool) {
	prefix, _, ok := strings.Cut(data, sep)
	if !ok {
		return "", false
	}
	switch k := Kind(prefix); k {
	case KindPage, KindLocale, KindGenerate:
		return k, true
	}
	return "", false
}

// Decode parses a payload. For GEN the gender is the segment after the last
// underscore, so locale ids that contain underscores decode intact.
func Decode(data string) (Token, error) {
	kind, ok := KindOf(data)
	if !ok {
		return Token{}, unrecognized(data)
	}
	rest := data[len(kind)+len(sep):]

	switch kind {
	case KindPage:
		if !pageRe.MatchString(rest) {
			return Token{}, unrecognized(data)
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Token{}, unrecognized(data)
		}
		return Page(n), nil

	case KindLocale:
		if !ValidLocale(rest) {
			return Token{}, unrecognized(data)
		}
		return Locale(rest), nil

	case KindGenerate:
		i := strings.LastIndex(rest, sep)
		if i < 0 {
			return Token{}, unrecognized(data)
		}
		locale, rawGender := rest[:i], rest[i+len(sep):]
		if !ValidLocale(locale) {
			return Token{}, unrecognized(data)
		}
		g, err := names.ParseGender(rawGender)
		if err != nil {
			return Token{}, unrecognized(data)
		}
		return Generate(locale, g), nil
	}
	return Token{}, unrecognized(data)
}

func unrecognized(data string) error {
	return fmt.Errorf("%w: %q", ErrUnrecognized, data)
}
