package names

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/m3rciful/namebot/internal/fakedata"
)

// Gender is the requested gender of generated names.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Any    Gender = "any"
)

// Genders lists the selectable genders in menu order.
func Genders() []Gender {
	return []Gender{Male, Female, Any}
}

// ParseGender accepts the exact lower-case wire literals.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case Male, Female, Any:
		return g, nil
	}
	return "", fmt.Errorf("names: unknown gender %q", s)
}

// Title returns the capitalised form used in captions, e.g. "Female".
func (g Gender) Title() string {
	return cases.Title(language.English).String(string(g))
}

// ResolveProducer picks the gender-specific producer when the locale supports
// it and falls back to the generic one otherwise.
func ResolveProducer(caps fakedata.Capabilities, g Gender) fakedata.Producer {
	switch {
	case g == Male && caps.Male:
		return fakedata.Male
	case g == Female && caps.Female:
		return fakedata.Female
	}
	return fakedata.Generic
}
