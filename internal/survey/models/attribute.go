package models

import (
	"sort"

	dErrors "surveymatch/pkg/domain-errors"
	pstrings "surveymatch/pkg/platform/strings"
)

// Attribute names one of the five questionnaire answers.
type Attribute string

const (
	AttrAge        Attribute = "age"
	AttrEduLevel   Attribute = "edu_level"
	AttrFavAnimals Attribute = "fav_animals"
	AttrFavPlace   Attribute = "fav_place"
	AttrGender     Attribute = "gender"
)

// Attributes lists every attribute in column order.
var Attributes = []Attribute{AttrAge, AttrEduLevel, AttrFavAnimals, AttrFavPlace, AttrGender}

var attributeDomains = map[Attribute]enumDomain{
	AttrAge:        ageDomain,
	AttrEduLevel:   eduDomain,
	AttrFavAnimals: animalsDomain,
	AttrFavPlace:   placeDomain,
	AttrGender:     genderDomain,
}

// ParseAttribute constructs an Attribute from external input.
func ParseAttribute(s string) (Attribute, error) {
	a := Attribute(s)
	if !a.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown attribute %q", s)
	}
	return a, nil
}

// ParseAttributes trims, lowercases and de-duplicates names before parsing.
// The result is sorted in column order.
func ParseAttributes(names []string) ([]Attribute, error) {
	names = pstrings.DedupeAndTrimLower(names)
	out := make([]Attribute, 0, len(names))
	for _, n := range names {
		a, err := ParseAttribute(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].column() < out[j].column() })
	return out, nil
}

// IsValid reports whether a is one of the five attributes.
func (a Attribute) IsValid() bool {
	_, ok := attributeDomains[a]
	return ok
}

func (a Attribute) String() string { return string(a) }

// Domain returns the canonical codes of a, in display order.
func (a Attribute) Domain() []string {
	return attributeDomains[a].codes()
}

// Label returns the survey label for a canonical value of a.
func (a Attribute) Label(value string) string {
	return attributeDomains[a].label(value)
}

// Normalize parses value against a's domain and returns the canonical code.
func (a Attribute) Normalize(value string) (string, error) {
	d, ok := attributeDomains[a]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown attribute %q", a)
	}
	return d.parse(a, value)
}

func (a Attribute) column() int {
	for i, attr := range Attributes {
		if attr == a {
			return i
		}
	}
	return len(Attributes)
}

func (a Attribute) rank(value string) int {
	return attributeDomains[a].index(value)
}
