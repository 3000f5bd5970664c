package models

import (
	"strings"

	dErrors "surveymatch/pkg/domain-errors"
)

// Each questionnaire answer is a closed enum. Values carry a canonical code
// (used in JSON and configuration) and the label the survey used, which is
// also what the historical dataset and the fitted model contain. Parsing
// accepts either spelling.

type enumValue struct {
	code  string
	label string
}

// enumDomain is an ordered set of allowed values for one attribute.
type enumDomain []enumValue

func (d enumDomain) parse(attr Attribute, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", attr)
	}
	for _, v := range d {
		if s == v.label || strings.EqualFold(s, v.code) {
			return v.code, nil
		}
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s %q", attr, s)
}

func (d enumDomain) label(code string) string {
	for _, v := range d {
		if v.code == code {
			return v.label
		}
	}
	return code
}

func (d enumDomain) codes() []string {
	out := make([]string, len(d))
	for i, v := range d {
		out[i] = v.code
	}
	return out
}

func (d enumDomain) index(code string) int {
	for i, v := range d {
		if v.code == code {
			return i
		}
	}
	return -1
}

// AgeRange is a bucketed age answer.
type AgeRange string

const (
	AgeUnder18   AgeRange = "<18"
	Age18To24    AgeRange = "18-24"
	Age25To34    AgeRange = "25-34"
	Age35To44    AgeRange = "35-44"
	Age45To54    AgeRange = "45-54"
	Age55To64    AgeRange = "55-64"
	Age65AndOver AgeRange = ">=65"
	AgeUnknown   AgeRange = "unknown"
)

var ageDomain = enumDomain{
	{string(AgeUnder18), "<18"},
	{string(Age18To24), "18-24"},
	{string(Age25To34), "25-34"},
	{string(Age35To44), "35-44"},
	{string(Age45To54), "45-54"},
	{string(Age55To64), "55-64"},
	{string(Age65AndOver), ">=65"},
	{string(AgeUnknown), "unknown"},
}

// ParseAgeRange constructs an AgeRange from external input.
func ParseAgeRange(s string) (AgeRange, error) {
	v, err := ageDomain.parse(AttrAge, s)
	return AgeRange(v), err
}

func (a AgeRange) String() string { return string(a) }

// EduLevel is the highest completed education level.
type EduLevel string

const (
	EduBasic     EduLevel = "basic"
	EduSecondary EduLevel = "secondary"
	EduHigher    EduLevel = "higher"
)

var eduDomain = enumDomain{
	{string(EduBasic), "Podstawowe"},
	{string(EduSecondary), "Średnie"},
	{string(EduHigher), "Wyższe"},
}

// ParseEduLevel constructs an EduLevel from external input.
func ParseEduLevel(s string) (EduLevel, error) {
	v, err := eduDomain.parse(AttrEduLevel, s)
	return EduLevel(v), err
}

func (e EduLevel) String() string { return string(e) }

// FavAnimals is the preferred kind of animal.
type FavAnimals string

const (
	AnimalsNone       FavAnimals = "none"
	AnimalsDogs       FavAnimals = "dogs"
	AnimalsCats       FavAnimals = "cats"
	AnimalsOther      FavAnimals = "other"
	AnimalsDogsAndCat FavAnimals = "dogs-and-cats"
)

var animalsDomain = enumDomain{
	{string(AnimalsNone), "Brak ulubionych"},
	{string(AnimalsDogs), "Psy"},
	{string(AnimalsCats), "Koty"},
	{string(AnimalsOther), "Inne"},
	{string(AnimalsDogsAndCat), "Koty i Psy"},
}

// ParseFavAnimals constructs a FavAnimals from external input.
func ParseFavAnimals(s string) (FavAnimals, error) {
	v, err := animalsDomain.parse(AttrFavAnimals, s)
	return FavAnimals(v), err
}

func (f FavAnimals) String() string { return string(f) }

// FavPlace is the preferred kind of place.
type FavPlace string

const (
	PlaceByWater   FavPlace = "by-water"
	PlaceForest    FavPlace = "forest"
	PlaceMountains FavPlace = "mountains"
	PlaceOther     FavPlace = "other"
)

var placeDomain = enumDomain{
	{string(PlaceByWater), "Nad wodą"},
	{string(PlaceForest), "W lesie"},
	{string(PlaceMountains), "W górach"},
	{string(PlaceOther), "Inne"},
}

// ParseFavPlace constructs a FavPlace from external input.
func ParseFavPlace(s string) (FavPlace, error) {
	v, err := placeDomain.parse(AttrFavPlace, s)
	return FavPlace(v), err
}

func (f FavPlace) String() string { return string(f) }

// Gender is the self-reported gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genderDomain = enumDomain{
	{string(GenderMale), "Mężczyzna"},
	{string(GenderFemale), "Kobieta"},
}

// ParseGender constructs a Gender from external input.
func ParseGender(s string) (Gender, error) {
	v, err := genderDomain.parse(AttrGender, s)
	return Gender(v), err
}

func (g Gender) String() string { return string(g) }
