package models

import (
	dErrors "surveymatch/pkg/domain-errors"
)

// Person is one questionnaire submission.
//
// Invariants:
//   - every field holds a value from its attribute's domain
//   - a Person is a value; copies never alias
type Person struct {
	Age        AgeRange   `json:"age"`
	EduLevel   EduLevel   `json:"edu_level"`
	FavAnimals FavAnimals `json:"fav_animals"`
	FavPlace   FavPlace   `json:"fav_place"`
	Gender     Gender     `json:"gender"`
}

// Answers holds raw, unparsed answers keyed the same way as the dataset
// columns. Either canonical codes or survey labels are accepted.
type Answers struct {
	Age        string
	EduLevel   string
	FavAnimals string
	FavPlace   string
	Gender     string
}

// NewPerson validates raw answers and builds a Person.
func NewPerson(a Answers) (Person, error) {
	age, err := ParseAgeRange(a.Age)
	if err != nil {
		return Person{}, err
	}
	edu, err := ParseEduLevel(a.EduLevel)
	if err != nil {
		return Person{}, err
	}
	animals, err := ParseFavAnimals(a.FavAnimals)
	if err != nil {
		return Person{}, err
	}
	place, err := ParseFavPlace(a.FavPlace)
	if err != nil {
		return Person{}, err
	}
	gender, err := ParseGender(a.Gender)
	if err != nil {
		return Person{}, err
	}
	return Person{Age: age, EduLevel: edu, FavAnimals: animals, FavPlace: place, Gender: gender}, nil
}

// Value returns the canonical value of attr.
func (p Person) Value(attr Attribute) string {
	switch attr {
	case AttrAge:
		return string(p.Age)
	case AttrEduLevel:
		return string(p.EduLevel)
	case AttrFavAnimals:
		return string(p.FavAnimals)
	case AttrFavPlace:
		return string(p.FavPlace)
	case AttrGender:
		return string(p.Gender)
	}
	return ""
}

// Matches reports whether p and other agree on every attribute in on.
func (p Person) Matches(other Person, on []Attribute) bool {
	for _, attr := range on {
		if p.Value(attr) != other.Value(attr) {
			return false
		}
	}
	return true
}

// Validate checks that every field is inside its domain. Persons built with
// NewPerson always pass; this guards values assembled by hand.
func (p Person) Validate() error {
	for _, attr := range Attributes {
		if attr.rank(p.Value(attr)) < 0 {
			return dErrors.Newf(dErrors.CodeInvariantViolation, "%s %q is outside its domain", attr, p.Value(attr))
		}
	}
	return nil
}

// LabeledPerson is a Person with the cluster the model assigned to it.
type LabeledPerson struct {
	Person
	ClusterID ClusterID `json:"cluster_id"`
}
