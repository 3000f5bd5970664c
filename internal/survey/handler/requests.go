package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"surveymatch/internal/survey/models"
	dErrors "surveymatch/pkg/domain-errors"
)

// MatchRequest is the HTTP request body for POST /v1/match. Answers may be
// canonical codes ("forest") or survey labels ("W lesie").
type MatchRequest struct {
	Age         string `json:"age"`
	EduLevel    string `json:"edu_level"`
	FavAnimals  string `json:"fav_animals"`
	FavPlace    string `json:"fav_place"`
	Gender      string `json:"gender"`
	CompareWith string `json:"compare_with,omitempty"`

	// Parsed values (populated by Validate)
	person models.Person
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *MatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	r.CompareWith = strings.TrimSpace(r.CompareWith)
	if !govalidator.StringLength(r.CompareWith, "0", "100") {
		return dErrors.New(dErrors.CodeValidation, "compare_with must be at most 100 characters")
	}

	fields := []struct {
		attr  models.Attribute
		value *string
	}{
		{models.AttrAge, &r.Age},
		{models.AttrEduLevel, &r.EduLevel},
		{models.AttrFavAnimals, &r.FavAnimals},
		{models.AttrFavPlace, &r.FavPlace},
		{models.AttrGender, &r.Gender},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return dErrors.Newf(dErrors.CodeValidation, "%s is required", f.attr)
		}
		if !govalidator.IsIn(*f.value, accepted(f.attr)...) {
			return dErrors.Newf(dErrors.CodeValidation, "%s must be one of %s", f.attr, strings.Join(f.attr.Domain(), ", "))
		}
	}

	person, err := models.NewPerson(models.Answers{
		Age:        r.Age,
		EduLevel:   r.EduLevel,
		FavAnimals: r.FavAnimals,
		FavPlace:   r.FavPlace,
		Gender:     r.Gender,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid answers")
	}
	r.person = person
	return nil
}

// ParsedPerson returns the validated person.
func (r *MatchRequest) ParsedPerson() models.Person {
	return r.person
}

// accepted lists the codes and survey labels of attr.
func accepted(attr models.Attribute) []string {
	codes := attr.Domain()
	out := make([]string, 0, 2*len(codes))
	for _, code := range codes {
		out = append(out, code, attr.Label(code))
	}
	return out
}
