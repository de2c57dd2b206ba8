package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var ErrDuplicateCriterion = errors.New("rubric criterion ids must be unique within an assignment")

type RubricCriterion struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	MaxPoints int    `json:"maxPoints" validate:"gte=0"`
}

type ExampleSubmission struct {
	ID          string `json:"id"`
	Type        string `json:"type" validate:"oneof=high medium low"`
	Description string `json:"description"`
}

// Requirements flags which media types a submission is expected to carry.
type Requirements struct {
	Text  bool `json:"text"`
	Audio bool `json:"audio"`
	Image bool `json:"image"`
}

type Assignment struct {
	ID           string              `json:"id"`
	Title        string              `json:"title" validate:"required"`
	Instructions string              `json:"instructions"`
	Rubric       []RubricCriterion   `json:"rubric" validate:"dive"`
	Examples     []ExampleSubmission `json:"examples" validate:"dive"`
	Requirements Requirements        `json:"requirements"`
}

func (a *Assignment) Validate() error {
	validate := validator.New()
	if err := validate.Struct(a); err != nil {
		return err
	}
	seen := make(map[string]bool, len(a.Rubric))
	for _, c := range a.Rubric {
		if seen[c.ID] {
			return ErrDuplicateCriterion
		}
		seen[c.ID] = true
	}
	return nil
}

// MaxScore sums maxPoints across the rubric.
func (a *Assignment) MaxScore() int {
	total := 0
	for _, c := range a.Rubric {
		total += c.MaxPoints
	}
	return total
}

// Criterion returns the rubric criterion with the given id, nil if absent.
func (a *Assignment) Criterion(id string) *RubricCriterion {
	for i := range a.Rubric {
		if a.Rubric[i].ID == id {
			return &a.Rubric[i]
		}
	}
	return nil
}

// Clone makes a full structural copy. Mutating the clone's rubric or
// examples never touches the original.
func (a *Assignment) Clone() Assignment {
	dup := *a
	dup.Rubric = make([]RubricCriterion, len(a.Rubric))
	copy(dup.Rubric, a.Rubric)
	dup.Examples = make([]ExampleSubmission, len(a.Examples))
	copy(dup.Examples, a.Examples)
	return dup
}
