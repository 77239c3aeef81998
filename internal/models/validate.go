package models

import (
	"math"

	"github.com/pkg/errors"
)

// ValidWeight reports whether w is usable as a standard or question weight.
func ValidWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 1)
}

// Validate checks the shape of one standard: name and slug set, a positive
// weight, at least one question, unique question ids, known answer types and
// positive question weights.
func (s *Standard) Validate() error {
	if s.Name == "" || s.Slug == "" {
		return errors.New("name and slug are required")
	}
	if !ValidWeight(s.Weight) {
		return errors.Errorf("%s: weight must be positive", s.Slug)
	}
	if len(s.Questions) == 0 {
		return errors.Errorf("%s: no questions", s.Slug)
	}

	ids := make(map[string]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		if q.ID == "" {
			return errors.Errorf("%s: question without id", s.Slug)
		}
		if _, dup := ids[q.ID]; dup {
			return errors.Errorf("%s: duplicate question id %q", s.Slug, q.ID)
		}
		ids[q.ID] = struct{}{}
		if !q.Type.Valid() {
			return errors.Errorf("%s/%s: unknown answer type %q", s.Slug, q.ID, q.Type)
		}
		if !ValidWeight(q.Weight) {
			return errors.Errorf("%s/%s: weight must be positive", s.Slug, q.ID)
		}
	}
	return nil
}

// ValidateStandards validates every standard and checks that slugs are unique.
func ValidateStandards(stds []Standard) error {
	slugs := make(map[string]struct{}, len(stds))
	for i := range stds {
		if err := stds[i].Validate(); err != nil {
			return errors.Wrapf(err, "standard #%d", i+1)
		}
		if _, dup := slugs[stds[i].Slug]; dup {
			return errors.Errorf("duplicate standard slug %q", stds[i].Slug)
		}
		slugs[stds[i].Slug] = struct{}{}
	}
	return nil
}
