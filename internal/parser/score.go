package parser

import (
	"strconv"
	"strings"

	"github.com/marcus-hale/resume-extract/internal/entity"
)

// Field weights for the aggregate score. The name weight is split evenly
// between the first and last name components.
const (
	weightName       = 0.2
	weightEmail      = 0.15
	weightPhone      = 0.1
	weightCity       = 0.05
	weightState      = 0.05
	weightWorkAuth   = 0.1
	weightSkills     = 0.15
	weightRole       = 0.1
	weightExperience = 0.1
	weightEducation  = 0.05
	weightCerts      = 0.05
)

// Aggregate combines per-field confidences into the document score:
// the weighted sum over fields that produced a value, divided by the weight
// mass of those same fields. A document with no scored fields gets 0.
func Aggregate(res *entity.ExtractionResult) float64 {
	var sum, mass float64
	add := func(v entity.ExtractedValue, w float64) {
		if v.IsEmpty() {
			return
		}
		sum += v.Confidence * w
		mass += w
	}

	add(res.FirstName, weightName/2)
	add(res.LastName, weightName/2)
	add(res.PrimaryEmail, weightEmail)
	add(res.Phone, weightPhone)
	add(res.City, weightCity)
	add(res.State, weightState)
	add(res.WorkAuth, weightWorkAuth)
	add(res.Skills, weightSkills)
	add(res.Designation, weightRole)

	// Experience only counts when it is a numeric years value.
	if !res.Experience.IsEmpty() {
		if _, err := strconv.Atoi(strings.TrimSuffix(res.Experience.Str(), "+")); err == nil {
			add(res.Experience, weightExperience)
		}
	}

	add(res.Education, weightEducation)
	add(res.Certifications, weightCerts)

	if mass == 0 {
		return 0
	}
	return sum / mass
}
