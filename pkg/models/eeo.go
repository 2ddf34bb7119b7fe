package models

import "time"

// DemographicCategory names one of the four protected categories measured
// by the four-fifths computation.
type DemographicCategory string

const (
	CategoryRace       DemographicCategory = "race"
	CategoryGender     DemographicCategory = "gender"
	CategoryVeteran    DemographicCategory = "veteran_status"
	CategoryDisability DemographicCategory = "disability_status"
)

// DeclineToAnswer is excluded from every grouping; a voluntary non-answer
// never counts for or against any group.
const DeclineToAnswer = "decline_to_answer"

// Race categories follow the EEO-1 component plus a decline option.
const (
	RaceHispanicLatino     = "hispanic_or_latino"
	RaceWhite              = "white"
	RaceBlack              = "black_or_african_american"
	RaceAsian              = "asian"
	RaceNativeAmerican     = "american_indian_or_alaska_native"
	RacePacificIslander    = "native_hawaiian_or_pacific_islander"
	RaceTwoOrMore          = "two_or_more_races"
)

const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderNonBinary = "non_binary"
)

const (
	VeteranProtected    = "protected_veteran"
	VeteranNotProtected = "not_a_protected_veteran"
)

const (
	DisabilityYes = "yes"
	DisabilityNo  = "no"
)

// EEORecord is a candidate's voluntary demographic self-report. At most one
// record exists per candidate; it is used only for aggregate measurement,
// never for individual scoring.
type EEORecord struct {
	CandidateID      string    `json:"candidate_id" validate:"required"`
	Race             string    `json:"race"`
	Gender           string    `json:"gender"`
	VeteranStatus    string    `json:"veteran_status"`
	DisabilityStatus string    `json:"disability_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Value returns the record's declared value for a category. A nil record
// yields the empty string, which every grouping excludes.
func (r *EEORecord) Value(category DemographicCategory) string {
	if r == nil {
		return ""
	}

	switch category {
	case CategoryRace:
		return r.Race
	case CategoryGender:
		return r.Gender
	case CategoryVeteran:
		return r.VeteranStatus
	case CategoryDisability:
		return r.DisabilityStatus
	default:
		return ""
	}
}
