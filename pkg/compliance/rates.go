// Package compliance implements the EEOC four-fifths (80%) adverse-impact
// computation over application outcomes and voluntary demographic
// self-reports.
package compliance

import (
	"sort"

	"github.com/hireline/hireline/pkg/models"
)

// Sample pairs one application outcome with the applicant's voluntary
// self-report. Record is nil when the candidate never filed one.
type Sample struct {
	Approved bool
	Record   *models.EEORecord
}

var categories = []models.DemographicCategory{
	models.CategoryRace,
	models.CategoryGender,
	models.CategoryVeteran,
	models.CategoryDisability,
}

// GroupRates computes per-group selection rates for every demographic
// category. Samples with no value for a category, and samples that declined
// to answer, are excluded from that category's grouping only.
func GroupRates(samples []Sample) []models.GroupRate {
	rates := make([]models.GroupRate, 0)

	for _, category := range categories {
		totals := make(map[string]int)
		approved := make(map[string]int)

		for _, sample := range samples {
			value := sample.Record.Value(category)
			if value == "" || value == models.DeclineToAnswer {
				continue
			}

			totals[value]++

			if sample.Approved {
				approved[value]++
			}
		}

		groups := make([]string, 0, len(totals))
		for group := range totals {
			groups = append(groups, group)
		}

		sort.Strings(groups)

		for _, group := range groups {
			rates = append(rates, models.GroupRate{
				Category:      category,
				Group:         group,
				Total:         totals[group],
				Approved:      approved[group],
				SelectionRate: selectionRate(approved[group], totals[group]),
			})
		}
	}

	return rates
}

// selectionRate guards the zero denominator.
func selectionRate(approved, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(approved) / float64(total)
}
