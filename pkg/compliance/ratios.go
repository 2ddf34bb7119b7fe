package compliance

import "github.com/hireline/hireline/pkg/models"

// FourFifthsThreshold is the EEOC adverse-impact boundary. A ratio of
// exactly 0.8 passes.
const FourFifthsThreshold = 0.8

// ImpactRatios compares every group's selection rate against the
// highest-rate group of the same category, one record per non-reference
// group. Categories with fewer than two groups yield no ratios: with
// nothing to compare against, no adverse impact is measurable.
func ImpactRatios(rates []models.GroupRate) []models.ImpactRatio {
	byCategory := make(map[models.DemographicCategory][]models.GroupRate)
	for _, rate := range rates {
		byCategory[rate.Category] = append(byCategory[rate.Category], rate)
	}

	ratios := make([]models.ImpactRatio, 0)

	for _, category := range categories {
		groups := byCategory[category]
		if len(groups) < 2 {
			continue
		}

		reference := groups[0]
		for _, group := range groups[1:] {
			if group.SelectionRate > reference.SelectionRate {
				reference = group
			}
		}

		for _, group := range groups {
			if group.Group == reference.Group {
				continue
			}

			ratio := impactRatio(group.SelectionRate, reference.SelectionRate)

			ratios = append(ratios, models.ImpactRatio{
				Category:         category,
				Group:            group.Group,
				ReferenceGroup:   reference.Group,
				Ratio:            ratio,
				PassesFourFifths: ratio >= FourFifthsThreshold,
			})
		}
	}

	return ratios
}

// Compliant reports whether every ratio passes. An empty set is compliant.
func Compliant(ratios []models.ImpactRatio) bool {
	for _, ratio := range ratios {
		if !ratio.PassesFourFifths {
			return false
		}
	}

	return true
}

func impactRatio(rate, referenceRate float64) float64 {
	if referenceRate == 0 {
		return 0
	}

	return rate / referenceRate
}
