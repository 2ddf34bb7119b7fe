package compliance

import "github.com/hireline/hireline/pkg/models"

var baseRecommendations = []string{
	"Review job requirements for unnecessary criteria that may screen out protected groups",
	"Audit screening questions and knockout rules for disparate impact",
	"Re-examine AI scoring inputs for proxy variables correlated with protected attributes",
	"Document the business necessity of every selection criterion in use",
}

var categoryRecommendations = map[models.DemographicCategory]string{
	models.CategoryGender:     "Review job description language for gendered terms and rebalance sourcing channels",
	models.CategoryRace:       "Expand sourcing to a broader set of schools, communities, and job boards",
	models.CategoryDisability: "Verify the application flow and assessments are accessible and offer accommodations",
}

var generalRecommendations = []string{
	"Continue collecting voluntary self-identification data to keep audits statistically meaningful",
	"Schedule bias audits at a regular cadence rather than ad hoc",
	"Ensure every AI-assisted decision remains subject to human review",
}

// Recommendations derives remediation guidance from the computed ratios.
// Failing ratios add the base set once plus one entry per failing category;
// the general set is always appended.
func Recommendations(ratios []models.ImpactRatio) []string {
	recommendations := make([]string, 0, len(baseRecommendations)+len(generalRecommendations))

	failedCategories := make(map[models.DemographicCategory]bool)

	for _, ratio := range ratios {
		if !ratio.PassesFourFifths {
			failedCategories[ratio.Category] = true
		}
	}

	if len(failedCategories) > 0 {
		recommendations = append(recommendations, baseRecommendations...)

		for _, category := range categories {
			if !failedCategories[category] {
				continue
			}

			if extra, ok := categoryRecommendations[category]; ok {
				recommendations = append(recommendations, extra)
			}
		}
	}

	return append(recommendations, generalRecommendations...)
}
