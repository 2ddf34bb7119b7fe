package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/models"
)

func ratioFor(t *testing.T, ratios []models.ImpactRatio, group string) models.ImpactRatio {
	t.Helper()

	for _, ratio := range ratios {
		if ratio.Group == group {
			return ratio
		}
	}

	t.Fatalf("no ratio for group %s", group)

	return models.ImpactRatio{}
}

func TestImpactRatios_AdverseImpact(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderFemale, Total: 10, Approved: 3, SelectionRate: 0.3},
		{Category: models.CategoryGender, Group: models.GenderMale, Total: 10, Approved: 5, SelectionRate: 0.5},
	}

	ratios := ImpactRatios(rates)
	require.Len(t, ratios, 1)

	female := ratios[0]
	assert.Equal(t, models.GenderFemale, female.Group)
	assert.Equal(t, models.GenderMale, female.ReferenceGroup)
	assert.InEpsilon(t, 0.6, female.Ratio, 0.0001)
	assert.False(t, female.PassesFourFifths)

	assert.False(t, Compliant(ratios))
}

func TestImpactRatios_ReferenceGroupGetsNoRow(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderMale, SelectionRate: 0.5},
		{Category: models.CategoryGender, Group: models.GenderFemale, SelectionRate: 0.3},
		{Category: models.CategoryGender, Group: models.GenderNonBinary, SelectionRate: 0.4},
	}

	ratios := ImpactRatios(rates)
	require.Len(t, ratios, 2)

	for _, ratio := range ratios {
		assert.NotEqual(t, models.GenderMale, ratio.Group)
		assert.Equal(t, models.GenderMale, ratio.ReferenceGroup)
	}
}

func TestImpactRatios_ExactBoundaryPasses(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderMale, SelectionRate: 0.5},
		{Category: models.CategoryGender, Group: models.GenderFemale, SelectionRate: 0.4},
	}

	ratios := ImpactRatios(rates)

	female := ratioFor(t, ratios, models.GenderFemale)
	assert.InEpsilon(t, 0.8, female.Ratio, 0.0001)
	assert.True(t, female.PassesFourFifths)
	assert.True(t, Compliant(ratios))
}

func TestImpactRatios_JustBelowBoundaryFails(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderMale, SelectionRate: 1.0},
		{Category: models.CategoryGender, Group: models.GenderFemale, SelectionRate: 0.7999},
	}

	ratios := ImpactRatios(rates)
	assert.False(t, ratioFor(t, ratios, models.GenderFemale).PassesFourFifths)
}

func TestImpactRatios_SingleGroupYieldsNoRatios(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderMale, SelectionRate: 0.1},
	}

	ratios := ImpactRatios(rates)
	assert.Empty(t, ratios)

	// No measurable comparison means vacuous compliance.
	assert.True(t, Compliant(ratios))
}

func TestImpactRatios_ZeroReferenceRate(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderMale, SelectionRate: 0},
		{Category: models.CategoryGender, Group: models.GenderFemale, SelectionRate: 0},
	}

	ratios := ImpactRatios(rates)
	require.Len(t, ratios, 1)

	assert.Equal(t, models.GenderFemale, ratios[0].Group)
	assert.Zero(t, ratios[0].Ratio)
	assert.False(t, ratios[0].PassesFourFifths)
}

func TestImpactRatios_CategoriesComputedSeparately(t *testing.T) {
	rates := []models.GroupRate{
		{Category: models.CategoryGender, Group: models.GenderMale, SelectionRate: 0.5},
		{Category: models.CategoryGender, Group: models.GenderFemale, SelectionRate: 0.5},
		{Category: models.CategoryRace, Group: models.RaceAsian, SelectionRate: 0.6},
		{Category: models.CategoryRace, Group: models.RaceWhite, SelectionRate: 0.2},
	}

	ratios := ImpactRatios(rates)
	require.Len(t, ratios, 2)

	white := ratioFor(t, ratios, models.RaceWhite)
	assert.Equal(t, models.RaceAsian, white.ReferenceGroup)
	assert.False(t, white.PassesFourFifths)

	assert.True(t, ratioFor(t, ratios, models.GenderFemale).PassesFourFifths)
}
