package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hireline/hireline/pkg/events"
)

func TestSubstitute_AllTokens(t *testing.T) {
	tctx := events.TriggerContext{
		CandidateName: "Jordan Low",
		JobTitle:      "Backend Engineer",
		CompanyName:   "Acme",
		Days:          30,
	}

	out := Substitute("{{candidateName}} / {{jobTitle}} / {{companyName}} / {{days}} days", tctx)
	assert.Equal(t, "Jordan Low / Backend Engineer / Acme / 30 days", out)
}

func TestSubstitute_MissingValuesBecomeEmpty(t *testing.T) {
	out := Substitute("Hi {{candidateName}}, about {{jobTitle}} after {{days}} days", events.TriggerContext{})
	assert.Equal(t, "Hi , about  after  days", out)
}

func TestSubstitute_UnknownTokensLeftAlone(t *testing.T) {
	out := Substitute("Hello {{recruiterName}}", events.TriggerContext{CandidateName: "x"})
	assert.Equal(t, "Hello {{recruiterName}}", out)
}

func TestSubstitute_RepeatedTokens(t *testing.T) {
	tctx := events.TriggerContext{CandidateName: "Sam"}

	out := Substitute("{{candidateName}} {{candidateName}}", tctx)
	assert.Equal(t, "Sam Sam", out)
}
