// Package template substitutes placeholder tokens in workflow action text.
package template

import (
	"strconv"
	"strings"

	"github.com/hireline/hireline/pkg/events"
)

// The four tokens actions may embed in subjects, bodies, titles, and
// messages. Substitution is literal: a token with no context value becomes
// the empty string, never the raw token.
const (
	TokenCandidateName = "{{candidateName}}"
	TokenJobTitle      = "{{jobTitle}}"
	TokenCompanyName   = "{{companyName}}"
	TokenDays          = "{{days}}"
)

// Substitute replaces every placeholder token with the matching context
// field.
func Substitute(input string, tctx events.TriggerContext) string {
	days := ""
	if tctx.Days != 0 {
		days = strconv.Itoa(tctx.Days)
	}

	replacer := strings.NewReplacer(
		TokenCandidateName, tctx.CandidateName,
		TokenJobTitle, tctx.JobTitle,
		TokenCompanyName, tctx.CompanyName,
		TokenDays, days,
	)

	return replacer.Replace(input)
}
