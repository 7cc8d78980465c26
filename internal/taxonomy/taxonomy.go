// Package taxonomy classifies mandate text into the closed intent set and
// infers the transactional role of the speaker.
package taxonomy

import (
	"regexp"
	"strings"

	"dealfinder/internal/model"
)

// intentRule maps a set of trigger substrings, plus an optional regex probe,
// to an intent. Rules are tested in order: test order is significance order,
// not arbitrary. Specific multi-word legal/financial phrases must stay ahead
// of the generic lease/buy/sell tests or the generic rule shadows them.
type intentRule struct {
	intent   model.Intent
	triggers []string
	pattern  *regexp.Regexp
}

// "TI" needs a word boundary so it doesn't fire inside ordinary words, and it
// must be probed at the work-letter rule's rank or a later generic rule
// (refi, lease) steals mandates that mention both.
var tiPattern = regexp.MustCompile(`\bti\b`)

var intentRules = []intentRule{
	{intent: model.IntentLeaseSurrender, triggers: []string{"lease surrender", "surrender"}},
	{intent: model.IntentSaleLeaseback, triggers: []string{"sale-leaseback", "sale leaseback"}},
	{intent: model.IntentGroundLease, triggers: []string{"ground lease", "land lease"}},
	{intent: model.IntentTIWorkLetter, triggers: []string{"work letter"}, pattern: tiPattern},
	{intent: model.IntentConstructionDraw, triggers: []string{"construction draw", "requisition"}},
	{intent: model.Intent1031Exchange, triggers: []string{"1031", "like-kind"}},
	{intent: model.IntentMezzLoan, triggers: []string{"mezz"}},
	{intent: model.IntentPreferredEquity, triggers: []string{"preferred equity", "pref equity"}},
	{intent: model.IntentRefinance, triggers: []string{"refi", "refinance"}},
	{intent: model.IntentCAMReconciliation, triggers: []string{"cam"}},
	{intent: model.IntentForeclosure, triggers: []string{"foreclosure"}},
	{intent: model.IntentWorkoutModification, triggers: []string{"workout", "modification"}},
	{intent: model.IntentBankruptcy, triggers: []string{"bankruptcy", "chapter 11"}},
	{intent: model.IntentROFR, triggers: []string{"rofr", "right of first"}},
	{intent: model.IntentOptionAgreement, triggers: []string{"option to purchase", "option agreement"}},
	{intent: model.IntentSublease, triggers: []string{"sublease", "assignment"}},
	{intent: model.IntentLeaseRenewal, triggers: []string{"renewal", "extend"}},
	{intent: model.IntentLeaseTermination, triggers: []string{"termination", "cancel"}},
	{intent: model.IntentLeaseAgreement, triggers: []string{"lease"}},
	{intent: model.IntentAcquisition, triggers: []string{"buy", "purchase", "acquire"}},
	{intent: model.IntentDisposition, triggers: []string{"sell", "disposition"}},
}

// MapIntentFromText classifies mandate text into the closed intent set.
// Total over all inputs: never returns an unknown value, defaults to
// IntentOther.
func MapIntentFromText(text string) model.Intent {
	t := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, trig := range rule.triggers {
			if strings.Contains(t, trig) {
				return rule.intent
			}
		}
		if rule.pattern != nil && rule.pattern.MatchString(t) {
			return rule.intent
		}
	}
	return model.IntentOther
}

var (
	borrowerPattern = regexp.MustCompile(`borrower|refi|refinance`)
	buySidePattern  = regexp.MustCompile(`buy|acquire|invest`)
	sellSidePattern = regexp.MustCompile(`sell|disposition`)
	landlordPattern = regexp.MustCompile(`landlord|owner`)
)

// InferRole derives the transactional role from keyword cues in the text,
// independent of extractor output. A lease-surrender intent implies a tenant.
func InferRole(intent model.Intent, text string) model.Role {
	tl := strings.ToLower(text)
	switch {
	case intent == model.IntentLeaseSurrender:
		return model.RoleTenant
	case borrowerPattern.MatchString(tl):
		return model.RoleBorrower
	case strings.Contains(tl, "lender"):
		return model.RoleLender
	case buySidePattern.MatchString(tl):
		return model.RoleBuySide
	case sellSidePattern.MatchString(tl):
		return model.RoleSellSide
	case strings.Contains(tl, "tenant"):
		return model.RoleTenant
	case landlordPattern.MatchString(tl):
		return model.RoleLandlord
	}
	return model.RoleOther
}
