package extractor

import (
	"context"
	"math"
	"regexp"
	"strings"

	"dealfinder/internal/gazetteer"
	"dealfinder/internal/model"
	"dealfinder/internal/normalize"
	"dealfinder/internal/taxonomy"
)

// Local is the deterministic regex fallback parser. It never fails: an
// unmatched field is simply left absent, and the worst case is an empty
// record.
type Local struct{}

// NewLocal creates the local fallback extractor.
func NewLocal() *Local { return &Local{} }

// Extract satisfies Client. The context is ignored; local parsing is a
// synchronous, pure computation.
func (l *Local) Extract(_ context.Context, text string) (*model.RawParsed, error) {
	return l.Parse(text), nil
}

// Confidence levels for competing matches: an explicit range beats a single
// bare mention, which is only a band estimate.
const (
	confRange  = 0.9
	confSingle = 0.55
	confLookup = 0.8
	confIntent = 0.7
)

var (
	num = `(\d+(?:,\d{3})*(?:\.\d+)?)`

	sizeRangePattern  = regexp.MustCompile(num + `\s*(k)?\s*[-–—]\s*` + num + `\s*(k)?\s*(?:sf|sq\.?\s*ft|square\s+feet)\b`)
	sizeSinglePattern = regexp.MustCompile(num + `\s*(k)?\s*(?:sf|sq\.?\s*ft|square\s+feet)\b`)

	unitsRangePattern  = regexp.MustCompile(`(\d+)\s*[-–—]\s*(\d+)\s*(?:units?|doors?|keys?)\b`)
	unitsSinglePattern = regexp.MustCompile(`(\d+)\s*(?:units?|doors?|keys?)\b`)

	acresRangePattern  = regexp.MustCompile(num + `\s*[-–—]\s*` + num + `\s*acres?\b`)
	acresSinglePattern = regexp.MustCompile(num + `\s*acres?\b`)

	psfRangePattern = regexp.MustCompile(`\$?\s*` + num + `\s*[-–—]\s*\$?\s*` + num + `\s*(?:psf|/\s*sf|per\s+sf)\b`)

	capMinPattern  = regexp.MustCompile(`cap(?:\s*rates?)?\s*(?:≥|>=|>|above|over|of\s+at\s+least|at\s+least|min(?:imum)?(?:\s+of)?)\s*` + num + `\s*%?`)
	capMaxPattern  = regexp.MustCompile(`cap(?:\s*rates?)?\s*(?:≤|<=|<|below|under|max(?:imum)?(?:\s+of)?)\s*` + num + `\s*%?`)
	capPlusPattern = regexp.MustCompile(`cap(?:\s*rates?)?\s*(?:of\s*)?` + num + `\s*%?\s*(?:\+|or\s+(?:better|higher|above))`)

	perDoorPattern = regexp.MustCompile(`\$?\s*` + num + `\s*(k)?\s*(?:/|per\s+)door`)

	budgetRangePattern = regexp.MustCompile(`\$\s*` + num + `\s*(k|m|mm|million)?\s*[-–—]\s*\$?\s*` + num + `\s*(k|m|mm|million)?\b`)
	budgetMaxPattern   = regexp.MustCompile(`(?:budget|price|all[-\s]in)?\s*(?:≤|<=|under|below|up\s+to|max(?:imum)?(?:\s+of)?)\s*\$\s*` + num + `\s*(k|m|mm|million)?\b`)
	budgetMinPattern   = regexp.MustCompile(`(?:budget|price)\s*(?:≥|>=|at\s+least|min(?:imum)?(?:\s+of)?)\s*\$\s*` + num + `\s*(k|m|mm|million)?\b`)

	builtAfterPattern  = regexp.MustCompile(`(?:built|build|vintage|constructed)\s*(?:after|since|≥|>=|in\s+or\s+after)\s*(\d{4})`)
	builtBeforePattern = regexp.MustCompile(`(?:built|build|vintage|constructed)\s*(?:before|prior\s+to|≤|<=)\s*(\d{4})`)
	builtRangePattern  = regexp.MustCompile(`(?:built|vintage|constructed)\s*(?:between\s*)?(\d{4})\s*[-–—]\s*(\d{4})`)
	preYearPattern     = regexp.MustCompile(`pre[-\s]?(\d{4})`)

	timingPattern    = regexp.MustCompile(`(?:matur\w*|balloon|due)\s*(?:in|within|≤|<=)?\s*(\d+)\s*months?`)
	timingRevPattern = regexp.MustCompile(`(\d+)\s*months?\s*to\s*(?:maturity|loan\s+maturity|the\s+event)`)

	loanMaturingPattern = regexp.MustCompile(`(?:loan|debt|mortgage)\s+matur|maturing|maturity`)
	offMarketPattern    = regexp.MustCompile(`off[-\s]?market`)
	ownerAgePattern     = regexp.MustCompile(`(?:owner|seller)s?\s*(?:aged?|age|over|older\s+than|≥|>=)?\s*(\d{2})\s*\+?`)
	tenurePattern       = regexp.MustCompile(`owned\s*(?:for\s*)?(?:≥|>=|at\s+least|over|more\s+than)?\s*(\d+)\s*\+?\s*years`)
)

// assetRule maps keyword cues to a canonical asset type. Ordered: more
// specific cues first so "medical office" is not swallowed by "office".
type assetRule struct {
	asset   string
	pattern *regexp.Regexp
}

var assetRules = []assetRule{
	{"medical office", regexp.MustCompile(`\bmedical\s+office\b`)},
	{"data center", regexp.MustCompile(`\bdata\s*center\b`)},
	{"self-storage", regexp.MustCompile(`\bself[-\s]?storage\b|\bstorage\s+facilit`)},
	{"industrial", regexp.MustCompile(`\bwarehouse|industrial|logistics|distribution|plant|flex\s+space\b`)},
	{"multifamily", regexp.MustCompile(`\bmultifamily|multi[-\s]family|apartment`)},
	{"single-family", regexp.MustCompile(`\bsfr\b|\bsingle[-\s]family\b`)},
	{"office", regexp.MustCompile(`\boffice\b`)},
	{"retail", regexp.MustCompile(`\bretail|strip\s+center|shopping\s+center\b`)},
	{"hotel", regexp.MustCompile(`\bhotel|hospitality\b`)},
	{"land", regexp.MustCompile(`\bland\b|\bparcel|\bacreage\b`)},
}

var keywordCues = []string{
	"value-add", "distressed", "stabilized", "off-market", "nnn",
	"core", "opportunistic", "turnkey", "owner-user",
}

// Parse runs every probe against the lower-cased text and assembles a
// best-effort RawParsed. Each probe is independent; a miss leaves its field
// absent.
func (l *Local) Parse(text string) *model.RawParsed {
	t := strings.ToLower(text)
	raw := &model.RawParsed{Confidence: map[string]float64{}}

	if intent := taxonomy.MapIntentFromText(text); intent != model.IntentOther {
		raw.Intent = string(intent)
		raw.Confidence["intent"] = confIntent
	}

	for _, rule := range assetRules {
		if rule.pattern.MatchString(t) {
			asset := rule.asset
			raw.AssetType = &asset
			raw.Confidence["asset_type"] = confLookup
			break
		}
	}

	if market := gazetteer.ResolveMarket(t); market != nil {
		raw.Market = market
		raw.Confidence["market"] = confLookup
	}

	l.parseSize(t, raw)
	l.parseUnits(t, raw)
	l.parseAcres(t, raw)
	l.parsePrice(t, raw)
	l.parseBuildYear(t, raw)
	l.parseTiming(t, raw)
	l.parseFlags(t, raw)

	for _, cue := range keywordCues {
		if strings.Contains(t, cue) {
			raw.Keywords = append(raw.Keywords, cue)
		}
	}

	return raw
}

func (l *Local) parseSize(t string, raw *model.RawParsed) {
	if m := sizeRangePattern.FindStringSubmatch(t); m != nil {
		lo, hi := expandK(m[1], m[2] != "", m[4] != ""), expandK(m[3], m[4] != "", false)
		raw.SizeRangeSF = &model.RawRange{Min: lo, Max: hi}
		raw.Confidence["size_sf"] = confRange
		return
	}
	// A single bare SF mention is an estimate, not an exact number: treat
	// it as a ±20% band around the stated value.
	if m := sizeSinglePattern.FindStringSubmatch(t); m != nil {
		v := expandK(m[1], m[2] != "", false)
		raw.SizeRangeSF = &model.RawRange{Min: bandLo(v), Max: bandHi(v)}
		raw.Confidence["size_sf"] = confSingle
	}
}

func (l *Local) parseUnits(t string, raw *model.RawParsed) {
	if m := unitsRangePattern.FindStringSubmatch(t); m != nil {
		raw.UnitsRange = &model.RawRange{Min: atof(m[1]), Max: atof(m[2])}
		raw.Confidence["units"] = confRange
		return
	}
	if m := unitsSinglePattern.FindStringSubmatch(t); m != nil {
		v := atof(m[1])
		raw.UnitsRange = &model.RawRange{Min: bandLo(v), Max: bandHi(v)}
		raw.Confidence["units"] = confSingle
	}
}

func (l *Local) parseAcres(t string, raw *model.RawParsed) {
	if m := acresRangePattern.FindStringSubmatch(t); m != nil {
		raw.Acres = &model.RawRange{Min: atof(m[1]), Max: atof(m[2])}
		raw.Confidence["acres"] = confRange
		return
	}
	if m := acresSinglePattern.FindStringSubmatch(t); m != nil {
		v := atof(m[1])
		raw.Acres = &model.RawRange{Min: bandLo(v), Max: bandHi(v)}
		raw.Confidence["acres"] = confSingle
	}
}

func (l *Local) parsePrice(t string, raw *model.RawParsed) {
	band := &model.PriceCapBand{}
	matched := false

	if m := psfRangePattern.FindStringSubmatch(t); m != nil {
		band.PSFMin, band.PSFMax = atof(m[1]), atof(m[2])
		raw.Confidence["psf"] = confRange
		matched = true
		// Mask the per-square-foot figures so the budget probes don't
		// re-read them as a deal budget.
		t = psfRangePattern.ReplaceAllString(t, " ")
	}
	if m := capMinPattern.FindStringSubmatch(t); m != nil {
		band.CapMin = atof(m[1])
		raw.Confidence["cap_rate"] = confRange
		matched = true
	} else if m := capPlusPattern.FindStringSubmatch(t); m != nil {
		band.CapMin = atof(m[1])
		raw.Confidence["cap_rate"] = confRange
		matched = true
	}
	if m := capMaxPattern.FindStringSubmatch(t); m != nil {
		band.CapMax = atof(m[1])
		raw.Confidence["cap_rate"] = confRange
		matched = true
	}
	if m := perDoorPattern.FindStringSubmatch(t); m != nil {
		band.PerDoorMax = expandSuffix(m[1], m[2])
		raw.Confidence["per_door"] = confRange
		matched = true
		// Mask the per-door figure so the budget probes don't re-read it as
		// a deal budget.
		t = perDoorPattern.ReplaceAllString(t, " ")
	}
	if m := budgetRangePattern.FindStringSubmatch(t); m != nil {
		suffix := m[2]
		if suffix == "" {
			suffix = m[4]
		}
		band.BudgetMin = expandSuffix(m[1], suffix)
		band.BudgetMax = expandSuffix(m[3], m[4])
		raw.Confidence["budget"] = confRange
		matched = true
	} else {
		if m := budgetMaxPattern.FindStringSubmatch(t); m != nil {
			band.BudgetMax = expandSuffix(m[1], m[2])
			raw.Confidence["budget"] = confRange
			matched = true
		}
		if m := budgetMinPattern.FindStringSubmatch(t); m != nil {
			band.BudgetMin = expandSuffix(m[1], m[2])
			raw.Confidence["budget"] = confRange
			matched = true
		}
	}

	if matched {
		raw.PriceCapBand = band
	}
}

func (l *Local) parseBuildYear(t string, raw *model.RawParsed) {
	by := &model.RawBuildYear{}
	if m := builtRangePattern.FindStringSubmatch(t); m != nil {
		by.After, by.Before = atof(m[1]), atof(m[2])
	} else {
		if m := builtAfterPattern.FindStringSubmatch(t); m != nil {
			by.After = atof(m[1])
		}
		if m := builtBeforePattern.FindStringSubmatch(t); m != nil {
			by.Before = atof(m[1])
		} else if m := preYearPattern.FindStringSubmatch(t); m != nil {
			by.Before = atof(m[1])
		}
	}
	if by.After != nil || by.Before != nil {
		raw.BuildYear = by
		raw.Confidence["build_year"] = confRange
	}
}

func (l *Local) parseTiming(t string, raw *model.RawParsed) {
	m := timingPattern.FindStringSubmatch(t)
	if m == nil {
		m = timingRevPattern.FindStringSubmatch(t)
	}
	if m != nil {
		if f := normalize.ToNumber(m[1]); f != nil {
			months := int(*f)
			raw.Timing = &model.Timing{MonthsToEvent: &months}
			raw.Confidence["timing"] = confRange
		}
	}
}

func (l *Local) parseFlags(t string, raw *model.RawParsed) {
	raw.Flags.LoanMaturing = loanMaturingPattern.MatchString(t)
	raw.Flags.OffMarket = offMarketPattern.MatchString(t)

	if m := ownerAgePattern.FindStringSubmatch(t); m != nil {
		if f := normalize.ToNumber(m[1]); f != nil && *f >= 18 && *f < 120 {
			age := int(*f)
			raw.OwnerAgeMin = &age
			if age >= 65 {
				raw.Flags.OwnerAge65Plus = true
			}
		}
	}
	if m := tenurePattern.FindStringSubmatch(t); m != nil {
		if f := normalize.ToNumber(m[1]); f != nil {
			years := int(*f)
			raw.OwnershipYearsMin = &years
		}
	}
}

// atof returns nil on parse failure so the probe degrades to absence.
func atof(s string) *float64 {
	return normalize.ToNumber(s)
}

// expandK applies a "k" suffix. A trailing "k" on a range distributes to a
// bare leading endpoint: "60-120k" means 60k-120k.
func expandK(s string, ownK, trailingK bool) *float64 {
	f := normalize.ToNumber(s)
	if f == nil {
		return nil
	}
	if ownK || trailingK {
		*f *= 1_000
	}
	return f
}

func expandSuffix(s, suffix string) *float64 {
	f := normalize.ToNumber(s)
	if f == nil {
		return nil
	}
	switch suffix {
	case "k":
		*f *= 1_000
	case "m", "mm", "million":
		*f *= 1_000_000
	}
	return f
}

func bandLo(v *float64) *float64 {
	if v == nil {
		return nil
	}
	lo := math.Round(*v * 0.8)
	return &lo
}

func bandHi(v *float64) *float64 {
	if v == nil {
		return nil
	}
	hi := math.Round(*v * 1.2)
	return &hi
}
