// Package service holds the mandate pipeline: unification of extractor
// output into the canonical record, refine-plan building, prospect
// synthesis, and parse orchestration.
package service

import (
	"fmt"
	"regexp"
	"strings"

	"dealfinder/internal/gazetteer"
	"dealfinder/internal/model"
	"dealfinder/internal/normalize"
	"dealfinder/internal/taxonomy"
)

var (
	unitsFallbackPattern = regexp.MustCompile(`(\d{1,3})\s*[-–—]\s*(\d{1,3})\s*units?\b`)
	sizeFallbackPattern  = regexp.MustCompile(`(\d+(?:,\d{3})*)\s*(k)?\s*[-–—]\s*(\d+(?:,\d{3})*)\s*(k)?\s*(?:sf|sq\.?\s*ft)\b`)
)

// assetCue is the text fallback when the extractor offered no asset type.
type assetCue struct {
	asset   string
	pattern *regexp.Regexp
}

var assetCues = []assetCue{
	{"industrial", regexp.MustCompile(`warehouse|industrial|logistics|distribution`)},
	{"multifamily", regexp.MustCompile(`multifamily|multi[-\s]family|apartment`)},
	{"office", regexp.MustCompile(`\boffice\b`)},
	{"retail", regexp.MustCompile(`\bretail\b`)},
	{"land", regexp.MustCompile(`\bland\b`)},
}

// NormalizeUniversal merges the extractor's raw guess with deterministic
// signals from the original text into the canonical record. It is a pure
// function: the same raw guess and text always produce the same record, and
// neither input is mutated.
func NormalizeUniversal(raw *model.RawParsed, text string) *model.UniversalParsed {
	if raw == nil {
		raw = &model.RawParsed{}
	}
	lower := strings.ToLower(text)

	u := &model.UniversalParsed{
		Intent:      mergeIntent(raw.Intent, text),
		Flags:       raw.Flags,
		Constraints: append([]string{}, raw.Constraints...),
		RedFlags:    append([]string{}, raw.RedFlags...),
		Keywords:    append([]string{}, raw.Keywords...),
	}
	u.Role = taxonomy.InferRole(u.Intent, text)

	if raw.AssetType != nil && strings.TrimSpace(*raw.AssetType) != "" {
		asset := normalize.AssetType(*raw.AssetType)
		u.AssetType = &asset
	} else {
		for _, cue := range assetCues {
			if cue.pattern.MatchString(lower) {
				asset := cue.asset
				u.AssetType = &asset
				break
			}
		}
	}

	if !raw.Market.Empty() {
		u.Market = &model.Market{
			City:    raw.Market.City,
			State:   raw.Market.State,
			Metro:   raw.Market.Metro,
			Country: raw.Market.Country,
		}
	} else {
		u.Market = gazetteer.ResolveMarket(text)
	}

	u.SizeSF = normalize.Band(raw.SizeRangeSF)
	if u.SizeSF.Empty() {
		u.SizeSF = sizeFromText(lower)
	}
	u.Units = normalize.Band(raw.UnitsRange)
	if u.Units.Empty() {
		u.Units = unitsFromText(lower)
	}
	u.Acres = normalize.Band(raw.Acres)

	if band := raw.PriceCapBand; band != nil {
		u.Budget = rangeOf(band.BudgetMin, band.BudgetMax)
		u.CapRate = rangeOf(band.CapMin, band.CapMax)
		u.PSF = rangeOf(band.PSFMin, band.PSFMax)
		// Per-door pricing has no canonical range slot; carry it as a
		// constraint so it survives into matching and display.
		if band.PerDoorMax != nil {
			u.Constraints = append(u.Constraints, fmt.Sprintf("price per door ≤ $%.0f", *band.PerDoorMax))
		}
	}

	u.BuildYear = normalize.BuildYearBand(raw.BuildYear)
	if raw.Timing != nil && raw.Timing.MonthsToEvent != nil {
		months := *raw.Timing.MonthsToEvent
		u.Timing = &model.Timing{MonthsToEvent: &months}
	}

	if len(raw.Confidence) > 0 {
		u.Confidence = make(map[string]float64, len(raw.Confidence))
		for k, v := range raw.Confidence {
			u.Confidence[k] = v
		}
	}

	u.MissingReasons = missingReasons(u)
	return u
}

// mergeIntent prefers the deterministic text classification over the
// extractor's label: the extractor tends to collapse specific legal intents
// into generic ones (lease surrender into lease, for example). The
// extractor's label is used only when the text classifier found nothing and
// the label is a known intent.
func mergeIntent(extracted string, text string) model.Intent {
	fromText := taxonomy.MapIntentFromText(text)
	if fromText != model.IntentOther {
		return fromText
	}
	if in := model.Intent(extracted); in.Known() {
		return in
	}
	return model.IntentOther
}

func sizeFromText(lower string) *model.Range {
	m := sizeFallbackPattern.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	lo, hi := normalize.ToNumber(m[1]), normalize.ToNumber(m[3])
	if lo == nil || hi == nil {
		return nil
	}
	if m[2] == "k" || (m[2] == "" && m[4] == "k") {
		*lo *= 1_000
	}
	if m[4] == "k" {
		*hi *= 1_000
	}
	return &model.Range{Min: lo, Max: hi}
}

func unitsFromText(lower string) *model.Range {
	m := unitsFallbackPattern.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	return &model.Range{Min: normalize.ToNumber(m[1]), Max: normalize.ToNumber(m[2])}
}

func rangeOf(min, max *float64) *model.Range {
	if min == nil && max == nil {
		return nil
	}
	r := &model.Range{}
	if min != nil {
		v := *min
		r.Min = &v
	}
	if max != nil {
		v := *max
		r.Max = &v
	}
	return r
}

// missingReasons names the high-value fields the parse could not fill, with
// a short reason the UI can show next to the refine prompt.
func missingReasons(u *model.UniversalParsed) map[string]string {
	reasons := map[string]string{}
	if u.Market.Empty() {
		reasons["market"] = "no recognizable city or metro in the text"
	}
	if u.SizeSF.Empty() && u.Units.Empty() && u.Acres.Empty() {
		reasons["size"] = "no square footage, unit count, or acreage found"
	}
	if u.AssetType == nil {
		reasons["asset_type"] = "no asset type mentioned"
	}
	if len(reasons) == 0 {
		return nil
	}
	return reasons
}

// Coverage weights. Role only counts when it resolved to something more
// specific than other; intent likewise.
const (
	weightIntent = 20
	weightAsset  = 15
	weightMarket = 20
	weightSize   = 15
	weightPrice  = 15
	weightTiming = 10
	weightRole   = 5
)

// ComputeCoverage scores how much of the mandate the record captured, 0 to
// 100. Filling a field never lowers the score.
func ComputeCoverage(u *model.UniversalParsed) int {
	if u == nil {
		return 0
	}
	score := 0
	if u.Intent != model.IntentOther {
		score += weightIntent
	}
	if u.AssetType != nil {
		score += weightAsset
	}
	if !u.Market.Empty() {
		score += weightMarket
	}
	if !u.SizeSF.Empty() || !u.Units.Empty() || !u.Acres.Empty() {
		score += weightSize
	}
	if !u.Budget.Empty() || !u.CapRate.Empty() || !u.PSF.Empty() {
		score += weightPrice
	}
	if u.Timing != nil && u.Timing.MonthsToEvent != nil {
		score += weightTiming
	}
	if u.Role != model.RoleOther {
		score += weightRole
	}
	if score > 100 {
		score = 100
	}
	return score
}
