package service

import (
	"dealfinder/internal/model"
)

// Refine prompt examples shown to the user verbatim. Kept short and concrete
// so a one-line answer fills the gap.
var (
	intentExamples = []string{
		"buy", "sell", "refinance", "sale-leaseback", "1031 exchange",
	}
	marketExamples = []string{
		"Atlanta", "Dallas", "Phoenix", "the Boston area",
	}
	assetExamples = []string{
		"industrial", "multifamily", "office", "retail", "land",
	}
	unitsExamples = []string{
		"50-150 units", "100+ doors",
	}
	sizeExamples = []string{
		"60k-120k SF", "under 40,000 SF",
	}
	budgetExamples = []string{
		"under $15M", "$5M-$10M", "cap rate 6%+",
	}
)

// BuildRefinePlan lists the questions that would most improve the record,
// in a fixed order: intent, market, asset type, size or units, budget. A
// fully specified record yields an empty plan.
func BuildRefinePlan(u *model.UniversalParsed) *model.RefinePlan {
	plan := &model.RefinePlan{Items: []model.RefineItem{}}
	if u == nil {
		u = &model.UniversalParsed{Intent: model.IntentOther}
	}

	if u.Intent == model.IntentOther {
		plan.Items = append(plan.Items, model.RefineItem{
			Key:      model.RefineIntent,
			Title:    "What do you want to do?",
			Message:  "Tell us whether this is a buy, sell, lease, or financing mandate.",
			Examples: intentExamples,
		})
	}

	if u.Market.Empty() {
		plan.Items = append(plan.Items, model.RefineItem{
			Key:      model.RefineMarket,
			Title:    "Which market?",
			Message:  "Name a city or metro area to search in.",
			Examples: marketExamples,
		})
	}

	if u.AssetType == nil {
		plan.Items = append(plan.Items, model.RefineItem{
			Key:      model.RefineAssetType,
			Title:    "What asset type?",
			Message:  "Name the property type you are targeting.",
			Examples: assetExamples,
		})
	}

	if item, ok := sizeItem(u); ok {
		plan.Items = append(plan.Items, item)
	}

	if u.Budget.Empty() && u.CapRate.Empty() && u.PSF.Empty() {
		plan.Items = append(plan.Items, model.RefineItem{
			Key:      model.RefineBudget,
			Title:    "What's the budget?",
			Message:  "Give a price range, a ceiling, or a cap rate target.",
			Examples: budgetExamples,
		})
	}

	return plan
}

// sizeItem picks the natural size question for the asset class. Multifamily
// is sized in units, so a unit count is asked for even when square footage is
// already known; other asset classes are sized in square feet regardless of a
// stray unit count. With no asset type yet, ask for either, and only when no
// size dimension at all was given.
func sizeItem(u *model.UniversalParsed) (model.RefineItem, bool) {
	if u.AssetType == nil {
		if !u.SizeSF.Empty() || !u.Units.Empty() || !u.Acres.Empty() {
			return model.RefineItem{}, false
		}
		return model.RefineItem{
			Key:      model.RefineUnits,
			Title:    "How big?",
			Message:  "Give a size range in square feet, or a unit count.",
			Examples: append(append([]string{}, unitsExamples...), sizeExamples...),
		}, true
	}

	if *u.AssetType == "multifamily" {
		if !u.Units.Empty() {
			return model.RefineItem{}, false
		}
		return model.RefineItem{
			Key:      model.RefineUnits,
			Title:    "How many units?",
			Message:  "Give a unit count range.",
			Examples: unitsExamples,
		}, true
	}

	if !u.SizeSF.Empty() || !u.Acres.Empty() {
		return model.RefineItem{}, false
	}
	return model.RefineItem{
		Key:      model.RefineSizeSF,
		Title:    "How big?",
		Message:  "Give a size range in square feet.",
		Examples: sizeExamples,
	}, true
}
