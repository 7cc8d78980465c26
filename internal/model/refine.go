package model

// RefineKey names the missing-field category a refine item targets.
type RefineKey string

const (
	RefineIntent    RefineKey = "intent"
	RefineMarket    RefineKey = "market"
	RefineAssetType RefineKey = "asset_type"
	RefineUnits     RefineKey = "units"
	RefineSizeSF    RefineKey = "size_sf"
	RefineBudget    RefineKey = "budget"
)

// RefineItem is one user-facing prompt for a missing required field, with
// example phrasings the user could append to their mandate.
type RefineItem struct {
	Key      RefineKey `json:"key"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Examples []string  `json:"examples"`
}

// RefinePlan is the ordered list of missing-field prompts derived from a
// canonical record. Recomputed fresh on every parse.
type RefinePlan struct {
	Items []RefineItem `json:"items"`
}
