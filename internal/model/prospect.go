package model

// Contact is a synthetic owner/broker contact on a prospect card.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Outreach is the per-channel status mix shown on a card. Values are
// "green", "red", or "gray".
type Outreach struct {
	Email string `json:"email"`
	SMS   string `json:"sms"`
	Call  string `json:"call"`
	VM    string `json:"vm"`
}

// Prospect is one synthetic demo card. Generation is seeded from the parsed
// record, so identical records reproduce identical prospects.
type Prospect struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	Country       *string  `json:"country"`
	SizeSF        *int     `json:"size_sf,omitempty"`
	Units         *int     `json:"units,omitempty"`
	BuiltYear     *int     `json:"built_year,omitempty"`
	PriceEstimate *string  `json:"price_estimate,omitempty"`
	Badges        []string `json:"badges"`
	MatchReason   string   `json:"match_reason"`
	Contact       Contact  `json:"contact"`
	Outreach      Outreach `json:"outreach"`
}
