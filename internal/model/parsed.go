package model

// Market identifies a target geography. Fields are independently nullable;
// at most one of city/metro is authoritative at a time.
type Market struct {
	City    *string `json:"city"`
	State   *string `json:"state"`
	Metro   *string `json:"metro"`
	Country *string `json:"country,omitempty"`
}

// Empty reports whether no market component is set.
func (m *Market) Empty() bool {
	return m == nil || (m.City == nil && m.State == nil && m.Metro == nil && m.Country == nil)
}

// Range is a numeric band. Either bound alone is valid and means
// "no lower/upper limit".
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Empty reports whether neither bound is set.
func (r *Range) Empty() bool {
	return r == nil || (r.Min == nil && r.Max == nil)
}

// RawRange is a range as extractors emit it: endpoints may arrive as numbers
// or as strings like "20k". The value normalizer coerces it into a Range.
type RawRange struct {
	Min any `json:"min"`
	Max any `json:"max"`
}

// RawBuildYear is the extractor-side construction band; endpoints may be
// strings.
type RawBuildYear struct {
	After  any `json:"after"`
	Before any `json:"before"`
}

// BuildYear is a construction-year band.
type BuildYear struct {
	After  *int `json:"after"`
	Before *int `json:"before"`
}

// Empty reports whether neither bound is set.
func (b *BuildYear) Empty() bool {
	return b == nil || (b.After == nil && b.Before == nil)
}

// Timing carries event-driven urgency, e.g. months to loan maturity.
type Timing struct {
	MonthsToEvent *int `json:"months_to_event"`
}

// Flags are boolean mandate qualifiers, each driven by an independent signal.
type Flags struct {
	LoanMaturing   bool `json:"loan_maturing"`
	OwnerAge65Plus bool `json:"owner_age_65_plus"`
	OffMarket      bool `json:"off_market"`
}

// PriceCapBand is the extractor-side price envelope. The unifier splits it
// into the canonical budget / cap_rate / psf ranges.
type PriceCapBand struct {
	PSFMin     *float64 `json:"psf_min"`
	PSFMax     *float64 `json:"psf_max"`
	CapMin     *float64 `json:"cap_min"`
	CapMax     *float64 `json:"cap_max"`
	PerDoorMax *float64 `json:"per_door_max"`
	BudgetMin  *float64 `json:"budget_min"`
	BudgetMax  *float64 `json:"budget_max"`
}

// RawParsed is the best-effort structured guess an extractor (remote or
// local) produces from mandate text. Fields may be partially populated or
// absent; the unifier owns turning this into a UniversalParsed.
type RawParsed struct {
	Intent            string             `json:"intent,omitempty"`
	AssetType         *string            `json:"asset_type,omitempty"`
	Market            *Market            `json:"market,omitempty"`
	SizeRangeSF       *RawRange          `json:"size_range_sf,omitempty"`
	UnitsRange        *RawRange          `json:"units_range,omitempty"`
	Acres             *RawRange          `json:"acres,omitempty"`
	PriceCapBand      *PriceCapBand      `json:"price_cap_band,omitempty"`
	BuildYear         *RawBuildYear      `json:"build_year,omitempty"`
	OwnerAgeMin       *int               `json:"owner_age_min,omitempty"`
	OwnerAgeMax       *int               `json:"owner_age_max,omitempty"`
	OwnershipYearsMin *int               `json:"ownership_years_min,omitempty"`
	Timing            *Timing            `json:"timing,omitempty"`
	Flags             Flags              `json:"flags"`
	Constraints       []string           `json:"constraints,omitempty"`
	RedFlags          []string           `json:"red_flags,omitempty"`
	Keywords          []string           `json:"keywords,omitempty"`
	Confidence        map[string]float64 `json:"confidence,omitempty"`
}

// UniversalParsed is the canonical record of one parsed mandate. It is a pure
// value: built once per parse, never mutated afterwards.
type UniversalParsed struct {
	Intent         Intent             `json:"intent"`
	Role           Role               `json:"role"`
	AssetType      *string            `json:"asset_type"`
	Market         *Market            `json:"market"`
	Units          *Range             `json:"units"`
	SizeSF         *Range             `json:"size_sf"`
	Acres          *Range             `json:"acres"`
	Budget         *Range             `json:"budget"`
	CapRate        *Range             `json:"cap_rate"`
	PSF            *Range             `json:"psf"`
	BuildYear      *BuildYear         `json:"build_year"`
	Timing         *Timing            `json:"timing"`
	Flags          Flags              `json:"flags"`
	Constraints    []string           `json:"constraints"`
	RedFlags       []string           `json:"red_flags"`
	Keywords       []string           `json:"keywords"`
	Confidence     map[string]float64 `json:"confidence,omitempty"`
	MissingReasons map[string]string  `json:"missing_reasons,omitempty"`
}
