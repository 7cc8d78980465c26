package service

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"dealfinder/internal/model"
)

// Prospect generation is demo-grade but deterministic: the record's
// constraint signature seeds a small LCG, so the same record always yields
// the same cards and a changed constraint yields different ones.

const (
	DefaultProspectCount = 6
	MaxProspectCount     = 24
)

var (
	namePrefixes = []string{
		"Ridgeview", "Lakeside", "Summit", "Gateway", "Crestwood",
		"Pinnacle", "Harbor", "Meridian", "Stonebridge", "Cascade",
		"Ironwood", "Beacon",
	}
	assetSuffixes = map[string][]string{
		"industrial":  {"Logistics Center", "Distribution Hub", "Industrial Park", "Flex Campus"},
		"multifamily": {"Apartments", "Residences", "Flats", "Commons"},
		"office":      {"Office Plaza", "Corporate Center", "Tower"},
		"retail":      {"Shopping Center", "Marketplace", "Plaza"},
		"land":        {"Land Assemblage", "Development Site", "Parcel"},
	}
	genericSuffixes = []string{"Property", "Holdings", "Portfolio Asset"}

	firstNames = []string{"Dana", "Marcus", "Elena", "Robert", "Priya", "James", "Sofia", "Walter", "Grace", "Hector"}
	lastNames  = []string{"Whitfield", "Chen", "Alvarez", "Okafor", "Lindqvist", "Barnes", "Tanaka", "Rossi", "Kaplan", "Moore"}

	fallbackCities = []struct{ city, state string }{
		{"Dallas", "TX"}, {"Atlanta", "GA"}, {"Phoenix", "AZ"}, {"Nashville", "TN"},
	}

	outreachStates = []string{"green", "red", "gray"}
)

// lcg is the linear congruential generator seeded per record.
type lcg struct {
	state uint32
}

func (r *lcg) next() float64 {
	r.state = r.state*1664525 + 1013904223
	return float64(r.state) / float64(math.MaxUint32)
}

func (r *lcg) intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.next() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *lcg) pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[r.intn(len(list))]
}

func (r *lcg) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.next()*(hi-lo)
}

// seedFor hashes the record's constraint signature with FNV-1a. Only fields
// that shape the generated cards participate, so cosmetic record differences
// (confidence scores, missing reasons) do not reshuffle results.
func seedFor(u *model.UniversalParsed) uint32 {
	sig := struct {
		Intent    model.Intent     `json:"intent"`
		AssetType *string          `json:"asset_type"`
		Market    *model.Market    `json:"market"`
		Units     *model.Range     `json:"units"`
		SizeSF    *model.Range     `json:"size_sf"`
		Budget    *model.Range     `json:"budget"`
		BuildYear *model.BuildYear `json:"build_year"`
		Flags     model.Flags      `json:"flags"`
	}{u.Intent, u.AssetType, u.Market, u.Units, u.SizeSF, u.Budget, u.BuildYear, u.Flags}

	payload, _ := json.Marshal(sig)
	h := fnv.New32a()
	h.Write(payload)
	return h.Sum32()
}

// SynthProspects generates count demo cards honoring the record's bands.
// Identical records produce identical cards.
func SynthProspects(u *model.UniversalParsed, count int) []model.Prospect {
	if u == nil {
		u = &model.UniversalParsed{Intent: model.IntentOther}
	}
	if count <= 0 {
		count = DefaultProspectCount
	}
	if count > MaxProspectCount {
		count = MaxProspectCount
	}

	seed := seedFor(u)
	rng := &lcg{state: seed}

	city, state := marketFor(u, rng)
	country := "US"

	prospects := make([]model.Prospect, 0, count)
	for i := 0; i < count; i++ {
		p := model.Prospect{
			ID:      fmt.Sprintf("p-%08x-%02d", seed, i),
			Title:   titleFor(u, rng),
			City:    &city,
			State:   &state,
			Country: &country,
			Badges:  []string{},
		}

		if !u.SizeSF.Empty() {
			p.SizeSF = intWithin(rng, u.SizeSF, 10_000, 200_000)
		}
		if !u.Units.Empty() {
			p.Units = intWithin(rng, u.Units, 10, 300)
		}
		p.BuiltYear = builtYearFor(u, rng)
		p.PriceEstimate = priceFor(u, rng, p.SizeSF)

		if u.Flags.LoanMaturing {
			p.Badges = append(p.Badges, "Loan maturing")
		}
		if u.Flags.OwnerAge65Plus {
			p.Badges = append(p.Badges, "Owner 65+")
		}
		if u.Flags.OffMarket {
			p.Badges = append(p.Badges, "Off-market")
		}

		p.MatchReason = matchReason(u, city)
		p.Contact = contactFor(rng)
		p.Outreach = model.Outreach{
			Email: rng.pick(outreachStates),
			SMS:   rng.pick(outreachStates),
			Call:  rng.pick(outreachStates),
			VM:    rng.pick(outreachStates),
		}

		prospects = append(prospects, p)
	}
	return prospects
}

func marketFor(u *model.UniversalParsed, rng *lcg) (city, state string) {
	if !u.Market.Empty() && u.Market.City != nil {
		city = *u.Market.City
		if u.Market.State != nil {
			state = *u.Market.State
		}
		return city, state
	}
	fb := fallbackCities[rng.intn(len(fallbackCities))]
	return fb.city, fb.state
}

func titleFor(u *model.UniversalParsed, rng *lcg) string {
	prefix := rng.pick(namePrefixes)
	suffixes := genericSuffixes
	if u.AssetType != nil {
		if s, ok := assetSuffixes[*u.AssetType]; ok {
			suffixes = s
		}
	}
	return prefix + " " + rng.pick(suffixes)
}

// intWithin draws a value inside the record's band, falling back to the
// given defaults for an open-ended bound.
func intWithin(rng *lcg, band *model.Range, defLo, defHi float64) *int {
	lo, hi := defLo, defHi
	if band.Min != nil {
		lo = *band.Min
	}
	if band.Max != nil {
		hi = *band.Max
	}
	if band.Min != nil && band.Max == nil {
		hi = lo * 2
	}
	if band.Max != nil && band.Min == nil {
		lo = hi / 2
	}
	v := int(math.Round(rng.between(lo, hi)))
	return &v
}

func builtYearFor(u *model.UniversalParsed, rng *lcg) *int {
	lo, hi := 1975.0, 2020.0
	if !u.BuildYear.Empty() {
		if u.BuildYear.After != nil {
			lo = float64(*u.BuildYear.After)
		}
		if u.BuildYear.Before != nil {
			hi = float64(*u.BuildYear.Before)
		}
		if hi < lo {
			hi = lo
		}
	}
	y := int(math.Round(rng.between(lo, hi)))
	return &y
}

func priceFor(u *model.UniversalParsed, rng *lcg, sizeSF *int) *string {
	if !u.Budget.Empty() {
		lo, hi := 1_000_000.0, 20_000_000.0
		if u.Budget.Min != nil {
			lo = *u.Budget.Min
		}
		if u.Budget.Max != nil {
			hi = *u.Budget.Max
		}
		if u.Budget.Min == nil {
			lo = hi * 0.6
		}
		if u.Budget.Max == nil {
			hi = lo * 1.5
		}
		return formatPrice(rng.between(lo, hi))
	}
	if !u.PSF.Empty() && sizeSF != nil {
		lo, hi := 80.0, 250.0
		if u.PSF.Min != nil {
			lo = *u.PSF.Min
		}
		if u.PSF.Max != nil {
			hi = *u.PSF.Max
		}
		return formatPrice(rng.between(lo, hi) * float64(*sizeSF))
	}
	return nil
}

func formatPrice(v float64) *string {
	var s string
	switch {
	case v >= 1_000_000:
		s = fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		s = fmt.Sprintf("$%.0fK", v/1_000)
	default:
		s = fmt.Sprintf("$%.0f", v)
	}
	return &s
}

func matchReason(u *model.UniversalParsed, city string) string {
	parts := []string{}
	if u.AssetType != nil {
		parts = append(parts, *u.AssetType)
	}
	parts = append(parts, "in "+city)
	if !u.SizeSF.Empty() {
		parts = append(parts, "within your size range")
	} else if !u.Units.Empty() {
		parts = append(parts, "within your unit range")
	}
	if u.Flags.LoanMaturing {
		parts = append(parts, "with debt maturing soon")
	}
	return "Matches " + strings.Join(parts, " ")
}

func contactFor(rng *lcg) model.Contact {
	first := rng.pick(firstNames)
	last := rng.pick(lastNames)
	email := strings.ToLower(first) + "." + strings.ToLower(last) + "@example.com"
	phone := fmt.Sprintf("(%d) %03d-%04d", 200+rng.intn(700), rng.intn(1000), rng.intn(10000))
	return model.Contact{
		Name:  first + " " + last,
		Email: email,
		Phone: phone,
	}
}
