package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dealfinder/internal/extractor"
	"dealfinder/internal/model"
)

func fp(f float64) *float64 { return &f }
func sp(s string) *string   { return &s }
func ip(i int) *int         { return &i }

func TestNormalizeUniversalDeterministic(t *testing.T) {
	raw := &model.RawParsed{
		Intent:      "acquisition",
		AssetType:   sp("Warehouse"),
		SizeRangeSF: &model.RawRange{Min: "60k", Max: "120k"},
		PriceCapBand: &model.PriceCapBand{
			BudgetMax: fp(15_000_000),
		},
	}
	text := "buy a warehouse in atlanta"

	first := NormalizeUniversal(raw, text)
	second := NormalizeUniversal(raw, text)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated normalization differs (-first +second):\n%s", diff)
	}
}

func TestNormalizeUniversalAtlantaMandate(t *testing.T) {
	text := "Looking to buy a 60k-120k SF warehouse in Atlanta, budget under $15M, loan maturing in 6 months, off-market preferred"
	raw := extractor.NewLocal().Parse(text)
	u := NormalizeUniversal(raw, text)

	if u.Intent != model.IntentAcquisition {
		t.Errorf("Intent = %q, want %q", u.Intent, model.IntentAcquisition)
	}
	if u.Role != model.RoleBuySide {
		t.Errorf("Role = %q, want %q", u.Role, model.RoleBuySide)
	}
	if u.AssetType == nil || *u.AssetType != "industrial" {
		t.Errorf("AssetType = %v, want industrial", u.AssetType)
	}
	if u.Market == nil || u.Market.City == nil || *u.Market.City != "Atlanta" {
		t.Errorf("Market = %+v, want Atlanta", u.Market)
	}
	if diff := cmp.Diff(&model.Range{Min: fp(60000), Max: fp(120000)}, u.SizeSF); diff != "" {
		t.Errorf("SizeSF mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&model.Range{Max: fp(15_000_000)}, u.Budget); diff != "" {
		t.Errorf("Budget mismatch (-want +got):\n%s", diff)
	}
	if u.Timing == nil || u.Timing.MonthsToEvent == nil || *u.Timing.MonthsToEvent != 6 {
		t.Errorf("Timing = %+v, want 6 months", u.Timing)
	}
	if !u.Flags.LoanMaturing || !u.Flags.OffMarket {
		t.Errorf("Flags = %+v, want loan_maturing and off_market", u.Flags)
	}

	if cov := ComputeCoverage(u); cov < 80 {
		t.Errorf("ComputeCoverage = %d, want >= 80", cov)
	}
}

func TestNormalizeUniversalIntentPreference(t *testing.T) {
	tests := []struct {
		name      string
		extracted string
		text      string
		want      model.Intent
	}{
		{
			name:      "text beats generic extractor label",
			extracted: "lease_agreement",
			text:      "negotiating a lease surrender for our tenant",
			want:      model.IntentLeaseSurrender,
		},
		{
			name:      "known extractor label fills silent text",
			extracted: "preferred_equity",
			text:      "looking for capital partners",
			want:      model.IntentPreferredEquity,
		},
		{
			name:      "unknown extractor label falls to other",
			extracted: "world_domination",
			text:      "something unclassifiable",
			want:      model.IntentOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NormalizeUniversal(&model.RawParsed{Intent: tt.extracted}, tt.text)
			if u.Intent != tt.want {
				t.Errorf("Intent = %q, want %q", u.Intent, tt.want)
			}
		})
	}
}

func TestNormalizeUniversalFallbacks(t *testing.T) {
	// Empty extractor output: everything must come from the text.
	u := NormalizeUniversal(&model.RawParsed{}, "sell our 80-120 units apartment portfolio in Boston")

	if u.Market == nil || u.Market.City == nil || *u.Market.City != "Boston" {
		t.Errorf("Market = %+v, want Boston", u.Market)
	}
	if diff := cmp.Diff(&model.Range{Min: fp(80), Max: fp(120)}, u.Units); diff != "" {
		t.Errorf("Units mismatch (-want +got):\n%s", diff)
	}
	if u.AssetType == nil || *u.AssetType != "multifamily" {
		t.Errorf("AssetType = %v, want multifamily", u.AssetType)
	}
}

func TestNormalizeUniversalPerDoorConstraint(t *testing.T) {
	raw := &model.RawParsed{
		PriceCapBand: &model.PriceCapBand{PerDoorMax: fp(180_000)},
	}
	u := NormalizeUniversal(raw, "multifamily under $180k per door")
	if len(u.Constraints) != 1 {
		t.Fatalf("Constraints = %v, want one per-door entry", u.Constraints)
	}
	if u.Constraints[0] != "price per door ≤ $180000" {
		t.Errorf("Constraints[0] = %q", u.Constraints[0])
	}
}

func TestNormalizeUniversalMissingReasons(t *testing.T) {
	u := NormalizeUniversal(&model.RawParsed{}, "find me something interesting")
	for _, key := range []string{"market", "size", "asset_type"} {
		if _, ok := u.MissingReasons[key]; !ok {
			t.Errorf("MissingReasons missing %q: %v", key, u.MissingReasons)
		}
	}
}

func TestComputeCoverageMonotonic(t *testing.T) {
	u := &model.UniversalParsed{Intent: model.IntentOther, Role: model.RoleOther}
	prev := ComputeCoverage(u)
	if prev != 0 {
		t.Fatalf("empty record coverage = %d, want 0", prev)
	}

	steps := []func(){
		func() { u.Intent = model.IntentAcquisition },
		func() { u.AssetType = sp("industrial") },
		func() { u.Market = &model.Market{City: sp("Atlanta")} },
		func() { u.SizeSF = &model.Range{Min: fp(60000), Max: fp(120000)} },
		func() { u.Budget = &model.Range{Max: fp(15_000_000)} },
		func() { u.Timing = &model.Timing{MonthsToEvent: ip(6)} },
		func() { u.Role = model.RoleBuySide },
	}
	for i, step := range steps {
		step()
		cov := ComputeCoverage(u)
		if cov < prev {
			t.Fatalf("step %d: coverage dropped from %d to %d", i, prev, cov)
		}
		prev = cov
	}
	if prev != 100 {
		t.Errorf("fully populated coverage = %d, want 100", prev)
	}
}
