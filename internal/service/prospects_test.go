package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dealfinder/internal/model"
)

func atlantaRecord() *model.UniversalParsed {
	return &model.UniversalParsed{
		Intent:    model.IntentAcquisition,
		Role:      model.RoleBuySide,
		AssetType: sp("industrial"),
		Market:    &model.Market{City: sp("Atlanta"), State: sp("GA"), Metro: sp("Atlanta")},
		SizeSF:    &model.Range{Min: fp(60000), Max: fp(120000)},
		Budget:    &model.Range{Max: fp(15_000_000)},
		Flags:     model.Flags{LoanMaturing: true, OffMarket: true},
	}
}

func TestSynthProspectsDeterministic(t *testing.T) {
	first := SynthProspects(atlantaRecord(), 6)
	second := SynthProspects(atlantaRecord(), 6)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same record produced different prospects (-first +second):\n%s", diff)
	}
}

func TestSynthProspectsSeedSensitivity(t *testing.T) {
	base := SynthProspects(atlantaRecord(), 6)

	changed := atlantaRecord()
	changed.Budget = &model.Range{Max: fp(25_000_000)}
	other := SynthProspects(changed, 6)

	if base[0].ID == other[0].ID {
		t.Error("different constraints produced identical prospect IDs")
	}
}

func TestSynthProspectsHonorBands(t *testing.T) {
	prospects := SynthProspects(atlantaRecord(), 10)
	if len(prospects) != 10 {
		t.Fatalf("len = %d, want 10", len(prospects))
	}
	for i, p := range prospects {
		if p.City == nil || *p.City != "Atlanta" {
			t.Errorf("prospect %d city = %v, want Atlanta", i, p.City)
		}
		if p.SizeSF == nil || *p.SizeSF < 60000 || *p.SizeSF > 120000 {
			t.Errorf("prospect %d size = %v, want within 60000-120000", i, p.SizeSF)
		}
		if p.PriceEstimate == nil {
			t.Errorf("prospect %d has no price estimate", i)
		}
		wantBadges := map[string]bool{"Loan maturing": false, "Off-market": false}
		for _, b := range p.Badges {
			wantBadges[b] = true
		}
		for badge, seen := range wantBadges {
			if !seen {
				t.Errorf("prospect %d missing badge %q", i, badge)
			}
		}
	}
}

func TestSynthProspectsCountClamping(t *testing.T) {
	if got := len(SynthProspects(atlantaRecord(), 0)); got != DefaultProspectCount {
		t.Errorf("count 0 yielded %d prospects, want %d", got, DefaultProspectCount)
	}
	if got := len(SynthProspects(atlantaRecord(), 500)); got != MaxProspectCount {
		t.Errorf("count 500 yielded %d prospects, want %d", got, MaxProspectCount)
	}
}

func TestSynthProspectsEmptyRecord(t *testing.T) {
	prospects := SynthProspects(&model.UniversalParsed{Intent: model.IntentOther}, 3)
	if len(prospects) != 3 {
		t.Fatalf("len = %d, want 3", len(prospects))
	}
	for i, p := range prospects {
		if p.City == nil || *p.City == "" {
			t.Errorf("prospect %d has no city", i)
		}
		if p.Title == "" {
			t.Errorf("prospect %d has no title", i)
		}
	}
}
