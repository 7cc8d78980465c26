package taxonomy

import (
	"testing"

	"dealfinder/internal/model"
)

func TestMapIntentFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{
			name: "surrender beats generic lease",
			text: "I need a lease surrender agreement",
			want: model.IntentLeaseSurrender,
		},
		{
			name: "sale-leaseback beats lease and sell",
			text: "Sale-leaseback of our distribution center",
			want: model.IntentSaleLeaseback,
		},
		{
			name: "ground lease beats lease",
			text: "Looking for a ground lease opportunity",
			want: model.IntentGroundLease,
		},
		{
			name: "1031 exchange",
			text: "1031 into industrial in Dallas",
			want: model.Intent1031Exchange,
		},
		{
			name: "refi shorthand",
			text: "Need a refi on a stabilized asset",
			want: model.IntentRefinance,
		},
		{
			name: "mezz",
			text: "seeking mezz financing",
			want: model.IntentMezzLoan,
		},
		{
			name: "generic lease",
			text: "lease for 10,000 SF office",
			want: model.IntentLeaseAgreement,
		},
		{
			name: "ti beats generic lease",
			text: "negotiating ti allowance in the lease",
			want: model.IntentTIWorkLetter,
		},
		{
			name: "ti beats refinance",
			text: "need ti for the refinance",
			want: model.IntentTIWorkLetter,
		},
		{
			name: "ti needs a word boundary",
			text: "option to purchase with antique fixtures",
			want: model.IntentOptionAgreement,
		},
		{
			name: "acquisition from buy",
			text: "Find industrial warehouses to buy in Atlanta",
			want: model.IntentAcquisition,
		},
		{
			name: "disposition from sell",
			text: "sell our retail portfolio",
			want: model.IntentDisposition,
		},
		{
			name: "foreclosure",
			text: "foreclosure workout candidates",
			want: model.IntentForeclosure,
		},
		{
			name: "rofr",
			text: "tenant holds a right of first refusal",
			want: model.IntentROFR,
		},
		{
			name: "unrecognized falls through to other",
			text: "hello world",
			want: model.IntentOther,
		},
		{
			name: "empty string",
			text: "",
			want: model.IntentOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapIntentFromText(tt.text)
			if got != tt.want {
				t.Errorf("MapIntentFromText(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if !got.Known() {
				t.Errorf("MapIntentFromText(%q) returned %q, not in the closed set", tt.text, got)
			}
		})
	}
}

// Classification must be total: any string resolves to a known intent.
func TestMapIntentFromText_Total(t *testing.T) {
	inputs := []string{"", " ", "????", "1234567890", "ACQUIRE", "\n\t", "ti"}
	for _, in := range inputs {
		if got := MapIntentFromText(in); !got.Known() {
			t.Errorf("MapIntentFromText(%q) = %q, not a known intent", in, got)
		}
	}
}

func TestInferRole(t *testing.T) {
	tests := []struct {
		text   string
		intent model.Intent
		want   model.Role
	}{
		{"loan maturing, need to refinance", model.IntentRefinance, model.RoleBorrower},
		{"lender seeking workout candidates", model.IntentWorkoutModification, model.RoleLender},
		{"looking to acquire warehouses", model.IntentAcquisition, model.RoleBuySide},
		{"want to sell our office park", model.IntentDisposition, model.RoleSellSide},
		{"tenant needs more space", model.IntentLeaseAgreement, model.RoleTenant},
		{"landlord offering sublease", model.IntentSublease, model.RoleLandlord},
		{"need a lease surrender", model.IntentLeaseSurrender, model.RoleTenant},
		{"nothing relevant here", model.IntentOther, model.RoleOther},
	}
	for _, tt := range tests {
		if got := InferRole(tt.intent, tt.text); got != tt.want {
			t.Errorf("InferRole(%q, %q) = %q, want %q", tt.intent, tt.text, got, tt.want)
		}
	}
}
