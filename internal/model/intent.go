package model

// Intent is the transaction category extracted from a mandate. The set is
// closed: classification always resolves to one of these values, with
// IntentOther as the terminal fallback.
type Intent string

const (
	// Transactions / ownership
	IntentAcquisition       Intent = "acquisition"
	IntentDisposition       Intent = "disposition"
	IntentSaleLeaseback     Intent = "sale_leaseback"
	IntentFeeSimpleTransfer Intent = "fee_simple_transfer"
	IntentGroundLease       Intent = "ground_lease"

	// Leasing
	IntentLeaseAgreement           Intent = "lease_agreement"
	IntentLeaseRenewal             Intent = "lease_renewal"
	IntentLeaseTermination         Intent = "lease_termination"
	IntentSublease                 Intent = "sublease"
	IntentLeaseSurrender           Intent = "lease_surrender"
	IntentTIWorkLetter             Intent = "ti_work_letter"
	IntentLeaseStructuringGrossNet Intent = "lease_structuring_gross_net"
	IntentPercentageRent           Intent = "percentage_rent"
	IntentRentEscalation           Intent = "rent_escalation"
	IntentSecurityDepositEscrow    Intent = "security_deposit_escrow"
	IntentManagementContract       Intent = "management_contract"
	IntentServiceContract          Intent = "service_contract"
	IntentCAMReconciliation        Intent = "cam_reconciliation"

	// Debt / equity
	IntentMortgageOrigination       Intent = "mortgage_origination"
	IntentRefinance                 Intent = "refinance"
	IntentCashOutRefinance          Intent = "cash_out_refinance"
	IntentMezzLoan                  Intent = "mezz_loan"
	IntentPreferredEquity           Intent = "preferred_equity"
	IntentPreferredEquityConversion Intent = "preferred_equity_conversion"
	IntentEquityRaise               Intent = "equity_raise"
	IntentSyndication               Intent = "syndication"
	IntentJointVenture              Intent = "joint_venture"
	IntentSellerFinancing           Intent = "seller_financing"
	IntentInstallmentSale           Intent = "installment_sale"
	IntentAssumption                Intent = "assumption"
	IntentRecapitalization          Intent = "recapitalization"

	// Construction / development
	IntentConstructionContract         Intent = "construction_contract"
	IntentSubcontract                  Intent = "subcontract"
	IntentChangeOrder                  Intent = "change_order"
	IntentDesignContract               Intent = "design_contract"
	IntentConstructionDraw             Intent = "construction_draw"
	IntentPerformanceBond              Intent = "performance_bond"
	IntentPaymentBond                  Intent = "payment_bond"
	IntentDisbursementRequisition      Intent = "disbursement_requisition"
	IntentConstructionLoanClosing      Intent = "construction_loan_closing"
	IntentCostReimbursementAgreement   Intent = "cost_reimbursement_agreement"
	IntentSiteImprovementAgreement     Intent = "site_improvement_agreement"
	IntentOffsiteImprovementsAgreement Intent = "offsite_improvements_agreement"
	IntentUtilityEasement              Intent = "utility_easement"
	IntentEasementDedication           Intent = "easement_dedication"
	IntentGradingContract              Intent = "grading_contract"
	IntentSiteworkSubcontract          Intent = "sitework_subcontract"
	IntentPunchlistContract            Intent = "punchlist_contract"

	// Tax / exchange / structuring
	Intent1031Exchange          Intent = "1031_exchange"
	IntentTaxCreditEquity       Intent = "tax_credit_equity"
	IntentContributionAgreement Intent = "contribution_agreement"
	IntentOptionAgreement       Intent = "option_agreement"
	IntentROFR                  Intent = "rofr"
	IntentJointDevelopment      Intent = "joint_development"
	IntentSecuritization        Intent = "securitization"
	IntentReconveyance          Intent = "reconveyance"
	IntentExitDisposition       Intent = "exit_disposition"

	// Default / restructuring
	IntentEventOfDefault      Intent = "event_of_default"
	IntentWorkoutModification Intent = "workout_modification"
	IntentDeedInLieu          Intent = "deed_in_lieu"
	IntentForeclosure         Intent = "foreclosure"
	IntentShortSale           Intent = "short_sale"
	IntentBankruptcy          Intent = "bankruptcy"
	IntentReceivership        Intent = "receivership"
	IntentDiscountedPayoff    Intent = "discounted_payoff"
	IntentDebtRestructuring   Intent = "debt_restructuring"
	IntentLiquidation         Intent = "liquidation"

	// Fallback
	IntentOther Intent = "other"
)

var knownIntents = func() map[Intent]bool {
	all := []Intent{
		IntentAcquisition, IntentDisposition, IntentSaleLeaseback, IntentFeeSimpleTransfer, IntentGroundLease,
		IntentLeaseAgreement, IntentLeaseRenewal, IntentLeaseTermination, IntentSublease, IntentLeaseSurrender,
		IntentTIWorkLetter, IntentLeaseStructuringGrossNet, IntentPercentageRent, IntentRentEscalation,
		IntentSecurityDepositEscrow, IntentManagementContract, IntentServiceContract, IntentCAMReconciliation,
		IntentMortgageOrigination, IntentRefinance, IntentCashOutRefinance, IntentMezzLoan,
		IntentPreferredEquity, IntentPreferredEquityConversion, IntentEquityRaise, IntentSyndication,
		IntentJointVenture, IntentSellerFinancing, IntentInstallmentSale, IntentAssumption, IntentRecapitalization,
		IntentConstructionContract, IntentSubcontract, IntentChangeOrder, IntentDesignContract,
		IntentConstructionDraw, IntentPerformanceBond, IntentPaymentBond, IntentDisbursementRequisition,
		IntentConstructionLoanClosing, IntentCostReimbursementAgreement, IntentSiteImprovementAgreement,
		IntentOffsiteImprovementsAgreement, IntentUtilityEasement, IntentEasementDedication,
		IntentGradingContract, IntentSiteworkSubcontract, IntentPunchlistContract,
		Intent1031Exchange, IntentTaxCreditEquity, IntentContributionAgreement, IntentOptionAgreement,
		IntentROFR, IntentJointDevelopment, IntentSecuritization, IntentReconveyance, IntentExitDisposition,
		IntentEventOfDefault, IntentWorkoutModification, IntentDeedInLieu, IntentForeclosure, IntentShortSale,
		IntentBankruptcy, IntentReceivership, IntentDiscountedPayoff, IntentDebtRestructuring, IntentLiquidation,
		IntentOther,
	}
	m := make(map[Intent]bool, len(all))
	for _, in := range all {
		m[in] = true
	}
	return m
}()

// Known reports whether i is a member of the closed intent set.
func (i Intent) Known() bool {
	return knownIntents[i]
}

// Role is the transactional role inferred from the mandate text. Derived,
// never authoritative.
type Role string

const (
	RoleBuySide  Role = "buy_side"
	RoleSellSide Role = "sell_side"
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleSponsor  Role = "sponsor"
	RoleInvestor Role = "investor"
	RoleOther    Role = "other"
)
