// Package valuation estimates owner earnings and a discounted-cash-flow
// intrinsic value from normalised line items.
package valuation

import (
	"fmt"
	"math"

	"ValueSentinel/internal/calculator"
	"ValueSentinel/internal/model"
)

// MaintenanceCapexShare is the fraction of capital expenditure treated as
// maintenance spending.
const MaintenanceCapexShare = 0.75

// DefaultAssumptions returns the fixed DCF assumptions.
func DefaultAssumptions() model.Assumptions {
	return model.Assumptions{
		GrowthRate:       0.05,
		DiscountRate:     0.09,
		TerminalMultiple: 12,
		ProjectionYears:  10,
	}
}

// Components are the inputs of an owner earnings figure.
type Components struct {
	NetIncome        float64 `json:"netIncome"`
	Depreciation     float64 `json:"depreciation"`
	MaintenanceCapex float64 `json:"maintenanceCapex"`
}

// OwnerEarningsResult is the outcome of OwnerEarnings.
type OwnerEarningsResult struct {
	OwnerEarnings *float64
	Components    *Components
	Details       []string
}

// OwnerEarnings computes net income + D&A - maintenance capex for the most
// recent period. Any of the three inputs being zero yields no figure.
func OwnerEarnings(items []model.FinancialLineItem) OwnerEarningsResult {
	if len(items) == 0 {
		return OwnerEarningsResult{Details: []string{
			"Insufficient financial data to calculate owner earnings, a key metric in Buffett's valuation methodology",
		}}
	}

	latest := items[0]
	netIncome := latest.NetIncome
	depreciation := latest.DepreciationAndAmortization
	capex := latest.CapitalExpenditure
	if netIncome == 0 || depreciation == 0 || capex == 0 {
		return OwnerEarningsResult{Details: []string{
			"Missing essential components (net income, depreciation, or capital expenditures) required for an accurate owner earnings calculation",
		}}
	}

	maintenance := capex * MaintenanceCapexShare
	oe := netIncome + depreciation - maintenance
	return OwnerEarningsResult{
		OwnerEarnings: &oe,
		Components: &Components{
			NetIncome:        netIncome,
			Depreciation:     depreciation,
			MaintenanceCapex: maintenance,
		},
		Details: []string{
			"Owner earnings successfully calculated using Buffett's preferred formula: Net Income + Depreciation - Estimated Maintenance Capital Expenditures",
		},
	}
}

// Valuer computes intrinsic values under a fixed set of assumptions.
type Valuer struct {
	assumptions model.Assumptions
}

// NewValuer returns a Valuer bound to a.
func NewValuer(a model.Assumptions) (*Valuer, error) {
	if a.ProjectionYears <= 0 {
		return nil, fmt.Errorf("projection years must be positive, got %d", a.ProjectionYears)
	}
	if a.DiscountRate <= 0 {
		return nil, fmt.Errorf("discount rate must be positive, got %v", a.DiscountRate)
	}
	return &Valuer{assumptions: a}, nil
}

// Assumptions returns a copy of the bound assumptions.
func (v *Valuer) Assumptions() model.Assumptions {
	return v.assumptions
}

// IntrinsicValue projects owner earnings over the horizon, discounts them,
// and adds a discounted terminal value. Shares outstanding must be present
// even though the value is not expressed per share.
func (v *Valuer) IntrinsicValue(items []model.FinancialLineItem) model.IntrinsicValueAnalysis {
	if len(items) == 0 {
		return model.IntrinsicValueAnalysis{Details: []string{
			"Insufficient financial data to perform intrinsic value calculation",
		}}
	}

	earnings := OwnerEarnings(items)
	if earnings.OwnerEarnings == nil || *earnings.OwnerEarnings == 0 {
		return model.IntrinsicValueAnalysis{Details: earnings.Details}
	}
	oe := *earnings.OwnerEarnings

	if items[0].OutstandingShares == 0 {
		return model.IntrinsicValueAnalysis{Details: []string{
			"Missing shares outstanding data required for per-share valuation",
		}}
	}

	// Assumptions were checked by NewValuer; an error here is a broken invariant.
	a := v.assumptions
	projected, err := calculator.DiscountedGrowthSum(oe, a.GrowthRate, a.DiscountRate, a.ProjectionYears)
	if err != nil {
		panic(fmt.Sprintf("valuation: %v", err))
	}
	terminal, err := calculator.TerminalValue(oe, a.GrowthRate, a.DiscountRate, a.TerminalMultiple, a.ProjectionYears)
	if err != nil {
		panic(fmt.Sprintf("valuation: %v", err))
	}

	iv := projected + terminal
	return model.IntrinsicValueAnalysis{
		IntrinsicValue: &iv,
		OwnerEarnings:  &oe,
		Assumptions:    &a,
		Details: []string{
			fmt.Sprintf("Intrinsic value calculated using a conservative discounted cash flow (DCF) model with Buffett's owner earnings approach, applying a %s growth rate and %s discount rate over a %d-year projection period",
				percent(a.GrowthRate), percent(a.DiscountRate), a.ProjectionYears),
		},
	}
}

func percent(r float64) string {
	return fmt.Sprintf("%g%%", math.Round(r*10000)/100)
}
