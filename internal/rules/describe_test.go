package rules

import (
	"testing"

	"github.com/planops/sopdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Idempotent(t *testing.T) {
	alert := alertFor(domain.RuleSupplyShortfall, domain.AlertCritical,
		"Supply less than Total Demand", "16", "FG-90")

	first := Describe(alert, "LCO Cathode Sheet")
	second := Describe(alert, "LCO Cathode Sheet")
	assert.Equal(t, first, second)
}

func TestDescribe_SpecificRules(t *testing.T) {
	tests := []struct {
		rule      domain.RuleKey
		wantTitle string
	}{
		{domain.RuleSupplyShortfall, "Increase Supply to Meet Demand"},
		{domain.RuleInventoryShortage, "Address Inventory Shortage"},
		{domain.RuleCapacityExceeded, "Resolve Capacity Constraint"},
		{domain.RuleBelowSafetyStock, "Restore Safety Stock Levels"},
		{domain.RuleSalesAboveForecast, "Adjust Forecast and Production"},
		{domain.RuleExcessOrderQty, "Optimize Order Quantities"},
	}
	for _, tc := range tests {
		t.Run(string(tc.rule), func(t *testing.T) {
			alert := alertFor(tc.rule, domain.AlertCritical, "", "15", "FG-90")
			rec := Describe(alert, "LCO Cathode Sheet")
			assert.Equal(t, tc.wantTitle, rec.Title)
			require.Len(t, rec.Steps, 3)
			assert.NotEmpty(t, rec.Impact)
			assert.Contains(t, rec.Steps[0], "LCO Cathode Sheet")
		})
	}
}

func TestDescribe_GenericFallback(t *testing.T) {
	alert := alertFor(domain.RuleNone, domain.AlertSupporting,
		"Planned purchase order past due", "17", "RM-10")

	rec := Describe(alert, "Lithium Carbonate")
	assert.Equal(t, "General Recommendation", rec.Title)
	require.Len(t, rec.Steps, 3)
	assert.Contains(t, rec.Steps[0], "Lithium Carbonate")
	assert.Contains(t, rec.Impact, "standard planning procedures")
}
