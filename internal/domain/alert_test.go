package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAlert(t *testing.T) {
	tests := []struct {
		name        string
		alertType   AlertType
		description string
		want        RuleKey
	}{
		{"supply shortfall", AlertCritical, "Supply less than Total Demand (shortfall 180 units)", RuleSupplyShortfall},
		{"inventory shortage", AlertCritical, "Inventory not available to cover order book", RuleInventoryShortage},
		{"capacity", AlertCapacity, "Production orders Exceed Allocated Capacity at calcination", RuleCapacityExceeded},
		{"safety stock", AlertSupporting, "Projected inventory Below Safety Stock threshold", RuleBelowSafetyStock},
		{"forecast", AlertSupporting, "Sales Orders Exceed Forecast by 9%", RuleSalesAboveForecast},
		{"moq", AlertSupporting, "Planned order Exceeds Minimum Order Quantity", RuleExcessOrderQty},
		{"cause under wrong type", AlertSupporting, "Supply less than Total Demand", RuleNone},
		{"case sensitive", AlertCritical, "supply less than total demand", RuleNone},
		{"unrecognized", AlertSupporting, "Planned purchase order past due", RuleNone},
		{"empty", AlertCritical, "", RuleNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyAlert(tc.alertType, tc.description))
		})
	}
}

func TestSummarize(t *testing.T) {
	alerts := []Alert{
		{ID: 1, Type: AlertCritical},
		{ID: 2, Type: AlertCapacity},
		{ID: 3, Type: AlertSupporting},
		{ID: 4, Type: AlertCritical},
	}
	s := Summarize(alerts)
	assert.Equal(t, 2, s.Critical)
	assert.Equal(t, 1, s.Capacity)
	assert.Equal(t, 1, s.Supporting)
	assert.Equal(t, 4, s.Total())
}

func TestAlertTypePrecedence(t *testing.T) {
	assert.Less(t, AlertCritical.Precedence(), AlertCapacity.Precedence())
	assert.Less(t, AlertCapacity.Precedence(), AlertSupporting.Precedence())
	assert.Equal(t, 3, AlertType("Bogus").Precedence())
}

func TestMaterialName(t *testing.T) {
	idx := MaterialIndex([]Material{{ID: "FG-90", Name: "LCO Cathode Sheet", Type: MaterialFG}})
	assert.Equal(t, "LCO Cathode Sheet", MaterialName(idx, "FG-90"))
	assert.Equal(t, "XX-00", MaterialName(idx, "XX-00"))
}
