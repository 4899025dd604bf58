package domain

import "strings"

// Alert is one rule-triggered finding against a scenario plan.
// Alerts are static seed data: they are never created at runtime, and
// resolving one hides it from the pending list without deleting it.
type Alert struct {
	ID          int
	Scenario    ScenarioID
	Type        AlertType
	Description string
	Week        string
	MaterialID  string

	// Rule is resolved from Type and Description when the alert is loaded.
	Rule RuleKey
}

// Rule cause phrases as they appear in alert descriptions. Matching is
// case-sensitive substring containment, checked in table order.
const (
	causeSupplyShortfall    = "Supply less than Total Demand"
	causeInventoryShortage  = "Inventory not available"
	causeCapacityExceeded   = "Exceed Allocated Capacity"
	causeBelowSafetyStock   = "Below Safety Stock"
	causeSalesAboveForecast = "Sales Orders Exceed Forecast"
	causeExcessOrderQty     = "Exceeds Minimum Order Quantity"
)

// ClassifyAlert resolves the recommendation rule for a (type, description)
// pair. Any combination without a specific rule maps to RuleNone, which
// gets the generic recommendation and no dataset mutation.
func ClassifyAlert(t AlertType, description string) RuleKey {
	switch t {
	case AlertCritical:
		if strings.Contains(description, causeSupplyShortfall) {
			return RuleSupplyShortfall
		}
		if strings.Contains(description, causeInventoryShortage) {
			return RuleInventoryShortage
		}
	case AlertCapacity:
		if strings.Contains(description, causeCapacityExceeded) {
			return RuleCapacityExceeded
		}
	case AlertSupporting:
		if strings.Contains(description, causeBelowSafetyStock) {
			return RuleBelowSafetyStock
		}
		if strings.Contains(description, causeSalesAboveForecast) {
			return RuleSalesAboveForecast
		}
		if strings.Contains(description, causeExcessOrderQty) {
			return RuleExcessOrderQty
		}
	}
	return RuleNone
}

// AlertSummary counts alerts by type for one scenario.
type AlertSummary struct {
	Critical   int
	Capacity   int
	Supporting int
}

func (s AlertSummary) Total() int {
	return s.Critical + s.Capacity + s.Supporting
}

// Summarize tallies a list of alerts by type.
func Summarize(alerts []Alert) AlertSummary {
	var s AlertSummary
	for _, a := range alerts {
		switch a.Type {
		case AlertCritical:
			s.Critical++
		case AlertCapacity:
			s.Capacity++
		case AlertSupporting:
			s.Supporting++
		}
	}
	return s
}
