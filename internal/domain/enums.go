package domain

type ScenarioID string

const (
	ScenarioBase ScenarioID = "BASE"
	ScenarioS1   ScenarioID = "S1"
	ScenarioS2   ScenarioID = "S2"
	ScenarioS3   ScenarioID = "S3"
	ScenarioS4   ScenarioID = "S4"
)

// SeedScenarios is the canonical ordering of the built-in scenarios.
var SeedScenarios = []ScenarioID{ScenarioBase, ScenarioS1, ScenarioS2, ScenarioS3, ScenarioS4}

type AlertType string

const (
	AlertCritical   AlertType = "Critical"
	AlertCapacity   AlertType = "Capacity"
	AlertSupporting AlertType = "Supporting"
)

// Precedence orders alert types for the pending list: Critical first,
// then Capacity, then Supporting. Unknown types sort last.
func (t AlertType) Precedence() int {
	switch t {
	case AlertCritical:
		return 0
	case AlertCapacity:
		return 1
	case AlertSupporting:
		return 2
	}
	return 3
}

// ValidAlertTypes is the canonical set of accepted alert type strings.
var ValidAlertTypes = map[string]bool{
	"Critical": true, "Capacity": true, "Supporting": true,
}

type MaterialType string

const (
	MaterialFG           MaterialType = "FG"
	MaterialIntermediate MaterialType = "Intermediate"
	MaterialRaw          MaterialType = "Raw"
)

// ChangeType is the fixed taxonomy of dataset mutations a recommendation
// can make.
type ChangeType string

const (
	ChangeSupplyIncrease    ChangeType = "Supply Increase"
	ChangeInventoryIncrease ChangeType = "Inventory Increase"
	ChangeCapacityIncrease  ChangeType = "Capacity Increase"
	ChangeSafetyStock       ChangeType = "Safety Stock Adjustment"
	ChangeForecast          ChangeType = "Forecast Adjustment"
	ChangeOrderQuantity     ChangeType = "Order Quantity Optimization"
)

// RuleKey identifies which recommendation rule an alert maps to.
// It is resolved once when the alert is loaded, so the engine never
// re-scans description text.
type RuleKey string

const (
	RuleSupplyShortfall    RuleKey = "supply_shortfall"
	RuleInventoryShortage  RuleKey = "inventory_shortage"
	RuleCapacityExceeded   RuleKey = "capacity_exceeded"
	RuleBelowSafetyStock   RuleKey = "below_safety_stock"
	RuleSalesAboveForecast RuleKey = "sales_above_forecast"
	RuleExcessOrderQty     RuleKey = "excess_order_qty"
	RuleNone               RuleKey = "none"
)
