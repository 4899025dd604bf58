// Package rules is the recommendation rule engine. It is stateless: a pure
// mapping from an alert to recommendation text, and from an alert plus a
// scenario dataset to a bounded mutation of that dataset with an audit
// record. Keeping no memory of prior calls is deliberate — at-most-once
// application is the controller's job, not the engine's.
package rules

import (
	"fmt"

	"github.com/planops/sopdash/internal/domain"
)

// Recommendation is the prescriptive text for one alert.
type Recommendation struct {
	Title  string
	Steps  []string
	Impact string
}

// Describe returns the recommendation text for an alert. It is total: every
// rule key resolves to specific text, and RuleNone falls back to a generic
// recommendation referencing the material name.
func Describe(alert domain.Alert, materialName string) Recommendation {
	switch alert.Rule {
	case domain.RuleSupplyShortfall:
		return Recommendation{
			Title: "Increase Supply to Meet Demand",
			Steps: []string{
				fmt.Sprintf("Increase production of %s by 15%% (approximately 150-200 units) for week %s", materialName, alert.Week),
				"Expedite existing purchase orders from suppliers",
				"Consider moving sales orders to later weeks if possible",
			},
			Impact: "This will increase fill rate by approximately 8-10% and eliminate the critical alert.",
		}
	case domain.RuleInventoryShortage:
		return Recommendation{
			Title: "Address Inventory Shortage",
			Steps: []string{
				fmt.Sprintf("Increase safety stock of %s by 100 units before week %s", materialName, alert.Week),
				"Expedite production orders for preceding weeks",
				"Review and potentially reschedule customer orders to balance demand",
			},
			Impact: "This will ensure sufficient inventory to meet demand and prevent stockouts.",
		}
	case domain.RuleCapacityExceeded:
		return Recommendation{
			Title: "Resolve Capacity Constraint",
			Steps: []string{
				fmt.Sprintf("Increase production capacity for %s by 20%% for week %s", materialName, alert.Week),
				"Consider overtime or additional shifts",
				"Evaluate outsourcing options for peak demand periods",
			},
			Impact: "This will allow meeting production targets without exceeding normal capacity limits.",
		}
	case domain.RuleBelowSafetyStock:
		return Recommendation{
			Title: "Restore Safety Stock Levels",
			Steps: []string{
				fmt.Sprintf("Increase inventory of %s by 75 units before week %s", materialName, alert.Week),
				"Adjust reorder points in the planning system",
				"Review lead times with suppliers to prevent future shortages",
			},
			Impact: "This will restore safety stock levels and reduce risk of stockouts.",
		}
	case domain.RuleSalesAboveForecast:
		return Recommendation{
			Title: "Adjust Forecast and Production",
			Steps: []string{
				fmt.Sprintf("Increase forecast for %s by 10%% for week %s and subsequent weeks", materialName, alert.Week),
				"Increase production orders to match the new forecast",
				"Review sales patterns to improve future forecasting accuracy",
			},
			Impact: "This will align planning with actual demand and improve fill rates.",
		}
	case domain.RuleExcessOrderQty:
		return Recommendation{
			Title: "Optimize Order Quantities",
			Steps: []string{
				fmt.Sprintf("Reduce planned orders for %s to match economic order quantity", materialName),
				"Consolidate orders across multiple weeks where possible",
				"Negotiate with suppliers for more flexible ordering terms",
			},
			Impact: "This will reduce excess inventory while maintaining service levels.",
		}
	}
	return Recommendation{
		Title: "General Recommendation",
		Steps: []string{
			fmt.Sprintf("Review planning parameters for %s", materialName),
			"Analyze historical data to identify patterns",
			"Consult with planning team for specific actions",
		},
		Impact: "This will help address the alert through standard planning procedures.",
	}
}
