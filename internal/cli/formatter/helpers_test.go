package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planops/sopdash/internal/domain"
)

func TestFormatInt(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1150, "1,150"},
		{1234567, "1,234,567"},
		{-1440, "-1,440"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatInt(tt.in))
	}
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "96%", FormatPct(0.958))
	assert.Equal(t, "100%", FormatPct(1.0))
	assert.Equal(t, "0%", FormatPct(0))
}

func TestDeltaStyled(t *testing.T) {
	assert.Contains(t, DeltaStyled(150), "150")
	assert.Contains(t, DeltaStyled(150), "▲")
	assert.Contains(t, DeltaStyled(-90), "▼")
	assert.Contains(t, DeltaStyled(-90), "90")
	assert.Contains(t, DeltaStyled(0), "–")
}

func TestMaterialStylesDeterministic(t *testing.T) {
	a := MaterialStyles([]string{"RM-10", "FG-90", "IM-55"})
	b := MaterialStyles([]string{"IM-55", "RM-10", "FG-90"})
	for id := range a {
		assert.Equal(t, a[id], b[id], "style for %s must not depend on input order", id)
	}
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(
		[]string{"Week", "Qty"},
		[][]string{{"14", "950"}, {"15", "1,050"}},
		[]Align{AlignLeft, AlignRight},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "950")
	// Right-aligned numeric column pads short values on the left.
	assert.Contains(t, lines[2], "  950")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestRenderDemandSupplyMarksShortfall(t *testing.T) {
	out := RenderDemandSupply([]domain.WeekPoint{
		{Week: "14", Demand: 1200, Supply: 1000, FillRate: 1000.0 / 1200.0},
	}, 20)
	assert.Contains(t, out, "W14")
	assert.Contains(t, out, "1200")
	assert.Contains(t, out, "fill 83%")
}

func TestRenderBarChartScales(t *testing.T) {
	out := RenderBarChart([]string{"FG-90", "IM-55"}, []int{100, 50}, nil, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "100")
	assert.Contains(t, lines[1], "50")
}

func TestAlertBadge(t *testing.T) {
	assert.Contains(t, AlertBadge(domain.AlertCritical), "CRITICAL")
	assert.Contains(t, AlertBadge(domain.AlertCapacity), "CAPACITY")
	assert.Contains(t, AlertBadge(domain.AlertSupporting), "SUPPORTING")
	assert.Contains(t, AlertBadge(domain.AlertType("x")), "INFO")
}
