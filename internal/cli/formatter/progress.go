package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focuslog/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a bare bar of width cells filled to pct (0..1).
func RenderBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if pct > 0 && filled == 0 {
		filled = 1
	}
	empty := width - filled

	return IntensityStyle(pct).Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, empty))
}

// RenderHourlyChart renders one horizontal bar per hour, scaled to the
// largest weight. peakHour is highlighted when it is a valid hour.
func RenderHourlyChart(buckets []domain.HourlyBucket, width, peakHour int) string {
	var peak float64
	for _, bk := range buckets {
		peak = max(peak, bk.Weight)
	}

	var b strings.Builder
	for _, bk := range buckets {
		var share float64
		if peak > 0 {
			share = bk.Weight / peak
		}
		label := fmt.Sprintf("%02d:00", bk.Hour)
		if bk.Hour == peakHour {
			label = StyleHeader.Render(label)
		} else {
			label = Dim(label)
		}
		value := fmt.Sprintf("%6.1f", bk.Weight)
		if bk.Weight == 0 {
			value = Dim(value)
		}
		fmt.Fprintf(&b, "%s │%s %s\n", label, RenderBar(share, width), value)
	}
	return b.String()
}
