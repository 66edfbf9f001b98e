package report

import (
	"fmt"
	"strconv"
	"time"
)

// formatRate returns a percentage string for report output.
func formatRate(part, whole int) string {
	if whole == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(whole)*100)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', 6, 32)
	default:
		return fmt.Sprint(x)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
