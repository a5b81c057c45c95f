package stats

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatValue renders a stat value for display. Whole numbers get thousands
// separators, other numbers keep at most two decimals, strings are returned
// as is.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return humanize.Comma(int64(val))
		}
		return humanize.CommafWithDigits(val, 2)
	case int:
		return humanize.Comma(int64(val))
	case int64:
		return humanize.Comma(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}
