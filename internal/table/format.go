package table

import (
	"fmt"
	"strconv"
	"time"
)

// Labeler is implemented by enum values that display as localized text.
type Labeler interface {
	Label() string
}

// FormatValue renders a cell value for display.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case Labeler:
		return val.Label()
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', 2, 64)
	case bool:
		if val {
			return "Да"
		}
		return "Нет"
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("02.01.2006")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
