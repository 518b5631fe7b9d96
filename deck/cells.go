package deck

import (
	"strconv"
	"strings"
)

// Cell conversions. The interchange files were historically produced by
// several tools, so boolean cells show up as True/False as well as
// true/1, and numeric cells may be blank.

func parseBoolCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func formatBoolCell(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseIntCell(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseFloatCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloatCell(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
