package param

import (
	"fmt"
	"strconv"
	"strings"
)

// PercentFormatter renders a 0-1 value as a percentage.
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// PercentParser parses a percentage back to 0-1.
func PercentParser(str string) (float64, error) {
	str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "%"))
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return v / 100.0, nil
}

// RatioFormatter renders a swing ratio, marking the straight position.
func RatioFormatter(value float64) string {
	if value == 0.5 {
		return "0.50 (straight)"
	}
	return fmt.Sprintf("%.2f", value)
}

// RatioParser parses a ratio string, tolerating the straight marker.
func RatioParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if i := strings.IndexByte(str, ' '); i >= 0 {
		str = str[:i]
	}
	return strconv.ParseFloat(str, 64)
}

// VelocityFormatter renders a velocity offset with an explicit sign.
func VelocityFormatter(value float64) string {
	return fmt.Sprintf("%+.0f", value)
}

// VelocityParser parses a signed velocity offset.
func VelocityParser(str string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// OnOffFormatter renders a toggle value.
func OnOffFormatter(value float64) string {
	if value >= 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses a toggle string.
func OnOffParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	}
	return 0, fmt.Errorf("not a toggle value: %q", str)
}
