package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
)

// Common parameter formatters and parsers

// GainToDecibelFormatter returns a formatter that shows a linear gain in dB
// with the given number of decimals.
func GainToDecibelFormatter(digits int) func(float64) string {
	return func(linear float64) string {
		if linear <= 0 {
			return "-∞ dB"
		}
		scale := math.Pow(10, float64(digits))
		db := math.Round(gain.LinearToDb(linear)*scale) / scale
		if db == 0 {
			db = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(db, 'f', digits, 64) + " dB"
	}
}

// DecibelToGainParser parses a dB string into a linear gain
func DecibelToGainParser(str string) (float64, error) {
	db, err := DecibelParser(str)
	if err != nil {
		return 0, err
	}
	return dbToGain(db), nil
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if math.IsInf(db, -1) || db <= gain.MinDB {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(str, "inf") {
		return math.Inf(-1), nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// UnitPercentFormatter formats a 0-1 value as a percentage
func UnitPercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// UnitPercentParser parses a percentage string into a 0-1 value
func UnitPercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	value, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return value / 100, nil
}

func dbToGain(db float64) float64 {
	if math.IsInf(db, -1) {
		return 0
	}
	return gain.DbToLinear(db)
}
