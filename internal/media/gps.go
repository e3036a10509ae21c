package media

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// dmsDivisors converts degrees, minutes and seconds to decimal degrees.
var dmsDivisors = [3]float64{1, 60, 3600}

// DecimalDegrees converts a GPS coordinate to signed decimal degrees.
//
// parts holds either a single decimal value or up to three
// degree/minute/second components. A "S" or "W" reference yields a negative
// result.
//
//	DecimalDegrees([]float64{48, 51, 29.52}, "N") // 48.8582
//	DecimalDegrees([]float64{2, 17, 40.2}, "W")   // -2.2945
func DecimalDegrees(parts []float64, ref string) (float64, error) {
	if len(parts) == 0 || len(parts) > len(dmsDivisors) {
		return 0, fmt.Errorf("invalid coordinate with %d components", len(parts))
	}

	var deg float64
	for i, p := range parts {
		deg += p / dmsDivisors[i]
	}

	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		deg = -math.Abs(deg)
	}
	return deg, nil
}

// toFloats flattens coordinate values. imagemeta hands GPS positions over
// as one decimal float64; the slice and string shapes cover raw DMS values.
func toFloats(v any) ([]float64, bool) {
	switch val := v.(type) {
	case []float64:
		return val, len(val) > 0
	case []any:
		out := make([]float64, 0, len(val))
		for _, item := range val {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, len(out) > 0
	case []uint32:
		out := make([]float64, 0, len(val))
		for _, n := range val {
			out = append(out, float64(n))
		}
		return out, len(out) > 0
	default:
		f, ok := toFloat(v)
		if !ok {
			return nil, false
		}
		return []float64{f}, true
	}
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		return parseRational(val)
	default:
		return 0, false
	}
}

// parseRational accepts "n", "n/d" and decimal strings.
func parseRational(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f <= 0 {
		return 0, false
	}
	return int(f), true
}
