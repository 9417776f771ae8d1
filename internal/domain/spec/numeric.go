package spec

import (
	"math"
	"strconv"
	"strings"
)

// Numeric is the numeric projection of a specification leaf. Point values
// carry Min == Max == Value.
type Numeric struct {
	Value float64
	Unit  string
	Min   float64
	Max   float64
}

// ParseNumeric extracts a numeric projection from a leaf, resolving the
// source forms in fixed precedence: explicit min/max bounds, then a
// "min-max" range string, then the scalar value. Leaves with no parseable
// numeric content yield ok=false.
func ParseNumeric(v Value) (Numeric, bool) {
	if lo, ok := parseScalar(v.Min); ok {
		if hi, ok := parseScalar(v.Max); ok {
			return Numeric{Value: (lo + hi) / 2, Unit: v.Unit, Min: lo, Max: hi}, true
		}
	}
	if lo, hi, ok := parseRange(v.Range); ok {
		return Numeric{Value: (lo + hi) / 2, Unit: v.Unit, Min: lo, Max: hi}, true
	}
	if f, ok := parseScalar(v.Value); ok {
		return Numeric{Value: f, Unit: v.Unit, Min: f, Max: f}, true
	}
	return Numeric{}, false
}

// parseRange splits an "a-b" range string and parses both sides.
func parseRange(s string) (lo, hi float64, ok bool) {
	a, b, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	lo, okA := parseScalar(a)
	hi, okB := parseScalar(b)
	if !okA || !okB {
		return 0, 0, false
	}
	return lo, hi, true
}

// parseScalar extracts a float from a heterogeneous field like "150 PSI" or
// "~2.5mm": every character that is not a digit, '.' or '-' is stripped,
// then the longest numeric prefix of what remains is parsed. Blank input
// and non-finite results are rejected. Deterministic and pure.
func parseScalar(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	cleaned := stripNonNumeric(s)
	prefix := numericPrefix(cleaned)
	if prefix == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// numericPrefix returns the leading substring that forms a valid float:
// an optional sign, digits, and at most one decimal point. This mirrors
// prefix-parsing semantics where "1.2.3" parses as 1.2 and "10-20" as 10.
func numericPrefix(s string) string {
	end := 0
	seenDot := false
	seenDigit := false
	for i, r := range s {
		switch {
		case r == '-':
			if i != 0 {
				goto done
			}
		case r == '.':
			if seenDot {
				goto done
			}
			seenDot = true
		case r >= '0' && r <= '9':
			seenDigit = true
		default:
			goto done
		}
		end = i + 1
	}
done:
	if !seenDigit {
		return ""
	}
	return s[:end]
}
