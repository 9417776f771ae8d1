// Package spec models loosely-structured technical specification data:
// category maps of leaf values that may carry a scalar, a range string,
// or explicit min/max bounds.
package spec

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is one specification leaf entry. All fields are optional except that
// a "present" value must carry a scalar, a range string, or both bounds
// (see Present). Fields mirror the catalog data source shape.
type Value struct {
	Value       string `json:"value,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Tolerance   string `json:"tolerance,omitempty"`
	Range       string `json:"range,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
	Description string `json:"description,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Present reports whether the leaf carries a usable value: a non-blank
// scalar, both min and max, or a range string. The scalar check trims
// whitespace so that " " is absent while "0" is present.
func (v Value) Present() bool {
	if strings.TrimSpace(v.Value) != "" {
		return true
	}
	if v.Min != "" && v.Max != "" {
		return true
	}
	return v.Range != ""
}

// Label returns the human-facing name for the leaf: DisplayName when set,
// otherwise the caller-supplied spec key.
func (v Value) Label(key string) string {
	if v.DisplayName != "" {
		return v.DisplayName
	}
	return key
}

// DisplayValue resolves the string shown for the leaf, preferring the
// scalar, then the range string, then a "min-max" rendering of the bounds.
func (v Value) DisplayValue() string {
	if strings.TrimSpace(v.Value) != "" {
		return v.Value
	}
	if v.Range != "" {
		return v.Range
	}
	if v.Min != "" && v.Max != "" {
		return v.Min + "-" + v.Max
	}
	return ""
}

// UnmarshalJSON accepts the full object form as well as bare scalars
// ("30cm", 42) that loose catalog feeds emit for a leaf. Bare scalars become
// a Value with only the scalar field set.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '{':
		type alias Value
		var a alias
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*v = Value(a)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{Value: s}
		return nil
	case 'n': // null
		*v = Value{}
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = Value{Value: strconv.FormatFloat(f, 'f', -1, 64)}
		return nil
	}
}
