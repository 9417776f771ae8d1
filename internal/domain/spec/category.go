package spec

import (
	"encoding/json"
	"sort"
	"strings"
)

// Categories maps a category key to its spec-key/value leaves.
type Categories map[string]map[string]Value

// CategoryDefinition carries rendering hints for a category. The search and
// comparison core ignores it; key ordering is always lexicographic.
type CategoryDefinition struct {
	Name        string `json:"name,omitempty"`
	Order       int    `json:"order,omitempty"` // >= 1 when set
	Collapsible bool   `json:"collapsible,omitempty"`
	Description string `json:"description,omitempty"`
}

// FullKey builds the canonical "category.spec" identifier used for numeric
// indexing, range filters, and comparison keys.
func FullKey(category, specKey string) string {
	return category + "." + specKey
}

// SplitKey splits a full key back into category and spec key. The spec key
// may itself contain dots; the first dot is the separator.
func SplitKey(full string) (category, specKey string, ok bool) {
	return strings.Cut(full, ".")
}

// SortedKeys returns the category keys in lexicographic order.
func (c Categories) SortedKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedSpecKeys returns the spec keys of one category in lexicographic order.
func (c Categories) SortedSpecKeys(category string) []string {
	leaves := c[category]
	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves a full "category.spec" key to its leaf value.
func (c Categories) Lookup(full string) (Value, bool) {
	category, specKey, ok := SplitKey(full)
	if !ok {
		return Value{}, false
	}
	leaves, ok := c[category]
	if !ok {
		return Value{}, false
	}
	v, ok := leaves[specKey]
	return v, ok
}

// DecodeCategories parses a raw specifications document, tolerating
// malformed input: a null or non-object document, or a category whose value
// is not a key/value map, decodes to "no specifications" for that part
// rather than an error. Records stay indexable either way.
func DecodeCategories(data []byte) Categories {
	if len(data) == 0 {
		return Categories{}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Categories{}
	}
	out := make(Categories, len(raw))
	for category, leafData := range raw {
		var leaves map[string]Value
		if err := json.Unmarshal(leafData, &leaves); err != nil {
			continue
		}
		if leaves == nil {
			continue
		}
		out[category] = leaves
	}
	return out
}
