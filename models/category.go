package models

import "strings"

type Category string

const (
	CategoryPan        Category = "pan"
	CategoryPasteles   Category = "pasteles"
	CategoryReposteria Category = "reposteria"
	CategoryBebidas    Category = "bebidas"
)

// Older storefront builds shipped ad hoc category identifiers that never
// matched the persisted column. The persisted set above is authoritative;
// legacy values are folded into it on write.
var legacyCategories = map[string]Category{
	"panes":      CategoryPan,
	"pasteleria": CategoryReposteria,
}

// NormalizeCategory maps a raw category identifier to its canonical form.
// Unknown identifiers return ok=false and must be rejected by the caller.
func NormalizeCategory(raw string) (Category, bool) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if mapped, ok := legacyCategories[c]; ok {
		return mapped, true
	}
	switch Category(c) {
	case CategoryPan, CategoryPasteles, CategoryReposteria, CategoryBebidas:
		return Category(c), true
	}
	return "", false
}
