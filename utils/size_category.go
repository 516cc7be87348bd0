package utils

import "strings"

// Size category constants shared by pricing, persistence and the catalog API
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeXLarge = "xlarge"
)

// SizeBucket maps an inclusive upper scale bound to a size category
type SizeBucket struct {
	MaxScale int    `json:"maxScale"`
	Category string `json:"category"`
}

// sizeBuckets are checked in order. Bounds sit halfway between the named
// scales 75, 100 and 125; anything above the last bound is xlarge.
var sizeBuckets = []SizeBucket{
	{MaxScale: 87, Category: SizeSmall},
	{MaxScale: 112, Category: SizeMedium},
	{MaxScale: 137, Category: SizeLarge},
}

// SizeCategoryForScale maps a scale percentage to its size category.
// 75 -> small, 100 -> medium, 125 -> large, 150+ -> xlarge.
func SizeCategoryForScale(scale int) string {
	for _, b := range sizeBuckets {
		if scale <= b.MaxScale {
			return b.Category
		}
	}
	return SizeXLarge
}

// SizeBuckets returns a copy of the mapping table, with xlarge as the open-ended last bucket
func SizeBuckets() []SizeBucket {
	out := make([]SizeBucket, len(sizeBuckets), len(sizeBuckets)+1)
	copy(out, sizeBuckets)
	return append(out, SizeBucket{MaxScale: 0, Category: SizeXLarge})
}

// NormalizeSizeCategory normalizes stored size category values.
// Extra Large / extraLarge / XL -> xlarge
func NormalizeSizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	c = strings.ReplaceAll(c, " ", "")
	c = strings.ReplaceAll(c, "-", "")

	switch c {
	case "s", "small":
		return SizeSmall
	case "m", "medium":
		return SizeMedium
	case "l", "large":
		return SizeLarge
	case "xl", "xlarge", "extralarge":
		return SizeXLarge
	}
	return c
}
