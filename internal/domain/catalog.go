package domain

import "sort"

// Static catalog reference tables. The backend exchanges category, brand and
// style as numeric ids; these names are fixed client side.

var categoryNames = map[int]string{
	1: "Bats",
	2: "Balls",
	3: "Gloves",
	4: "Pads",
	5: "Helmets",
	6: "Shoes",
	7: "Jerseys",
	8: "Stumps",
	9: "Bags",
}

var brandNames = map[int]string{
	1: "GM (Gunn & Moore)",
	2: "SG",
	3: "Kookaburra",
	4: "Gray-Nicolls",
	5: "New Balance",
	6: "MRF",
	7: "Spartan",
}

var styleNames = map[int]string{
	1: "Left Handed",
	2: "Right Handed",
}

// CategoryName returns the display name for a category id.
func CategoryName(id int) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return "Unknown Category"
}

// BrandName returns the display name for a brand id.
func BrandName(id int) string {
	if name, ok := brandNames[id]; ok {
		return name
	}
	return "Unknown Brand"
}

// StyleName returns the display name for a style id.
func StyleName(id int) string {
	if name, ok := styleNames[id]; ok {
		return name
	}
	return "Unknown Style"
}

// Categories returns the category ids in display order.
func Categories() []int {
	return sortedKeys(categoryNames)
}

// Brands returns the brand ids in display order.
func Brands() []int {
	return sortedKeys(brandNames)
}

// Styles returns the style ids in display order.
func Styles() []int {
	return sortedKeys(styleNames)
}

func sortedKeys(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Ints(keys)
	return keys
}
