package service

import "strings"

const categoryOther = "Other"

// categoryKeywords is checked in order; the first table containing a keyword
// that is a substring of the lowercased description wins. Food before
// Shopping, so "amazon cafe" classifies as Food.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Food", []string{
		"restaurant", "cafe", "coffee", "pizza", "burger", "sushi",
		"mcdonald", "kfc", "starbucks", "subway", "bakery", "diner",
		"doordash", "deliveroo", "takeaway",
	}},
	{"Groceries", []string{
		"grocery", "supermarket", "market", "aldi", "lidl", "tesco",
		"walmart", "costco", "kroger", "safeway", "trader joe",
	}},
	{"Transport", []string{
		"uber", "lyft", "taxi", "bus", "train", "metro", "transit",
		"fuel", "petrol", "gas station", "shell", "parking", "toll",
	}},
	{"Rent", []string{
		"rent", "landlord", "lease", "mortgage", "housing",
	}},
	{"Shopping", []string{
		"amazon", "ebay", "etsy", "ikea", "target", "best buy",
		"zara", "nike", "adidas", "store", "mall",
	}},
}

// categorize assigns a category to a transaction description by
// case-insensitive keyword lookup, falling back to "Other".
func categorize(description string) string {
	desc := strings.ToLower(description)
	for _, set := range categoryKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(desc, keyword) {
				return set.category
			}
		}
	}
	return categoryOther
}
