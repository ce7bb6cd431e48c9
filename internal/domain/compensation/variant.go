package compensation

import "strings"

// SelectOneTimeVariant picks the one-time variant equivalent to a subscription variant title.
// A product with a single variant matches unconditionally; otherwise an exact normalized
// title wins over a substring match in either direction.
func SelectOneTimeVariant(variants []OneTimeVariant, subscriptionVariantTitle string) (OneTimeVariant, bool) {
	if len(variants) == 1 {
		return variants[0], true
	}

	want := normalize(subscriptionVariantTitle)
	for _, v := range variants {
		if normalize(v.Title) == want {
			return v, true
		}
	}

	if want == "" {
		return OneTimeVariant{}, false
	}
	for _, v := range variants {
		got := normalize(v.Title)
		if got == "" {
			continue
		}
		if strings.Contains(want, got) || strings.Contains(got, want) {
			return v, true
		}
	}
	return OneTimeVariant{}, false
}
