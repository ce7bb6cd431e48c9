package compensation

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindFake    Kind = "fake"
	KindGift    Kind = "gift"
	KindUpsell  Kind = "upsell"
	KindRegular Kind = "regular"
)

func (k Kind) String() string {
	return string(k)
}

// Excluded kinds never contribute to the compensation amount.
func (k Kind) Excluded() bool {
	return k == KindFake || k == KindGift
}

type OrderLineItem struct {
	ProductID    string
	ProductType  string
	VariantID    string
	VariantTitle string
	Quantity     int
}

func (li OrderLineItem) Kind() Kind {
	return Classify(li.ProductType)
}

type OneTimeVariant struct {
	ID    string
	Title string
	Price decimal.Decimal
}

// LinkedVariants maps a subscription product ID to the variants of its one-time counterpart.
type LinkedVariants map[string][]OneTimeVariant

// Classify matches productType case- and whitespace-insensitively; fake wins over gift, gift over upsell.
func Classify(productType string) Kind {
	t := normalize(productType)
	switch {
	case strings.Contains(t, string(KindFake)):
		return KindFake
	case strings.Contains(t, string(KindGift)):
		return KindGift
	case strings.Contains(t, string(KindUpsell)):
		return KindUpsell
	default:
		return KindRegular
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
