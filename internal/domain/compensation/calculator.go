package compensation

import (
	"errors"

	"cancel-saga/internal/domain/subscription"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ErrUncomputableCompensation = errors.New("compensation amount is not positive")

type SkipReason string

const (
	SkipNoSubscriptionLine SkipReason = "no_subscription_line"
	SkipNoLinkedProduct    SkipReason = "no_linked_product"
	SkipNoMatchingVariant  SkipReason = "no_matching_variant"
)

type LineDelta struct {
	VariantID string
	Kind      Kind
	UnitDelta int64
	Quantity  int
	Total     int64
}

type SkippedLine struct {
	VariantID string
	Kind      Kind
	Reason    SkipReason
}

// Result is the compensation owed, expressed as units of a $1 virtual product.
type Result struct {
	Quantity int64
	Lines    []LineDelta
	Skipped  []SkippedLine
}

type Calculator interface {
	Calculate(snapshot subscription.Snapshot, items []OrderLineItem, linked LinkedVariants) (Result, error)
}

type DefaultCalculator struct{}

func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

func (c *DefaultCalculator) Calculate(snapshot subscription.Snapshot, items []OrderLineItem, linked LinkedVariants) (Result, error) {
	upsells, regulars := Partition(items)

	var res Result
	for _, item := range upsells {
		line, ok := snapshot.LineByVariant(item.VariantID)
		if !ok {
			res.skip(item, KindUpsell, SkipNoSubscriptionLine)
			continue
		}
		res.add(item, KindUpsell, wholeUnits(line.PriceWithoutDiscount.Sub(line.UnitPrice)))
	}

	for _, item := range regulars {
		line, ok := snapshot.LineByVariant(item.VariantID)
		if !ok {
			res.skip(item, KindRegular, SkipNoSubscriptionLine)
			continue
		}
		variants, ok := linked[item.ProductID]
		if !ok || len(variants) == 0 {
			res.skip(item, KindRegular, SkipNoLinkedProduct)
			continue
		}
		oneTime, ok := SelectOneTimeVariant(variants, item.VariantTitle)
		if !ok {
			res.skip(item, KindRegular, SkipNoMatchingVariant)
			continue
		}
		res.add(item, KindRegular, wholeUnits(oneTime.Price.Sub(line.UnitPrice)))
	}

	if res.Quantity <= 0 {
		return res, ErrUncomputableCompensation
	}
	return res, nil
}

// Partition splits items into upsells and regular lines, dropping fake and gift lines.
func Partition(items []OrderLineItem) (upsells, regulars []OrderLineItem) {
	kept := lo.Filter(items, func(item OrderLineItem, _ int) bool {
		return !item.Kind().Excluded()
	})
	return lo.FilterReject(kept, func(item OrderLineItem, _ int) bool {
		return item.Kind() == KindUpsell
	})
}

// RegularProductIDs lists the distinct products whose one-time counterparts must be resolved.
func RegularProductIDs(items []OrderLineItem) []string {
	_, regulars := Partition(items)
	return lo.Uniq(lo.Map(regulars, func(item OrderLineItem, _ int) string {
		return item.ProductID
	}))
}

// wholeUnits rounds a price difference to cents, then floors it to whole currency units.
func wholeUnits(diff decimal.Decimal) int64 {
	return diff.Round(2).Floor().IntPart()
}

func (r *Result) add(item OrderLineItem, kind Kind, unitDelta int64) {
	total := unitDelta * int64(item.Quantity)
	r.Quantity += total
	r.Lines = append(r.Lines, LineDelta{
		VariantID: item.VariantID,
		Kind:      kind,
		UnitDelta: unitDelta,
		Quantity:  item.Quantity,
		Total:     total,
	})
}

func (r *Result) skip(item OrderLineItem, kind Kind, reason SkipReason) {
	r.Skipped = append(r.Skipped, SkippedLine{VariantID: item.VariantID, Kind: kind, Reason: reason})
}
