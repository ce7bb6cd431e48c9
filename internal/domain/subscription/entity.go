package subscription

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxSelfServiceCycles is the last billing cycle in which the self-service flow is offered.
const MaxSelfServiceCycles = 1

type Address struct {
	FirstName    string
	LastName     string
	Address1     string
	Address2     string
	City         string
	Province     string
	ProvinceCode string
	Zip          string
	Country      string
	CountryCode  string
	Phone        string
}

type Line struct {
	ProductVariantID     string
	UnitPrice            decimal.Decimal
	PriceWithoutDiscount decimal.Decimal
	Quantity             int
	SellingPlanPresent   bool
}

// Snapshot is a read-only view of a subscription, fetched fresh for every request.
type Snapshot struct {
	ID              string
	CyclesCompleted int
	OriginOrderID   string
	CustomerEmail   string
	ShippingAddress Address
	Lines           []Line
}

func (s Snapshot) ShippingProvince() string {
	return s.ShippingAddress.Province
}

func (s Snapshot) ExceedsCycleLimit() bool {
	return s.CyclesCompleted > MaxSelfServiceCycles
}

func (s Snapshot) InProtectedJurisdiction(provinces []string) bool {
	province := strings.TrimSpace(s.ShippingProvince())
	if province == "" {
		return false
	}
	for _, p := range provinces {
		if strings.EqualFold(province, strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}

func (s Snapshot) LineByVariant(variantID string) (Line, bool) {
	for _, l := range s.Lines {
		if l.ProductVariantID == variantID {
			return l, true
		}
	}
	return Line{}, false
}
