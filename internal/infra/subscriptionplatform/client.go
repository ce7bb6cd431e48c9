// Package subscriptionplatform talks to the recurring-billing platform that owns subscription state.
package subscriptionplatform

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cancel-saga/internal/domain/subscription"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/infra/commerce"
	"cancel-saga/internal/infra/graphql"
	"cancel-saga/internal/pkg/storeconfig"

	"github.com/shopspring/decimal"
)

const platform = "subscription"

type StoreLookup interface {
	ByAlias(alias string) (storeconfig.Store, error)
}

type Client struct {
	stores  StoreLookup
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(stores StoreLookup, httpClient *http.Client, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		stores:  stores,
		http:    httpClient,
		timeout: timeout,
		logger:  logger.With(slog.String("client", platform)),
	}
}

func (c *Client) forStore(store string) (*graphql.Client, error) {
	s, err := c.stores.ByAlias(store)
	if err != nil {
		return nil, infra.NewUpstreamErr(platform, "resolve store", infra.KindUpstreamRejected, err)
	}
	headers := map[string]string{"Authorization": "Bearer " + s.Subscription.APIToken}
	return graphql.NewClient(platform, s.Subscription.Endpoint, headers, c.http, c.timeout), nil
}

const subscriptionQuery = `
query Subscription($id: ID!) {
  subscription(id: $id) {
    id
    billingCyclesCompleted
    originOrderId
    customer { email }
    shippingAddress {
      firstName lastName address1 address2 city province provinceCode zip country countryCode phone
    }
    lines {
      productVariantId
      quantity
      unitPrice
      priceWithoutDiscount
      sellingPlanId
    }
  }
}`

type addressPayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"provinceCode"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	CountryCode  string `json:"countryCode"`
	Phone        string `json:"phone"`
}

type linePayload struct {
	ProductVariantID     string          `json:"productVariantId"`
	Quantity             int             `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	PriceWithoutDiscount decimal.Decimal `json:"priceWithoutDiscount"`
	SellingPlanID        *string         `json:"sellingPlanId"`
}

type subscriptionData struct {
	Subscription *struct {
		ID                     string `json:"id"`
		BillingCyclesCompleted int    `json:"billingCyclesCompleted"`
		OriginOrderID          string `json:"originOrderId"`
		Customer               struct {
			Email string `json:"email"`
		} `json:"customer"`
		ShippingAddress *addressPayload `json:"shippingAddress"`
		Lines           []linePayload   `json:"lines"`
	} `json:"subscription"`
}

func (c *Client) GetSubscription(ctx context.Context, store, ref string) (*subscription.Snapshot, error) {
	gql, err := c.forStore(store)
	if err != nil {
		return nil, err
	}

	var data subscriptionData
	if err := gql.Do(ctx, "subscription", subscriptionQuery, map[string]any{"id": ref}, &data); err != nil {
		return nil, err
	}
	if data.Subscription == nil {
		return nil, infra.NewUpstreamErr(platform, "subscription", infra.KindUpstreamNotFound, fmt.Errorf("subscription %s", ref))
	}

	s := data.Subscription
	snap := &subscription.Snapshot{
		ID:              s.ID,
		CyclesCompleted: s.BillingCyclesCompleted,
		OriginOrderID:   s.OriginOrderID,
		CustomerEmail:   s.Customer.Email,
		Lines:           make([]subscription.Line, 0, len(s.Lines)),
	}
	if s.ShippingAddress != nil {
		snap.ShippingAddress = toAddress(*s.ShippingAddress)
	}
	for _, l := range s.Lines {
		snap.Lines = append(snap.Lines, subscription.Line{
			// The commerce platform reports global ids; the billing platform may not.
			ProductVariantID:     commerce.GID("ProductVariant", l.ProductVariantID),
			UnitPrice:            l.UnitPrice,
			PriceWithoutDiscount: l.PriceWithoutDiscount,
			Quantity:             l.Quantity,
			SellingPlanPresent:   l.SellingPlanID != nil && *l.SellingPlanID != "",
		})
	}
	return snap, nil
}

func toAddress(a addressPayload) subscription.Address {
	return subscription.Address{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Address1:     a.Address1,
		Address2:     a.Address2,
		City:         a.City,
		Province:     a.Province,
		ProvinceCode: a.ProvinceCode,
		Zip:          a.Zip,
		Country:      a.Country,
		CountryCode:  a.CountryCode,
		Phone:        a.Phone,
	}
}

const cancelSubscriptionMutation = `
mutation CancelSubscription($cancelSessionId: ID!, $subscriptionId: ID!) {
  cancelSubscription(cancelSessionId: $cancelSessionId, subscriptionId: $subscriptionId) {
    success
    userErrors { field message }
  }
}`

type cancelSubscriptionData struct {
	CancelSubscription struct {
		Success    bool                `json:"success"`
		UserErrors []graphql.UserError `json:"userErrors"`
	} `json:"cancelSubscription"`
}

// CancelSubscription reports whether the platform accepted the cancellation.
func (c *Client) CancelSubscription(ctx context.Context, store, sessionRef, ref string) (bool, error) {
	gql, err := c.forStore(store)
	if err != nil {
		return false, err
	}

	vars := map[string]any{"cancelSessionId": sessionRef, "subscriptionId": ref}
	var data cancelSubscriptionData
	if err := gql.Do(ctx, "cancelSubscription", cancelSubscriptionMutation, vars, &data); err != nil {
		return false, err
	}
	if err := gql.CheckUserErrors("cancelSubscription", data.CancelSubscription.UserErrors); err != nil {
		return false, err
	}
	if !data.CancelSubscription.Success {
		c.logger.Warn("cancellation not accepted", "store", store, "subscription", ref)
	}
	return data.CancelSubscription.Success, nil
}
