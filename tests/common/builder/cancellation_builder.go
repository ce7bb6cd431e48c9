//go:build unit || e2e

package builder

import (
	"time"

	"cancel-saga/internal/domain/draftorder"
	reqdto "cancel-saga/internal/handler/dto/request"
	"cancel-saga/internal/usecase/commands"
)

type CancellationBuilder struct {
	Store           string
	Shop            string
	Email           string
	Token           string
	Subscription    string
	CancelSessionID string
	DraftOrder      string
	CreatedAt       time.Time
	PaymentWindow   time.Duration
}

func NewCancellationBuilder() *CancellationBuilder {
	return &CancellationBuilder{
		Store:           "acme",
		Shop:            "acme.myshopify.com",
		Email:           "jane@example.com",
		Token:           "A1B2C3",
		Subscription:    "sub-1",
		CancelSessionID: "session-1",
		DraftOrder:      "gid://shopify/DraftOrder/77",
		CreatedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		PaymentWindow:   draftorder.DefaultPaymentWindow,
	}
}

func (b *CancellationBuilder) With(mutate func(*CancellationBuilder)) *CancellationBuilder {
	mutate(b)
	return b
}

func (b *CancellationBuilder) BuildCancelRequestDTO() reqdto.CancelSubscriptionRequest {
	return reqdto.CancelSubscriptionRequest{
		Email:        b.Email,
		Token:        b.Token,
		Subscription: b.Subscription,
	}
}

func (b *CancellationBuilder) BuildValidateRequestDTO() reqdto.ValidateTokenRequest {
	return reqdto.ValidateTokenRequest{
		CancelSubscriptionRequest: b.BuildCancelRequestDTO(),
		CancelSessionID:           b.CancelSessionID,
	}
}

func (b *CancellationBuilder) BuildPaidWebhookDTO() reqdto.PaidWebhookRequest {
	return reqdto.PaidWebhookRequest{
		Shop:       b.Shop,
		ShopAlias:  b.Store,
		DraftOrder: b.DraftOrder,
	}
}

func (b *CancellationBuilder) BuildCommand() commands.CancelRequest {
	return commands.CancelRequest{
		Store:           b.Store,
		Email:           b.Email,
		Code:            b.Token,
		SubscriptionRef: b.Subscription,
	}
}

func (b *CancellationBuilder) BuildRecord() (*draftorder.Record, error) {
	return draftorder.NewRecord(b.Store, b.Subscription, b.DraftOrder, b.CancelSessionID, b.CreatedAt, b.PaymentWindow)
}

func (b *CancellationBuilder) BuildAwaitingResult() *commands.CancelResult {
	due := b.CreatedAt.Add(b.PaymentWindow)
	return &commands.CancelResult{
		Outcome:         commands.OutcomeAwaitingPayment,
		SubscriptionRef: b.Subscription,
		DraftOrderID:    b.DraftOrder,
		Quantity:        16,
		PaymentDue:      &due,
	}
}
