package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=mock_commands

import (
	"context"
	"time"

	"cancel-saga/internal/domain/compensation"
	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/domain/subscription"
	"cancel-saga/internal/pkg/storeconfig"

	"github.com/google/uuid"
)

// Verification is the outcome of checking a one-time code against the identity state.
type Verification struct {
	Valid            bool
	SubscriptionRef  string
	CancelSessionRef string
}

type IdentityGate interface {
	Verify(ctx context.Context, store, email, code string) (Verification, error)
	// Consume clears the identity state once the cancellation has gone through.
	Consume(ctx context.Context, store, email string) error
}

type DraftOrderStatus string

const (
	DraftOrderOpen        DraftOrderStatus = "OPEN"
	DraftOrderInvoiceSent DraftOrderStatus = "INVOICE_SENT"
	DraftOrderCompleted   DraftOrderStatus = "COMPLETED"
)

type DraftOrderInput struct {
	VariantID       string
	Quantity        int64
	Email           string
	ShippingAddress subscription.Address
	Tags            []string
	Note            string
}

// CommerceClient talks to the storefront platform. Every call is scoped to a store alias.
type CommerceClient interface {
	GetOrderLineItems(ctx context.Context, store, orderID string) ([]compensation.OrderLineItem, error)
	GetLinkedOneTimeVariants(ctx context.Context, store, subscriptionProductID string) ([]compensation.OneTimeVariant, error)
	CreateDraftOrder(ctx context.Context, store string, input DraftOrderInput) (string, error)
	SendInvoice(ctx context.Context, store, draftOrderID string) error
	GetDraftOrderStatus(ctx context.Context, store, draftOrderID string) (DraftOrderStatus, error)
	DeleteDraftOrder(ctx context.Context, store, draftOrderID string) error
}

type SubscriptionClient interface {
	GetSubscription(ctx context.Context, store, subscriptionRef string) (*subscription.Snapshot, error)
	CancelSubscription(ctx context.Context, store, cancelSessionRef, subscriptionRef string) (bool, error)
}

// DraftOrderLedger persists in-flight compensating orders. Each method is a single statement.
type DraftOrderLedger interface {
	Create(ctx context.Context, rec *draftorder.Record) error
	// FindActiveBySubscription returns the non-FAILED record for a subscription, expired or not.
	FindActiveBySubscription(ctx context.Context, store, subscriptionRef string) (*draftorder.Record, error)
	FindByDraftOrder(ctx context.Context, store, draftOrderID string) (*draftorder.Record, error)
	// ListExpired returns records past their deadline in one of statuses, plus PROCESSING records
	// untouched since staleBefore, which a crashed pass left behind.
	ListExpired(ctx context.Context, store string, statuses []draftorder.Status, now, staleBefore time.Time) ([]*draftorder.Record, error)
	UpdateStatus(ctx context.Context, rec *draftorder.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Alert struct {
	Store   string
	Title   string
	Message string
}

type Alerter interface {
	Alert(ctx context.Context, alert Alert) error
}

type CancellationNotice struct {
	Store           string
	Email           string
	SubscriptionRef string
	DraftOrderID    string
	CancelledAt     time.Time
}

type Notifier interface {
	CancellationConfirmed(ctx context.Context, notice CancellationNotice) error
}

// PassLocker guards a cleanup pass so two runners never work the same store at once.
type PassLocker interface {
	TryLock(ctx context.Context, key string) (unlock func(), acquired bool, err error)
}

type StoreDirectory interface {
	ByAlias(alias string) (storeconfig.Store, error)
	Aliases() []string
}

type SagaSettings struct {
	PaymentWindow      time.Duration
	ProtectedProvinces []string
	ReaperMaxRetries   int
	// ReaperStaleAfter is how long a PROCESSING record may sit before a later pass takes it over.
	ReaperStaleAfter time.Duration
}
