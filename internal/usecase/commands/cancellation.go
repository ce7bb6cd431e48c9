package commands

//go:generate mockgen -source=cancellation.go -destination=../../../tests/mock/commands/cancellation_mock.go -package=mock_commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cancel-saga/internal/domain/compensation"
	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/domain/subscription"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/pkg/errs"
)

var (
	ErrIdentityInvalid           = errs.New("identity verification failed")
	ErrCyclesExceeded            = errs.New("subscription is past its first renewal")
	ErrUncomputableCompensation  = errs.New("compensation could not be computed")
	ErrExternalUnavailable       = errs.New("external platform unavailable")
	ErrLedgerUnavailable         = errs.New("draft order ledger unavailable")
	ErrLedgerInconsistency       = errs.New("ledger write failed after external write succeeded")
	ErrCompensatingOrderNotFound = errs.New("compensating order not found")
	ErrUnknownStore              = errs.New("unknown store")
)

// Tag applied to every compensating draft order so operators can find them on the storefront.
const compensationTag = "subscription-cancellation-compensation"

type Outcome string

const (
	OutcomeCancelled       Outcome = "CANCELLED"
	OutcomeAwaitingPayment Outcome = "AWAITING_PAYMENT"
)

type CancelRequest struct {
	Store            string
	Email            string
	Code             string
	SubscriptionRef  string
	CancelSessionRef string
}

type CancelResult struct {
	Outcome         Outcome
	SubscriptionRef string
	DraftOrderID    string
	Quantity        int64
	PaymentDue      *time.Time
	// Reused is set when an active compensating order already existed and its invoice was re-sent.
	Reused bool
}

type CompleteResult struct {
	SubscriptionRef string
	DraftOrderID    string
	CancelledAt     time.Time
	LedgerCleared   bool
}

type CancellationCommands interface {
	Cancel(ctx context.Context, req CancelRequest) (*CancelResult, error)
	// Complete finishes the saga once the compensating order has been paid.
	Complete(ctx context.Context, store, draftOrderID string) (*CompleteResult, error)
}

type cancellationUseCaseImpl struct {
	gate          IdentityGate
	commerce      CommerceClient
	subscriptions SubscriptionClient
	ledger        DraftOrderLedger
	alerter       Alerter
	notifier      Notifier
	stores        StoreDirectory
	calculator    compensation.Calculator
	clock         clock.Clock
	settings      SagaSettings
}

func NewCancellationUseCase(
	gate IdentityGate,
	commerce CommerceClient,
	subscriptions SubscriptionClient,
	ledger DraftOrderLedger,
	alerter Alerter,
	notifier Notifier,
	stores StoreDirectory,
	calculator compensation.Calculator,
	clk clock.Clock,
	settings SagaSettings,
) CancellationCommands {
	if settings.PaymentWindow <= 0 {
		settings.PaymentWindow = draftorder.DefaultPaymentWindow
	}
	return &cancellationUseCaseImpl{
		gate:          gate,
		commerce:      commerce,
		subscriptions: subscriptions,
		ledger:        ledger,
		alerter:       alerter,
		notifier:      notifier,
		stores:        stores,
		calculator:    calculator,
		clock:         clk,
		settings:      settings,
	}
}

type verifiedIdentity struct {
	email            string
	subscriptionRef  string
	cancelSessionRef string
}

func (uc *cancellationUseCaseImpl) Cancel(ctx context.Context, req CancelRequest) (*CancelResult, error) {
	if _, err := uc.stores.ByAlias(req.Store); err != nil {
		return nil, errs.Mark(err, ErrUnknownStore)
	}

	id, err := uc.verify(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.subscriptions.GetSubscription(ctx, req.Store, id.subscriptionRef)
	if err != nil {
		return nil, uc.externalFailure(ctx, req.Store, "fetch subscription "+id.subscriptionRef, err)
	}
	if snapshot.ExceedsCycleLimit() {
		return nil, ErrCyclesExceeded
	}

	if snapshot.InProtectedJurisdiction(uc.settings.ProtectedProvinces) {
		return uc.cancelImmediately(ctx, req.Store, id, snapshot)
	}
	return uc.compensate(ctx, req.Store, id, snapshot)
}

func (uc *cancellationUseCaseImpl) verify(ctx context.Context, req CancelRequest) (*verifiedIdentity, error) {
	v, err := uc.gate.Verify(ctx, req.Store, req.Email, req.Code)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "identity gate"), ErrExternalUnavailable)
	}
	if !v.Valid {
		return nil, ErrIdentityInvalid
	}

	subRef := v.SubscriptionRef
	switch {
	case subRef == "":
		subRef = req.SubscriptionRef
	case req.SubscriptionRef != "" && req.SubscriptionRef != subRef:
		// A code issued for one subscription never authorizes another.
		return nil, ErrIdentityInvalid
	}
	if subRef == "" {
		return nil, ErrIdentityInvalid
	}

	sessionRef := req.CancelSessionRef
	if sessionRef == "" {
		sessionRef = v.CancelSessionRef
	}
	return &verifiedIdentity{email: req.Email, subscriptionRef: subRef, cancelSessionRef: sessionRef}, nil
}

func (uc *cancellationUseCaseImpl) cancelImmediately(
	ctx context.Context,
	store string,
	id *verifiedIdentity,
	snapshot *subscription.Snapshot,
) (*CancelResult, error) {
	slog.Info("protected jurisdiction, cancelling without compensation",
		"store", store, "subscription", snapshot.ID, "province", snapshot.ShippingProvince())

	if err := uc.cancelSubscription(ctx, store, id.cancelSessionRef, snapshot.ID); err != nil {
		return nil, err
	}
	uc.afterCancellation(ctx, CancellationNotice{
		Store:           store,
		Email:           id.email,
		SubscriptionRef: snapshot.ID,
		CancelledAt:     uc.clock.Now(),
	})
	return &CancelResult{Outcome: OutcomeCancelled, SubscriptionRef: snapshot.ID}, nil
}

func (uc *cancellationUseCaseImpl) compensate(
	ctx context.Context,
	store string,
	id *verifiedIdentity,
	snapshot *subscription.Snapshot,
) (*CancelResult, error) {
	existing, err := uc.ledger.FindActiveBySubscription(ctx, store, snapshot.ID)
	switch {
	case err == nil && existing.IsActive(uc.clock.Now()):
		return uc.reuse(ctx, existing)
	case err == nil:
		if res, done, derr := uc.discardExpired(ctx, existing, id); derr != nil || done {
			return res, derr
		}
	case infra.IsKind(err, infra.KindNotFound):
	default:
		return nil, errs.Mark(err, ErrLedgerUnavailable)
	}

	storeCfg, err := uc.stores.ByAlias(store)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownStore)
	}

	result, err := uc.computeCompensation(ctx, store, snapshot)
	if err != nil {
		return nil, err
	}

	draftID, err := uc.commerce.CreateDraftOrder(ctx, store, DraftOrderInput{
		VariantID:       storeCfg.Commerce.CompensationVariantID,
		Quantity:        result.Quantity,
		Email:           snapshot.CustomerEmail,
		ShippingAddress: snapshot.ShippingAddress,
		Tags:            []string{compensationTag},
		Note:            fmt.Sprintf("Compensation for cancelling subscription %s", snapshot.ID),
	})
	if err != nil {
		return nil, uc.externalFailure(ctx, store, "create draft order", err)
	}

	rec, err := draftorder.NewRecord(store, snapshot.ID, draftID, id.cancelSessionRef, uc.clock.Now(), uc.settings.PaymentWindow)
	if err != nil {
		return nil, uc.orphaned(ctx, store, snapshot.ID, draftID, err)
	}
	if err := uc.ledger.Create(ctx, rec); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uc.yieldToConcurrent(ctx, store, snapshot.ID, draftID)
		}
		return nil, uc.orphaned(ctx, store, snapshot.ID, draftID, err)
	}

	if err := uc.commerce.SendInvoice(ctx, store, draftID); err != nil {
		return nil, uc.externalFailure(ctx, store, "send invoice for "+draftID, err)
	}

	slog.Info("compensating order issued",
		"store", store, "subscription", snapshot.ID, "draft_order", draftID, "quantity", result.Quantity)

	due := rec.PaymentDue()
	return &CancelResult{
		Outcome:         OutcomeAwaitingPayment,
		SubscriptionRef: snapshot.ID,
		DraftOrderID:    draftID,
		Quantity:        result.Quantity,
		PaymentDue:      &due,
	}, nil
}

func (uc *cancellationUseCaseImpl) reuse(ctx context.Context, rec *draftorder.Record) (*CancelResult, error) {
	if err := uc.commerce.SendInvoice(ctx, rec.Store(), rec.DraftOrderID()); err != nil {
		return nil, uc.externalFailure(ctx, rec.Store(), "resend invoice for "+rec.DraftOrderID(), err)
	}
	due := rec.PaymentDue()
	return &CancelResult{
		Outcome:         OutcomeAwaitingPayment,
		SubscriptionRef: rec.SubscriptionRef(),
		DraftOrderID:    rec.DraftOrderID(),
		PaymentDue:      &due,
		Reused:          true,
	}, nil
}

// discardExpired clears an expired record before a fresh compensating order is issued.
// If the expired order was in fact paid, the saga is finished instead and done is true.
func (uc *cancellationUseCaseImpl) discardExpired(
	ctx context.Context,
	rec *draftorder.Record,
	id *verifiedIdentity,
) (*CancelResult, bool, error) {
	status, err := uc.commerce.GetDraftOrderStatus(ctx, rec.Store(), rec.DraftOrderID())
	switch {
	case err == nil && status == DraftOrderCompleted:
		res, ferr := uc.finish(ctx, rec, id.email)
		if ferr != nil {
			return nil, true, ferr
		}
		return &CancelResult{
			Outcome:         OutcomeCancelled,
			SubscriptionRef: res.SubscriptionRef,
			DraftOrderID:    res.DraftOrderID,
		}, true, nil
	case err == nil:
		if derr := uc.commerce.DeleteDraftOrder(ctx, rec.Store(), rec.DraftOrderID()); derr != nil &&
			!infra.IsUpstreamKind(derr, infra.KindUpstreamNotFound) {
			slog.Warn("failed to delete expired draft order",
				"store", rec.Store(), "draft_order", rec.DraftOrderID(), "error", derr.Error())
		}
	case infra.IsUpstreamKind(err, infra.KindUpstreamNotFound):
	default:
		slog.Warn("failed to check expired draft order",
			"store", rec.Store(), "draft_order", rec.DraftOrderID(), "error", err.Error())
	}

	if err := uc.ledger.Delete(ctx, rec.ID()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, true, errs.Mark(err, ErrLedgerUnavailable)
	}
	return nil, false, nil
}

// yieldToConcurrent handles losing an insert race: the draft order created by this request is
// dropped and the winning request's order is re-invoiced.
func (uc *cancellationUseCaseImpl) yieldToConcurrent(ctx context.Context, store, subscriptionRef, orphanDraftID string) (*CancelResult, error) {
	slog.Warn("concurrent cancellation detected, yielding",
		"store", store, "subscription", subscriptionRef, "draft_order", orphanDraftID)

	if err := uc.commerce.DeleteDraftOrder(ctx, store, orphanDraftID); err != nil {
		uc.alert(ctx, Alert{
			Store:   store,
			Title:   "Duplicate compensating draft order",
			Message: fmt.Sprintf("draft order %s for subscription %s lost a concurrent race and could not be deleted: %v", orphanDraftID, subscriptionRef, err),
		})
	}

	winner, err := uc.ledger.FindActiveBySubscription(ctx, store, subscriptionRef)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load concurrent record"), ErrLedgerInconsistency)
	}
	return uc.reuse(ctx, winner)
}

func (uc *cancellationUseCaseImpl) computeCompensation(
	ctx context.Context,
	store string,
	snapshot *subscription.Snapshot,
) (compensation.Result, error) {
	items, err := uc.commerce.GetOrderLineItems(ctx, store, snapshot.OriginOrderID)
	if err != nil {
		return compensation.Result{}, uc.externalFailure(ctx, store, "fetch order "+snapshot.OriginOrderID, err)
	}

	linked := compensation.LinkedVariants{}
	for _, productID := range compensation.RegularProductIDs(items) {
		variants, err := uc.commerce.GetLinkedOneTimeVariants(ctx, store, productID)
		if err != nil {
			return compensation.Result{}, uc.externalFailure(ctx, store, "resolve one-time product for "+productID, err)
		}
		linked[productID] = variants
	}

	result, err := uc.calculator.Calculate(*snapshot, items, linked)
	for _, s := range result.Skipped {
		slog.Warn("line skipped from compensation",
			"store", store, "subscription", snapshot.ID, "variant", s.VariantID, "kind", s.Kind.String(), "reason", string(s.Reason))
	}
	if err != nil {
		slog.Info("compensation not computable",
			"store", store, "subscription", snapshot.ID, "quantity", result.Quantity)
		return result, errs.Mark(err, ErrUncomputableCompensation)
	}
	return result, nil
}

func (uc *cancellationUseCaseImpl) cancelSubscription(ctx context.Context, store, sessionRef, subscriptionRef string) error {
	ok, err := uc.subscriptions.CancelSubscription(ctx, store, sessionRef, subscriptionRef)
	if err != nil {
		return uc.externalFailure(ctx, store, "cancel subscription "+subscriptionRef, err)
	}
	if !ok {
		return uc.externalFailure(ctx, store, "cancel subscription "+subscriptionRef, errs.New("cancellation rejected"))
	}
	return nil
}

// afterCancellation runs the best-effort steps that follow a successful cancellation.
func (uc *cancellationUseCaseImpl) afterCancellation(ctx context.Context, notice CancellationNotice) {
	if notice.Email != "" {
		if err := uc.gate.Consume(ctx, notice.Store, notice.Email); err != nil {
			slog.Warn("failed to clear identity state",
				"store", notice.Store, "subscription", notice.SubscriptionRef, "error", err.Error())
		}
	}
	if err := uc.notifier.CancellationConfirmed(ctx, notice); err != nil {
		slog.Warn("failed to publish cancellation notice",
			"store", notice.Store, "subscription", notice.SubscriptionRef, "error", err.Error())
	}
}

// orphaned reports a draft order that exists on the storefront but has no ledger record.
func (uc *cancellationUseCaseImpl) orphaned(ctx context.Context, store, subscriptionRef, draftID string, err error) error {
	slog.Error("compensating order could not be recorded",
		"store", store, "subscription", subscriptionRef, "draft_order", draftID, "error", err.Error())
	uc.alert(ctx, Alert{
		Store:   store,
		Title:   "Orphaned compensating draft order",
		Message: fmt.Sprintf("draft order %s for subscription %s was created but could not be recorded: %v", draftID, subscriptionRef, err),
	})
	return errs.Mark(errs.Wrapf(err, "record draft order %s", draftID), ErrLedgerInconsistency)
}

func (uc *cancellationUseCaseImpl) externalFailure(ctx context.Context, store, op string, err error) error {
	slog.Error("external call failed", "store", store, "op", op, "error", err.Error())
	uc.alert(ctx, Alert{
		Store:   store,
		Title:   "Subscription cancellation failed",
		Message: fmt.Sprintf("%s: %v", op, err),
	})
	return errs.Mark(errs.Wrap(err, op), ErrExternalUnavailable)
}

func (uc *cancellationUseCaseImpl) alert(ctx context.Context, a Alert) {
	if err := uc.alerter.Alert(ctx, a); err != nil {
		slog.Warn("failed to deliver alert", "title", a.Title, "error", err.Error())
	}
}
