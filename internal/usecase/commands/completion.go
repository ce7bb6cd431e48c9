package commands

import (
	"context"
	"fmt"
	"log/slog"

	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/pkg/errs"
)

func (uc *cancellationUseCaseImpl) Complete(ctx context.Context, store, draftOrderID string) (*CompleteResult, error) {
	if _, err := uc.stores.ByAlias(store); err != nil {
		return nil, errs.Mark(err, ErrUnknownStore)
	}

	rec, err := uc.ledger.FindByDraftOrder(ctx, store, draftOrderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCompensatingOrderNotFound)
		}
		return nil, errs.Mark(err, ErrLedgerUnavailable)
	}

	snapshot, err := uc.subscriptions.GetSubscription(ctx, store, rec.SubscriptionRef())
	if err != nil {
		return nil, uc.externalFailure(ctx, store, "fetch subscription "+rec.SubscriptionRef(), err)
	}
	return uc.finish(ctx, rec, snapshot.CustomerEmail)
}

// finish cancels the subscription behind a paid compensating order and clears its record.
// The record stays in place when the cancellation fails so a later delivery can retry.
func (uc *cancellationUseCaseImpl) finish(ctx context.Context, rec *draftorder.Record, email string) (*CompleteResult, error) {
	if err := uc.cancelSubscription(ctx, rec.Store(), rec.CancelSessionRef(), rec.SubscriptionRef()); err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	cleared := true
	if err := uc.ledger.Delete(ctx, rec.ID()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
		cleared = false
		slog.Error("failed to clear compensating order record",
			"store", rec.Store(), "draft_order", rec.DraftOrderID(), "error", err.Error())
		uc.alert(ctx, Alert{
			Store:   rec.Store(),
			Title:   "Stale compensating order record",
			Message: fmt.Sprintf("subscription %s is cancelled but record for draft order %s could not be deleted: %v", rec.SubscriptionRef(), rec.DraftOrderID(), err),
		})
	}

	uc.afterCancellation(ctx, CancellationNotice{
		Store:           rec.Store(),
		Email:           email,
		SubscriptionRef: rec.SubscriptionRef(),
		DraftOrderID:    rec.DraftOrderID(),
		CancelledAt:     now,
	})

	slog.Info("subscription cancelled after payment",
		"store", rec.Store(), "subscription", rec.SubscriptionRef(), "draft_order", rec.DraftOrderID())

	return &CompleteResult{
		SubscriptionRef: rec.SubscriptionRef(),
		DraftOrderID:    rec.DraftOrderID(),
		CancelledAt:     now,
		LedgerCleared:   cleared,
	}, nil
}
