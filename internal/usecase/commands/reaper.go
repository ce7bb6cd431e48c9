package commands

//go:generate mockgen -source=reaper.go -destination=../../../tests/mock/commands/reaper_mock.go -package=mock_commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/pkg/errs"
)

var (
	ErrReapInProgress  = errs.New("cleanup pass already running for store")
	ErrLockUnavailable = errs.New("cleanup lock unavailable")
)

type ReapReport struct {
	Store   string `json:"store"`
	Scanned int    `json:"scanned"`
	Deleted int    `json:"deleted"`
	// SkippedPaid counts records whose draft order had already been paid; only the record was removed.
	SkippedPaid int `json:"skippedPaid"`
	Failed      int `json:"failed"`
	// Exhausted counts records that reached the retry cap during this pass and are now FAILED.
	Exhausted int `json:"exhausted"`
}

type ReaperCommands interface {
	Reap(ctx context.Context, store string) (*ReapReport, error)
	ReapAll(ctx context.Context) ([]*ReapReport, error)
}

type reaperUseCaseImpl struct {
	commerce CommerceClient
	ledger   DraftOrderLedger
	locker   PassLocker
	alerter  Alerter
	stores   StoreDirectory
	clock    clock.Clock
	settings SagaSettings
}

func NewReaperUseCase(
	commerce CommerceClient,
	ledger DraftOrderLedger,
	locker PassLocker,
	alerter Alerter,
	stores StoreDirectory,
	clk clock.Clock,
	settings SagaSettings,
) ReaperCommands {
	return &reaperUseCaseImpl{
		commerce: commerce,
		ledger:   ledger,
		locker:   locker,
		alerter:  alerter,
		stores:   stores,
		clock:    clk,
		settings: settings,
	}
}

func (uc *reaperUseCaseImpl) Reap(ctx context.Context, store string) (*ReapReport, error) {
	if _, err := uc.stores.ByAlias(store); err != nil {
		return nil, errs.Mark(err, ErrUnknownStore)
	}

	unlock, acquired, err := uc.locker.TryLock(ctx, "reaper:"+store)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "acquire cleanup lock"), ErrLockUnavailable)
	}
	if !acquired {
		return nil, ErrReapInProgress
	}
	defer unlock()

	now := uc.clock.Now()
	records, err := uc.ledger.ListExpired(ctx, store, draftorder.ReapableStatuses(), now, now.Add(-uc.settings.ReaperStaleAfter))
	if err != nil {
		return nil, errs.Mark(err, ErrLedgerUnavailable)
	}

	report := &ReapReport{Store: store, Scanned: len(records)}
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		uc.reapOne(ctx, rec, report)
	}

	slog.Info("cleanup pass finished",
		"store", store,
		"scanned", report.Scanned,
		"deleted", report.Deleted,
		"skipped_paid", report.SkippedPaid,
		"failed", report.Failed,
		"exhausted", report.Exhausted,
	)
	return report, ctx.Err()
}

// ReapAll runs a pass for every configured store; one store failing does not stop the others.
func (uc *reaperUseCaseImpl) ReapAll(ctx context.Context) ([]*ReapReport, error) {
	var (
		reports []*ReapReport
		errList []error
	)
	for _, store := range uc.stores.Aliases() {
		report, err := uc.Reap(ctx, store)
		if err != nil {
			slog.Warn("cleanup pass skipped", "store", store, "error", err.Error())
			errList = append(errList, fmt.Errorf("%s: %w", store, err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errList...)
}

// reapOne moves a record through PROCESSING and COMPLETED before deleting it, so a pass that
// dies midway leaves the record reapable by the next one.
func (uc *reaperUseCaseImpl) reapOne(ctx context.Context, rec *draftorder.Record, report *ReapReport) {
	if rec.Status() != draftorder.StatusCompleted {
		rec.MarkProcessing(uc.clock.Now())
		if err := uc.ledger.UpdateStatus(ctx, rec); err != nil {
			uc.fail(ctx, rec, report, errs.Wrap(err, "mark processing"))
			return
		}

		paid, err := uc.removeDraftOrder(ctx, rec)
		if err != nil {
			uc.fail(ctx, rec, report, err)
			return
		}
		if paid {
			report.SkippedPaid++
			uc.paidAfterDeadline(ctx, rec)
		}

		rec.MarkCompleted(uc.clock.Now())
		if err := uc.ledger.UpdateStatus(ctx, rec); err != nil {
			uc.fail(ctx, rec, report, errs.Wrap(err, "mark completed"))
			return
		}
	}

	if err := uc.ledger.Delete(ctx, rec.ID()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
		uc.fail(ctx, rec, report, errs.Wrap(err, "delete record"))
		return
	}
	report.Deleted++
}

// removeDraftOrder deletes the draft order on the storefront unless it has been paid.
// A draft order that no longer exists counts as removed.
func (uc *reaperUseCaseImpl) removeDraftOrder(ctx context.Context, rec *draftorder.Record) (paid bool, err error) {
	status, err := uc.commerce.GetDraftOrderStatus(ctx, rec.Store(), rec.DraftOrderID())
	if err != nil {
		if infra.IsUpstreamKind(err, infra.KindUpstreamNotFound) {
			return false, nil
		}
		return false, errs.Wrap(err, "check draft order status")
	}
	if status == DraftOrderCompleted {
		return true, nil
	}

	if err := uc.commerce.DeleteDraftOrder(ctx, rec.Store(), rec.DraftOrderID()); err != nil &&
		!infra.IsUpstreamKind(err, infra.KindUpstreamNotFound) {
		return false, errs.Wrap(err, "delete draft order")
	}
	return false, nil
}

// paidAfterDeadline reports a draft order paid after its record expired. The record is removed
// anyway, so the subscription has to be cancelled by hand.
func (uc *reaperUseCaseImpl) paidAfterDeadline(ctx context.Context, rec *draftorder.Record) {
	slog.Warn("expired compensating order was paid, keeping it on the storefront",
		"store", rec.Store(), "draft_order", rec.DraftOrderID(), "subscription", rec.SubscriptionRef())

	if err := uc.alerter.Alert(ctx, Alert{
		Store: rec.Store(),
		Title: "Compensating order paid after its deadline",
		Message: fmt.Sprintf("draft order %s was paid after %s; subscription %s (cancel session %s) was not cancelled and needs manual cancellation",
			rec.DraftOrderID(), rec.PaymentDue().Format(time.RFC3339), rec.SubscriptionRef(), rec.CancelSessionRef()),
	}); err != nil {
		slog.Warn("failed to deliver alert", "draft_order", rec.DraftOrderID(), "error", err.Error())
	}
}

func (uc *reaperUseCaseImpl) fail(ctx context.Context, rec *draftorder.Record, report *ReapReport, cause error) {
	report.Failed++
	rec.RecordFailure(cause.Error(), uc.settings.ReaperMaxRetries, uc.clock.Now())

	slog.Warn("cleanup of compensating order failed",
		"store", rec.Store(),
		"draft_order", rec.DraftOrderID(),
		"retries", rec.Retries(),
		"status", rec.Status().String(),
		"error", cause.Error(),
	)

	if err := uc.ledger.UpdateStatus(ctx, rec); err != nil {
		slog.Error("failed to record cleanup failure",
			"store", rec.Store(), "draft_order", rec.DraftOrderID(), "error", err.Error())
	}

	if rec.Status() == draftorder.StatusFailed {
		report.Exhausted++
		if err := uc.alerter.Alert(ctx, Alert{
			Store:   rec.Store(),
			Title:   "Compensating order cleanup gave up",
			Message: fmt.Sprintf("draft order %s for subscription %s failed cleanup %d times: %v", rec.DraftOrderID(), rec.SubscriptionRef(), rec.Retries(), cause),
		}); err != nil {
			slog.Warn("failed to deliver alert", "draft_order", rec.DraftOrderID(), "error", err.Error())
		}
	}
}
