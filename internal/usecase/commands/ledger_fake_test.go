//go:build unit

package commands_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/infra"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// memLedger mirrors the draft_orders table, including its unique constraints.
type memLedger struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*draftorder.Record

	createErr    error
	updateErr    error
	deleteErr    error
	beforeCreate func()
	deletes      int
}

func newMemLedger() *memLedger {
	return &memLedger{rows: map[uuid.UUID]*draftorder.Record{}}
}

func clone(r *draftorder.Record) *draftorder.Record {
	return draftorder.ReconstructRecord(
		r.ID(), r.Store(), r.SubscriptionRef(), r.DraftOrderID(), r.CancelSessionRef(),
		r.PaymentDue(), r.Status(), r.Message(), r.Retries(), r.CreatedAt(), r.UpdatedAt(),
	)
}

func (l *memLedger) Create(_ context.Context, rec *draftorder.Record) error {
	if l.beforeCreate != nil {
		l.beforeCreate()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.createErr != nil {
		return l.createErr
	}
	for _, r := range l.rows {
		sameDraft := r.Store() == rec.Store() && r.DraftOrderID() == rec.DraftOrderID()
		sameActive := r.Store() == rec.Store() && r.SubscriptionRef() == rec.SubscriptionRef() &&
			r.Status() != draftorder.StatusFailed
		if sameDraft || sameActive {
			return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, "draft order already recorded", nil)
		}
	}
	l.rows[rec.ID()] = clone(rec)
	return nil
}

func (l *memLedger) FindActiveBySubscription(_ context.Context, store, subscriptionRef string) (*draftorder.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.rows {
		if r.Store() == store && r.SubscriptionRef() == subscriptionRef && r.Status() != draftorder.StatusFailed {
			return clone(r), nil
		}
	}
	return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "draft order not found", nil)
}

func (l *memLedger) FindByDraftOrder(_ context.Context, store, draftOrderID string) (*draftorder.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.rows {
		if r.Store() == store && r.DraftOrderID() == draftOrderID {
			return clone(r), nil
		}
	}
	return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "draft order not found", nil)
}

func (l *memLedger) ListExpired(_ context.Context, store string, statuses []draftorder.Status, now, staleBefore time.Time) ([]*draftorder.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*draftorder.Record
	for _, r := range l.rows {
		stale := r.Status() == draftorder.StatusProcessing && !r.UpdatedAt().After(staleBefore)
		if r.Store() == store && (lo.Contains(statuses, r.Status()) || stale) && r.IsExpired(now) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDue().Before(out[j].PaymentDue()) })
	return out, nil
}

func (l *memLedger) UpdateStatus(_ context.Context, rec *draftorder.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.updateErr != nil {
		return l.updateErr
	}
	if _, ok := l.rows[rec.ID()]; !ok {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "draft order not found", nil)
	}
	l.rows[rec.ID()] = clone(rec)
	return nil
}

func (l *memLedger) Delete(_ context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.deleteErr != nil {
		return l.deleteErr
	}
	if _, ok := l.rows[id]; !ok {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "draft order not found", nil)
	}
	delete(l.rows, id)
	l.deletes++
	return nil
}

func (l *memLedger) put(rec *draftorder.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows[rec.ID()] = clone(rec)
}

func (l *memLedger) all() []*draftorder.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo.Map(lo.Values(l.rows), func(r *draftorder.Record, _ int) *draftorder.Record { return clone(r) })
}

func (l *memLedger) get(id uuid.UUID) (*draftorder.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.rows[id]
	if !ok {
		return nil, false
	}
	return clone(r), true
}
