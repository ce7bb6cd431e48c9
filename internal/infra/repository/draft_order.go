package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

//go:generate mockgen -source=draft_order.go -destination=../../../tests/mock/repository/draft_order_mock.go -package=mock_repository

type DraftOrderQueries interface {
	InsertDraftOrder(ctx context.Context, arg InsertDraftOrderParams) error
	GetActiveDraftOrderBySubscription(ctx context.Context, shopAlias, subscription string) (DraftOrderRow, error)
	GetDraftOrderByDraftOrder(ctx context.Context, shopAlias, draftOrder string) (DraftOrderRow, error)
	ListExpiredDraftOrders(ctx context.Context, arg ListExpiredDraftOrdersParams) ([]DraftOrderRow, error)
	UpdateDraftOrderStatus(ctx context.Context, arg UpdateDraftOrderStatusParams) (int64, error)
	DeleteDraftOrder(ctx context.Context, id pgtype.UUID) (int64, error)
}

type DraftOrderRepository struct {
	queries DraftOrderQueries
	logger  *slog.Logger
}

func NewDraftOrderRepository(queries DraftOrderQueries, logger *slog.Logger) *DraftOrderRepository {
	return &DraftOrderRepository{
		queries: queries,
		logger:  logger.With(slog.String("repository", "draft_orders")),
	}
}

func (r *DraftOrderRepository) wrap(msg string, err error) error {
	return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), msg, err)
}

func (r *DraftOrderRepository) Create(ctx context.Context, rec *draftorder.Record) error {
	err := r.queries.InsertDraftOrder(ctx, InsertDraftOrderParams{
		ID:              pgconv.UUIDToPgtype(rec.ID()),
		ShopAlias:       rec.Store(),
		DraftOrder:      rec.DraftOrderID(),
		Subscription:    rec.SubscriptionRef(),
		CancelSessionID: pgconv.StringToPgtype(rec.CancelSessionRef()),
		PaymentDue:      pgconv.TimeToPgtype(rec.PaymentDue()),
		Status:          rec.Status().String(),
		CreatedAt:       pgconv.TimeToPgtype(rec.CreatedAt()),
	})
	if err != nil {
		return r.wrap("failed to create draft order record", err)
	}
	return nil
}

func (r *DraftOrderRepository) FindActiveBySubscription(ctx context.Context, store, subscriptionRef string) (*draftorder.Record, error) {
	row, err := r.queries.GetActiveDraftOrderBySubscription(ctx, store, subscriptionRef)
	if err != nil {
		return nil, r.wrap("failed to find draft order by subscription", err)
	}
	return r.toRecord(row)
}

func (r *DraftOrderRepository) FindByDraftOrder(ctx context.Context, store, draftOrderID string) (*draftorder.Record, error) {
	row, err := r.queries.GetDraftOrderByDraftOrder(ctx, store, draftOrderID)
	if err != nil {
		return nil, r.wrap("failed to find draft order", err)
	}
	return r.toRecord(row)
}

func (r *DraftOrderRepository) ListExpired(
	ctx context.Context,
	store string,
	statuses []draftorder.Status,
	now, staleBefore time.Time,
) ([]*draftorder.Record, error) {
	rows, err := r.queries.ListExpiredDraftOrders(ctx, ListExpiredDraftOrdersParams{
		ShopAlias:   store,
		Statuses:    lo.Map(statuses, func(s draftorder.Status, _ int) string { return s.String() }),
		Now:         pgconv.TimeToPgtype(now),
		StaleBefore: pgconv.TimeToPgtype(staleBefore),
	})
	if err != nil {
		return nil, r.wrap("failed to list expired draft orders", err)
	}

	records := make([]*draftorder.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := r.toRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *DraftOrderRepository) UpdateStatus(ctx context.Context, rec *draftorder.Record) error {
	affected, err := r.queries.UpdateDraftOrderStatus(ctx, UpdateDraftOrderStatusParams{
		ID:        pgconv.UUIDToPgtype(rec.ID()),
		Status:    rec.Status().String(),
		Message:   pgconv.StringToPgtype(rec.Message()),
		Retries:   int32(rec.Retries()),
		UpdatedAt: pgconv.TimeToPgtype(rec.UpdatedAt()),
	})
	if err != nil {
		return r.wrap("failed to update draft order status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "draft order record not found", nil)
	}
	return nil
}

func (r *DraftOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.queries.DeleteDraftOrder(ctx, pgconv.UUIDToPgtype(id))
	if err != nil {
		return r.wrap("failed to delete draft order record", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "draft order record not found", nil)
	}
	return nil
}

func (r *DraftOrderRepository) toRecord(row DraftOrderRow) (*draftorder.Record, error) {
	status := draftorder.Status(row.Status)
	if !status.IsValid() {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, fmt.Sprintf("unknown draft order status %q", row.Status), nil)
	}
	return draftorder.ReconstructRecord(
		pgconv.UUIDFromPgtype(row.ID),
		row.ShopAlias,
		row.Subscription,
		row.DraftOrder,
		pgconv.StringFromPgtype(row.CancelSessionID),
		pgconv.TimeFromPgtype(row.PaymentDue),
		status,
		pgconv.StringFromPgtype(row.Message),
		int(row.Retries),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
