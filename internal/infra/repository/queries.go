package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DraftOrderRow struct {
	ID              pgtype.UUID
	ShopAlias       string
	DraftOrder      string
	Subscription    string
	CancelSessionID pgtype.Text
	PaymentDue      pgtype.Timestamptz
	Status          string
	Message         pgtype.Text
	Retries         int32
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type InsertDraftOrderParams struct {
	ID              pgtype.UUID
	ShopAlias       string
	DraftOrder      string
	Subscription    string
	CancelSessionID pgtype.Text
	PaymentDue      pgtype.Timestamptz
	Status          string
	CreatedAt       pgtype.Timestamptz
}

type UpdateDraftOrderStatusParams struct {
	ID        pgtype.UUID
	Status    string
	Message   pgtype.Text
	Retries   int32
	UpdatedAt pgtype.Timestamptz
}

type ListExpiredDraftOrdersParams struct {
	ShopAlias   string
	Statuses    []string
	Now         pgtype.Timestamptz
	StaleBefore pgtype.Timestamptz
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const draftOrderColumns = `id, shop_alias, draft_order, subscription, cancel_session_id,
	payment_due, status, message, retries, created_at, updated_at`

func scanDraftOrder(row pgx.Row) (DraftOrderRow, error) {
	var r DraftOrderRow
	err := row.Scan(
		&r.ID, &r.ShopAlias, &r.DraftOrder, &r.Subscription, &r.CancelSessionID,
		&r.PaymentDue, &r.Status, &r.Message, &r.Retries, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const insertDraftOrder = `
INSERT INTO draft_orders (id, shop_alias, draft_order, subscription, cancel_session_id, payment_due, status, retries, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $8)`

func (q *Queries) InsertDraftOrder(ctx context.Context, arg InsertDraftOrderParams) error {
	_, err := q.db.Exec(ctx, insertDraftOrder,
		arg.ID, arg.ShopAlias, arg.DraftOrder, arg.Subscription, arg.CancelSessionID,
		arg.PaymentDue, arg.Status, arg.CreatedAt,
	)
	return err
}

const getActiveDraftOrderBySubscription = `
SELECT ` + draftOrderColumns + `
FROM draft_orders
WHERE shop_alias = $1 AND subscription = $2 AND status <> 'FAILED'
LIMIT 1`

func (q *Queries) GetActiveDraftOrderBySubscription(ctx context.Context, shopAlias, subscription string) (DraftOrderRow, error) {
	return scanDraftOrder(q.db.QueryRow(ctx, getActiveDraftOrderBySubscription, shopAlias, subscription))
}

const getDraftOrderByDraftOrder = `
SELECT ` + draftOrderColumns + `
FROM draft_orders
WHERE shop_alias = $1 AND draft_order = $2`

func (q *Queries) GetDraftOrderByDraftOrder(ctx context.Context, shopAlias, draftOrder string) (DraftOrderRow, error) {
	return scanDraftOrder(q.db.QueryRow(ctx, getDraftOrderByDraftOrder, shopAlias, draftOrder))
}

const listExpiredDraftOrders = `
SELECT ` + draftOrderColumns + `
FROM draft_orders
WHERE shop_alias = $1
  AND payment_due <= $3
  AND (status = ANY($2::text[]) OR (status = 'PROCESSING' AND updated_at <= $4))
ORDER BY payment_due`

func (q *Queries) ListExpiredDraftOrders(ctx context.Context, arg ListExpiredDraftOrdersParams) ([]DraftOrderRow, error) {
	rows, err := q.db.Query(ctx, listExpiredDraftOrders, arg.ShopAlias, arg.Statuses, arg.Now, arg.StaleBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DraftOrderRow
	for rows.Next() {
		r, err := scanDraftOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const updateDraftOrderStatus = `
UPDATE draft_orders
SET status = $2, message = $3, retries = $4, updated_at = $5
WHERE id = $1`

func (q *Queries) UpdateDraftOrderStatus(ctx context.Context, arg UpdateDraftOrderStatusParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateDraftOrderStatus, arg.ID, arg.Status, arg.Message, arg.Retries, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteDraftOrder = `DELETE FROM draft_orders WHERE id = $1`

func (q *Queries) DeleteDraftOrder(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteDraftOrder, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
