//go:build unit

package repository_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"cancel-saga/internal/domain/draftorder"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/infra/repository"
	"cancel-saga/internal/pkg/pgconv"
	repositorymock "cancel-saga/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*repository.DraftOrderRepository, *repositorymock.MockDraftOrderQueries) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockDraftOrderQueries(ctrl)
	return repository.NewDraftOrderRepository(q, slog.Default()), q
}

func newRecord(t *testing.T) *draftorder.Record {
	rec, err := draftorder.NewRecord("acme", "sub-1", "draft-1", "session-1", now, 72*time.Hour)
	require.NoError(t, err)
	return rec
}

func sampleRow(id uuid.UUID, status string) repository.DraftOrderRow {
	return repository.DraftOrderRow{
		ID:              pgconv.UUIDToPgtype(id),
		ShopAlias:       "acme",
		DraftOrder:      "draft-1",
		Subscription:    "sub-1",
		CancelSessionID: pgtype.Text{String: "session-1", Valid: true},
		PaymentDue:      pgconv.TimeToPgtype(now.Add(72 * time.Hour)),
		Status:          status,
		Message:         pgtype.Text{},
		Retries:         2,
		CreatedAt:       pgconv.TimeToPgtype(now),
		UpdatedAt:       pgconv.TimeToPgtype(now),
	}
}

// =============================================================================
// Create
// =============================================================================

func TestDraftOrderRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		returnErr  error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:       "error: active record already exists",
			returnErr:  &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: database failure",
			returnErr:  errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, q := newRepo(t)
			rec := newRecord(t)

			q.EXPECT().InsertDraftOrder(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, arg repository.InsertDraftOrderParams) error {
					assert.Equal(t, rec.ID(), pgconv.UUIDFromPgtype(arg.ID))
					assert.Equal(t, "acme", arg.ShopAlias)
					assert.Equal(t, "draft-1", arg.DraftOrder)
					assert.Equal(t, "sub-1", arg.Subscription)
					assert.Equal(t, "session-1", arg.CancelSessionID.String)
					assert.Equal(t, "CREATED", arg.Status)
					assert.True(t, arg.PaymentDue.Time.Equal(now.Add(72*time.Hour)))
					return tc.returnErr
				})

			err := repo.Create(ctx, rec)

			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind %s, got %v", tc.expectKind, err)
		})
	}
}

// =============================================================================
// Lookups
// =============================================================================

func TestDraftOrderRepository_FindActiveBySubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row is mapped onto a record", func(t *testing.T) {
		repo, q := newRepo(t)
		id := uuid.New()
		q.EXPECT().GetActiveDraftOrderBySubscription(ctx, "acme", "sub-1").Return(sampleRow(id, "ERROR"), nil)

		rec, err := repo.FindActiveBySubscription(ctx, "acme", "sub-1")

		require.NoError(t, err)
		assert.Equal(t, id, rec.ID())
		assert.Equal(t, draftorder.StatusError, rec.Status())
		assert.Equal(t, "session-1", rec.CancelSessionRef())
		assert.Equal(t, 2, rec.Retries())
		assert.Empty(t, rec.Message())
		assert.True(t, rec.PaymentDue().Equal(now.Add(72*time.Hour)))
	})

	t.Run("error: no rows maps to not found", func(t *testing.T) {
		repo, q := newRepo(t)
		q.EXPECT().GetActiveDraftOrderBySubscription(ctx, "acme", "sub-1").Return(repository.DraftOrderRow{}, pgx.ErrNoRows)

		_, err := repo.FindActiveBySubscription(ctx, "acme", "sub-1")

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("error: unknown status is rejected", func(t *testing.T) {
		repo, q := newRepo(t)
		q.EXPECT().GetActiveDraftOrderBySubscription(ctx, "acme", "sub-1").Return(sampleRow(uuid.New(), "UNPROCESSED"), nil)

		_, err := repo.FindActiveBySubscription(ctx, "acme", "sub-1")

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestDraftOrderRepository_FindByDraftOrder(t *testing.T) {
	ctx := context.Background()
	repo, q := newRepo(t)
	q.EXPECT().GetDraftOrderByDraftOrder(ctx, "acme", "draft-404").Return(repository.DraftOrderRow{}, pgx.ErrNoRows)

	_, err := repo.FindByDraftOrder(ctx, "acme", "draft-404")

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestDraftOrderRepository_ListExpired(t *testing.T) {
	ctx := context.Background()
	repo, q := newRepo(t)

	q.EXPECT().ListExpiredDraftOrders(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg repository.ListExpiredDraftOrdersParams) ([]repository.DraftOrderRow, error) {
			assert.Equal(t, "acme", arg.ShopAlias)
			assert.Equal(t, []string{"CREATED", "ERROR", "COMPLETED"}, arg.Statuses)
			assert.True(t, arg.Now.Time.Equal(now))
			assert.True(t, arg.StaleBefore.Time.Equal(now.Add(-10*time.Minute)))
			return []repository.DraftOrderRow{sampleRow(uuid.New(), "CREATED"), sampleRow(uuid.New(), "ERROR")}, nil
		})

	recs, err := repo.ListExpired(ctx, "acme", draftorder.ReapableStatuses(), now, now.Add(-10*time.Minute))

	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

// =============================================================================
// Writes
// =============================================================================

func TestDraftOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success: failure details are persisted", func(t *testing.T) {
		repo, q := newRepo(t)
		rec := newRecord(t)
		rec.RecordFailure("502 bad gateway", 5, now.Add(time.Minute))

		q.EXPECT().UpdateDraftOrderStatus(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg repository.UpdateDraftOrderStatusParams) (int64, error) {
				assert.Equal(t, "ERROR", arg.Status)
				assert.Equal(t, "502 bad gateway", arg.Message.String)
				assert.Equal(t, int32(1), arg.Retries)
				return 1, nil
			})

		assert.NoError(t, repo.UpdateStatus(ctx, rec))
	})

	t.Run("error: missing row", func(t *testing.T) {
		repo, q := newRepo(t)
		q.EXPECT().UpdateDraftOrderStatus(ctx, gomock.Any()).Return(int64(0), nil)

		err := repo.UpdateStatus(ctx, newRecord(t))

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestDraftOrderRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, q := newRepo(t)
		id := uuid.New()
		q.EXPECT().DeleteDraftOrder(ctx, pgconv.UUIDToPgtype(id)).Return(int64(1), nil)

		assert.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("error: already deleted", func(t *testing.T) {
		repo, q := newRepo(t)
		q.EXPECT().DeleteDraftOrder(ctx, gomock.Any()).Return(int64(0), nil)

		err := repo.Delete(ctx, uuid.New())

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("error: database failure", func(t *testing.T) {
		repo, q := newRepo(t)
		q.EXPECT().DeleteDraftOrder(ctx, gomock.Any()).Return(int64(0), errors.New("connection reset"))

		err := repo.Delete(ctx, uuid.New())

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
