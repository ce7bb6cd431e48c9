//go:build unit

package draftorder_test

import (
	"testing"
	"time"

	"cancel-saga/internal/domain/draftorder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewRecord(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		r, err := draftorder.NewRecord("acme", "sub-1", "gid://shopify/DraftOrder/9", "session-1", now, draftorder.DefaultPaymentWindow)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, draftorder.StatusCreated, r.Status())
		assert.Equal(t, now.Add(72*time.Hour), r.PaymentDue())
		assert.Equal(t, 0, r.Retries())
		assert.Equal(t, r.CreatedAt(), r.UpdatedAt())
	})

	tests := []struct {
		name   string
		store  string
		sub    string
		draft  string
		window time.Duration
		errIs  error
	}{
		{name: "missing store", sub: "s", draft: "d", window: time.Hour, errIs: draftorder.ErrMissingStore},
		{name: "missing subscription", store: "a", draft: "d", window: time.Hour, errIs: draftorder.ErrMissingSubscription},
		{name: "missing draft order", store: "a", sub: "s", window: time.Hour, errIs: draftorder.ErrMissingDraftOrder},
		{name: "zero window", store: "a", sub: "s", draft: "d", errIs: draftorder.ErrInvalidWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := draftorder.NewRecord(tt.store, tt.sub, tt.draft, "", now, tt.window)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestRecord_Activity(t *testing.T) {
	r, err := draftorder.NewRecord("acme", "sub-1", "d-1", "", now, time.Hour)
	require.NoError(t, err)

	assert.True(t, r.IsActive(now))
	assert.True(t, r.IsActive(now.Add(59*time.Minute)))
	assert.False(t, r.IsActive(now.Add(time.Hour)), "deadline instant counts as expired")
	assert.True(t, r.IsExpired(now.Add(2*time.Hour)))

	r.RecordFailure("boom", 1, now)
	assert.Equal(t, draftorder.StatusFailed, r.Status())
	assert.False(t, r.IsActive(now), "terminal records are never active")
}

func TestRecord_RecordFailure(t *testing.T) {
	r, err := draftorder.NewRecord("acme", "sub-1", "d-1", "", now, time.Hour)
	require.NoError(t, err)

	r.MarkProcessing(now)
	assert.Equal(t, draftorder.StatusProcessing, r.Status())

	r.RecordFailure("timeout", 3, now.Add(time.Minute))
	assert.Equal(t, draftorder.StatusError, r.Status())
	assert.Equal(t, 1, r.Retries())
	assert.Equal(t, "timeout", r.Message())

	r.RecordFailure("timeout", 3, now)
	r.RecordFailure("still failing", 3, now)
	assert.Equal(t, draftorder.StatusFailed, r.Status())
	assert.Equal(t, 3, r.Retries())

	unbounded, _ := draftorder.NewRecord("acme", "sub-2", "d-2", "", now, time.Hour)
	for range 10 {
		unbounded.RecordFailure("x", 0, now)
	}
	assert.Equal(t, draftorder.StatusError, unbounded.Status(), "maxRetries <= 0 disables the cap")
}

func TestReapableStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]draftorder.Status{draftorder.StatusCreated, draftorder.StatusError, draftorder.StatusCompleted},
		draftorder.ReapableStatuses())
	assert.False(t, draftorder.StatusProcessing.IsTerminal())
	assert.True(t, draftorder.StatusFailed.IsValid())
	assert.False(t, draftorder.Status("PAID").IsValid())
}
