package draftorder

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultPaymentWindow = 72 * time.Hour

var (
	ErrMissingStore        = errors.New("store is required")
	ErrMissingSubscription = errors.New("subscription reference is required")
	ErrMissingDraftOrder   = errors.New("draft order id is required")
	ErrInvalidWindow       = errors.New("payment window must be positive")
)

// Record is an in-flight compensating order: an unpaid draft order on the commerce platform
// that must be paid before the linked subscription is cancelled.
type Record struct {
	id               uuid.UUID
	store            string
	subscriptionRef  string
	draftOrderID     string
	cancelSessionRef string
	paymentDue       time.Time
	status           Status
	message          string
	retries          int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewRecord(
	store, subscriptionRef, draftOrderID, cancelSessionRef string,
	now time.Time,
	window time.Duration,
) (*Record, error) {
	switch {
	case store == "":
		return nil, ErrMissingStore
	case subscriptionRef == "":
		return nil, ErrMissingSubscription
	case draftOrderID == "":
		return nil, ErrMissingDraftOrder
	case window <= 0:
		return nil, ErrInvalidWindow
	}

	return &Record{
		id:               uuid.New(),
		store:            store,
		subscriptionRef:  subscriptionRef,
		draftOrderID:     draftOrderID,
		cancelSessionRef: cancelSessionRef,
		paymentDue:       now.Add(window),
		status:           StatusCreated,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructRecord(
	id uuid.UUID,
	store, subscriptionRef, draftOrderID, cancelSessionRef string,
	paymentDue time.Time,
	status Status,
	message string,
	retries int,
	createdAt, updatedAt time.Time,
) *Record {
	return &Record{
		id:               id,
		store:            store,
		subscriptionRef:  subscriptionRef,
		draftOrderID:     draftOrderID,
		cancelSessionRef: cancelSessionRef,
		paymentDue:       paymentDue,
		status:           status,
		message:          message,
		retries:          retries,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// IsExpired reports whether the payment deadline has passed.
func (r *Record) IsExpired(now time.Time) bool {
	return !now.Before(r.paymentDue)
}

// IsActive is the reuse predicate: an expired record is treated as absent even while still stored.
func (r *Record) IsActive(now time.Time) bool {
	return !r.status.IsTerminal() && !r.IsExpired(now)
}

func (r *Record) MarkProcessing(now time.Time) {
	r.status = StatusProcessing
	r.updatedAt = now
}

func (r *Record) MarkCompleted(now time.Time) {
	r.status = StatusCompleted
	r.message = ""
	r.updatedAt = now
}

// RecordFailure counts a failed cleanup attempt; reaching maxRetries makes the record terminal.
func (r *Record) RecordFailure(msg string, maxRetries int, now time.Time) {
	r.retries++
	r.message = msg
	r.status = StatusError
	if maxRetries > 0 && r.retries >= maxRetries {
		r.status = StatusFailed
	}
	r.updatedAt = now
}

func (r *Record) ID() uuid.UUID            { return r.id }
func (r *Record) Store() string            { return r.store }
func (r *Record) SubscriptionRef() string  { return r.subscriptionRef }
func (r *Record) DraftOrderID() string     { return r.draftOrderID }
func (r *Record) CancelSessionRef() string { return r.cancelSessionRef }
func (r *Record) PaymentDue() time.Time    { return r.paymentDue }
func (r *Record) Status() Status           { return r.status }
func (r *Record) Message() string          { return r.message }
func (r *Record) Retries() int             { return r.retries }
func (r *Record) CreatedAt() time.Time     { return r.createdAt }
func (r *Record) UpdatedAt() time.Time     { return r.updatedAt }
