package response

import (
	"time"

	"cancel-saga/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type CancellationResponse struct {
	Message         string     `json:"message"`
	Outcome         string     `json:"outcome"`
	SubscriptionRef string     `json:"subscription"`
	DraftOrderID    string     `json:"draftOrder,omitempty"`
	Quantity        int64      `json:"quantity,omitempty"`
	PaymentDue      *time.Time `json:"paymentDue,omitempty"`
	Reused          bool       `json:"reused,omitempty"`
}

type CompletionResponse struct {
	Message         string    `json:"message"`
	SubscriptionRef string    `json:"subscription"`
	DraftOrderID    string    `json:"draftOrder"`
	CancelledAt     time.Time `json:"cancelledAt"`
}

func FromCancelResult(r *commands.CancelResult) (*CancellationResponse, error) {
	resp := &CancellationResponse{}
	if err := copier.Copy(resp, r); err != nil {
		return nil, err
	}
	resp.Outcome = string(r.Outcome)
	switch r.Outcome {
	case commands.OutcomeCancelled:
		resp.Message = "Subscription cancelled"
	case commands.OutcomeAwaitingPayment:
		resp.Message = "Invoice sent, subscription will be cancelled once it is paid"
	}
	return resp, nil
}

func FromCompleteResult(r *commands.CompleteResult) (*CompletionResponse, error) {
	resp := &CompletionResponse{Message: "Subscription cancelled"}
	if err := copier.Copy(resp, r); err != nil {
		return nil, err
	}
	return resp, nil
}
