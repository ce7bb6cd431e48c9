package request

import (
	"strings"

	"cancel-saga/internal/pkg/otp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type CancelSubscriptionRequest struct {
	Email        string `json:"email" binding:"required,email,max=254"`
	Token        string `json:"token" binding:"required,otp"`
	Subscription string `json:"subscription" binding:"required,max=128"`
}

type ValidateTokenRequest struct {
	CancelSubscriptionRequest
	CancelSessionID string `json:"cancelSessionId" binding:"required,max=128"`
}

type PaidWebhookRequest struct {
	Shop       string `json:"shop" binding:"required"`
	ShopAlias  string `json:"shopAlias" binding:"required"`
	DraftOrder string `json:"draftOrder" binding:"required"`
}

func (r CancelSubscriptionRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

// RegisterValidators adds the custom tags used by these DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
		return otp.WellFormed(fl.Field().String())
	})
}
