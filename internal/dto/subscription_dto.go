package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	DisplayName             string    `json:"display_name"`
	PeriodType              string    `json:"period_type"`
	Price                   float64   `json:"price"`
	ChatRequestsDaily       int       `json:"chat_requests_daily"`
	ImageGenerationsMonthly int       `json:"image_generations_monthly"`
	ToolCardsMonthly        int       `json:"tool_cards_monthly"`
	Description             *string   `json:"description,omitempty"`
	IsTrial                 bool      `json:"is_trial"`
	TrialDurationDays       *int      `json:"trial_duration_days,omitempty"`
}

type CreatePlanRequest struct {
	Name                    string  `json:"name" validate:"required,max=100"`
	DisplayName             string  `json:"display_name" validate:"required,max=200"`
	PeriodType              string  `json:"period_type" validate:"required,oneof=monthly yearly trial"`
	Price                   float64 `json:"price" validate:"gte=0"`
	ChatRequestsDaily       int     `json:"chat_requests_daily" validate:"gte=0"`
	ImageGenerationsMonthly int     `json:"image_generations_monthly" validate:"gte=0"`
	ToolCardsMonthly        int     `json:"tool_cards_monthly" validate:"gte=0"`
	Description             *string `json:"description,omitempty"`
	IsTrial                 bool    `json:"is_trial"`
	TrialDurationDays       *int    `json:"trial_duration_days,omitempty"`
}

type SubscribeRequest struct {
	PlanId                        uuid.UUID `json:"plan_id" validate:"required"`
	PaymentProvider               *string   `json:"payment_provider,omitempty"`
	PaymentProviderSubscriptionId *string   `json:"payment_provider_subscription_id,omitempty"`
}

type SubscriptionResponse struct {
	Id                 uuid.UUID `json:"id"`
	PlanId             uuid.UUID `json:"plan_id"`
	PlanName           string    `json:"plan_name,omitempty"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	CreatedAt          time.Time `json:"created_at"`
}

// MyLimitsResponse covers all three allowance kinds. Only chat messages
// are gated; image and tool numbers are informational.
type MyLimitsResponse struct {
	Chat   LimitsResponse      `json:"chat"`
	Images MonthlyUsageSummary `json:"images"`
	Tools  MonthlyUsageSummary `json:"tools"`
}

type MonthlyUsageSummary struct {
	MonthlyLimit int `json:"monthly_limit"`
	UsedThisMonth int `json:"used_this_month"`
}

type CheckoutRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty"`
}

type CheckoutResponse struct {
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	SnapToken       string    `json:"snap_token"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
}
