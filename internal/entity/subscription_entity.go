package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string

const (
	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	PlanPeriodMonthly = "monthly"
	PlanPeriodYearly  = "yearly"
	PlanPeriodTrial   = "trial"
)

type SubscriptionPlan struct {
	Id                       uuid.UUID
	Name                     string
	DisplayName              string
	PeriodType               string
	Price                    float64
	ChatRequestsDaily        int
	ImageGenerationsMonthly  int
	ToolCardsMonthly         int
	Description              *string
	IsActive                 bool
	IsTrial                  bool
	TrialDurationDays        *int
	CreatedAt                time.Time
}

type UserSubscription struct {
	Id                            uuid.UUID
	UserId                        uuid.UUID
	PlanId                        uuid.UUID
	Status                        SubscriptionStatus
	CurrentPeriodStart            time.Time
	CurrentPeriodEnd              time.Time
	CancelAtPeriodEnd             bool
	PaymentProvider               *string
	PaymentProviderSubscriptionId *string
	CreatedAt                     time.Time
	UpdatedAt                     time.Time

	Plan *SubscriptionPlan
}

type Payment struct {
	Id                       uuid.UUID
	UserId                   *uuid.UUID
	SubscriptionId           *uuid.UUID
	Amount                   float64
	Currency                 string
	Status                   PaymentStatus
	PaymentProvider          string
	PaymentProviderPaymentId *string
	CreatedAt                time.Time
}
