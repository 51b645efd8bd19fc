package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                    string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName             string    `gorm:"type:varchar(100);not null"`
	PeriodType              string    `gorm:"type:varchar(20);not null"`
	Price                   float64   `gorm:"type:numeric(10,2);not null"`
	ChatRequestsDaily       int       `gorm:"not null"`
	ImageGenerationsMonthly int       `gorm:"not null"`
	ToolCardsMonthly        int       `gorm:"not null"`
	Description             *string   `gorm:"type:text"`
	IsActive                bool      `gorm:"default:true"`
	IsTrial                 bool      `gorm:"default:false"`
	TrialDurationDays       *int
	CreatedAt               time.Time `gorm:"autoCreateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id                            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                        uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                        uuid.UUID `gorm:"type:uuid;not null"`
	Status                        string    `gorm:"type:varchar(20);not null"`
	CurrentPeriodStart            time.Time `gorm:"not null"`
	CurrentPeriodEnd              time.Time `gorm:"not null;index"`
	CancelAtPeriodEnd             bool      `gorm:"default:false"`
	PaymentProvider               *string   `gorm:"type:varchar(50)"`
	PaymentProviderSubscriptionId *string   `gorm:"type:varchar(255)"`
	CreatedAt                     time.Time `gorm:"autoCreateTime"`
	UpdatedAt                     time.Time `gorm:"autoUpdateTime"`

	Plan *SubscriptionPlan `gorm:"foreignKey:PlanId"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

type Payment struct {
	Id                       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                   *uuid.UUID `gorm:"type:uuid;index"`
	SubscriptionId           *uuid.UUID `gorm:"type:uuid"`
	Amount                   float64    `gorm:"type:numeric(10,2);not null"`
	Currency                 string     `gorm:"type:varchar(3);not null;default:'RUB'"`
	Status                   string     `gorm:"type:varchar(20);not null"`
	PaymentProvider          string     `gorm:"type:varchar(50);not null"`
	PaymentProviderPaymentId *string    `gorm:"type:varchar(255);index"`
	CreatedAt                time.Time  `gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
