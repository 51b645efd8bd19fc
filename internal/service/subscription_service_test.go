package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriptionServiceForTest(uow *fakeUow) ISubscriptionService {
	factory := &fakeFactory{uow: uow}
	return NewSubscriptionService(factory, NewLimitsService(factory, nil), nil)
}

func seedPlan(uow *fakeUow, mutate func(*entity.SubscriptionPlan)) *entity.SubscriptionPlan {
	plan := &entity.SubscriptionPlan{
		Id:                      uuid.New(),
		Name:                    "premium_monthly",
		DisplayName:             "Premium Monthly",
		PeriodType:              entity.PlanPeriodMonthly,
		Price:                   1190,
		ChatRequestsDaily:       50,
		ImageGenerationsMonthly: 100,
		ToolCardsMonthly:        500,
		IsActive:                true,
	}
	if mutate != nil {
		mutate(plan)
	}
	uow.subscriptions.plans = append(uow.subscriptions.plans, plan)
	return plan
}

func midtransSignature(req *dto.MidtransWebhookRequest, serverKey string) string {
	sum := sha512.Sum512([]byte(req.OrderId + req.StatusCode + req.GrossAmount + serverKey))
	return fmt.Sprintf("%x", sum)
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trialDays := 7

	tests := []struct {
		name string
		plan *entity.SubscriptionPlan
		want time.Time
	}{
		{
			name: "monthly adds 30 days",
			plan: &entity.SubscriptionPlan{PeriodType: entity.PlanPeriodMonthly},
			want: start.AddDate(0, 0, 30),
		},
		{
			name: "yearly adds 365 days",
			plan: &entity.SubscriptionPlan{PeriodType: entity.PlanPeriodYearly},
			want: start.AddDate(0, 0, 365),
		},
		{
			name: "trial uses trial duration",
			plan: &entity.SubscriptionPlan{PeriodType: entity.PlanPeriodTrial, IsTrial: true, TrialDurationDays: &trialDays},
			want: start.AddDate(0, 0, 7),
		},
		{
			name: "trial without duration gets seven days",
			plan: &entity.SubscriptionPlan{PeriodType: entity.PlanPeriodTrial, IsTrial: true},
			want: start.AddDate(0, 0, 7),
		},
		{
			name: "billing period wins over trial flag",
			plan: &entity.SubscriptionPlan{PeriodType: entity.PlanPeriodMonthly, IsTrial: true, TrialDurationDays: &trialDays},
			want: start.AddDate(0, 0, 30),
		},
		{
			name: "unknown period falls back to 30 days",
			plan: &entity.SubscriptionPlan{PeriodType: "weekly"},
			want: start.AddDate(0, 0, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, periodEnd(start, tt.plan))
		})
	}
}

func TestSubscribeActivatesImmediately(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	plan := seedPlan(uow, nil)
	userId := uuid.New()

	res, err := svc.Subscribe(context.Background(), userId, &dto.SubscribeRequest{PlanId: plan.Id})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusActive), res.Status)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), res.CurrentPeriodEnd, time.Minute)
}

func TestSubscribeRejectsSecondActiveSubscription(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	plan := seedPlan(uow, nil)
	userId := uuid.New()

	_, err := svc.Subscribe(context.Background(), userId, &dto.SubscribeRequest{PlanId: plan.Id})
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), userId, &dto.SubscribeRequest{PlanId: plan.Id})
	assert.True(t, errors.Is(err, dto.ErrAlreadyExists))
}

func TestSubscribeUnknownOrInactivePlan(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	inactive := seedPlan(uow, func(p *entity.SubscriptionPlan) { p.IsActive = false })

	_, err := svc.Subscribe(context.Background(), uuid.New(), &dto.SubscribeRequest{PlanId: uuid.New()})
	assert.True(t, errors.Is(err, dto.ErrNotFound))

	_, err = svc.Subscribe(context.Background(), uuid.New(), &dto.SubscribeRequest{PlanId: inactive.Id})
	assert.True(t, errors.Is(err, dto.ErrNotFound))
}

func TestGetPlansSkipsInactive(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	seedPlan(uow, nil)
	seedPlan(uow, func(p *entity.SubscriptionPlan) {
		p.Name = "legacy"
		p.IsActive = false
	})

	res, err := svc.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "premium_monthly", res[0].Name)
}

func TestCancelMarksCancelAtPeriodEnd(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	plan := seedPlan(uow, nil)
	userId := uuid.New()

	_, err := svc.Subscribe(context.Background(), userId, &dto.SubscribeRequest{PlanId: plan.Id})
	require.NoError(t, err)

	res, err := svc.Cancel(context.Background(), userId)
	require.NoError(t, err)

	// The subscription stays active until the period closes.
	assert.True(t, res.CancelAtPeriodEnd)
	assert.Equal(t, string(entity.SubscriptionStatusActive), res.Status)
}

func TestCancelWithoutSubscription(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)

	_, err := svc.Cancel(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, dto.ErrNotFound))
}

func TestMyLimitsCombinesChatAndMonthlyUsage(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	plan := seedPlan(uow, nil)
	userId := uuid.New()

	uow.subscriptions.subscriptions = append(uow.subscriptions.subscriptions, &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           plan.Id,
		Status:           entity.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
		Plan:             plan,
	})
	uow.images.images = append(uow.images.images, &entity.UserImage{
		Id:        uuid.New(),
		UserId:    userId,
		CreatedAt: time.Now().UTC(),
	})

	res, err := svc.MyLimits(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, 50, res.Chat.DailyLimit)
	assert.Equal(t, 100, res.Images.MonthlyLimit)
	assert.Equal(t, 1, res.Images.UsedThisMonth)
	assert.Equal(t, 500, res.Tools.MonthlyLimit)
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-key")

	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           uuid.New().String(),
		StatusCode:        "200",
		GrossAmount:       "1190.00",
		SignatureKey:      "definitely-wrong",
		TransactionStatus: "settlement",
	})
	assert.EqualError(t, err, "invalid signature")
}

func TestHandleNotificationSettlementActivates(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-key")

	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	plan := seedPlan(uow, nil)

	subId := uuid.New()
	userId := uuid.New()
	uow.subscriptions.subscriptions = append(uow.subscriptions.subscriptions, &entity.UserSubscription{
		Id:     subId,
		UserId: userId,
		PlanId: plan.Id,
		Status: entity.SubscriptionStatusPending,
	})
	paymentId := uuid.New()
	uow.subscriptions.payments = append(uow.subscriptions.payments, &entity.Payment{
		Id:             paymentId,
		UserId:         &userId,
		SubscriptionId: &subId,
		Status:         entity.PaymentStatusPending,
	})

	req := &dto.MidtransWebhookRequest{
		OrderId:           subId.String(),
		StatusCode:        "200",
		GrossAmount:       "1190.00",
		TransactionStatus: "settlement",
	}
	req.SignatureKey = midtransSignature(req, "test-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))

	sub := uow.subscriptions.subscriptions[0]
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), sub.CurrentPeriodEnd, time.Minute)
	assert.Equal(t, entity.PaymentStatusPaid, uow.subscriptions.payments[0].Status)
}

func TestHandleNotificationExpireCancels(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-key")

	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	plan := seedPlan(uow, nil)

	subId := uuid.New()
	uow.subscriptions.subscriptions = append(uow.subscriptions.subscriptions, &entity.UserSubscription{
		Id:     subId,
		PlanId: plan.Id,
		Status: entity.SubscriptionStatusPending,
	})

	req := &dto.MidtransWebhookRequest{
		OrderId:           subId.String(),
		StatusCode:        "407",
		GrossAmount:       "1190.00",
		TransactionStatus: "expire",
	}
	req.SignatureKey = midtransSignature(req, "test-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))
	assert.Equal(t, entity.SubscriptionStatusCanceled, uow.subscriptions.subscriptions[0].Status)
}

func TestHandleNotificationPendingIsNoop(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-key")

	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)

	subId := uuid.New()
	uow.subscriptions.subscriptions = append(uow.subscriptions.subscriptions, &entity.UserSubscription{
		Id:     subId,
		Status: entity.SubscriptionStatusPending,
	})

	req := &dto.MidtransWebhookRequest{
		OrderId:           subId.String(),
		StatusCode:        "201",
		GrossAmount:       "1190.00",
		TransactionStatus: "pending",
	}
	req.SignatureKey = midtransSignature(req, "test-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req))
	assert.Equal(t, entity.SubscriptionStatusPending, uow.subscriptions.subscriptions[0].Status)
}

func TestCreatePlanRejectsDuplicateName(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	seedPlan(uow, nil)

	_, err := svc.CreatePlan(context.Background(), &dto.CreatePlanRequest{
		Name:        "premium_monthly",
		DisplayName: "Premium Monthly",
		PeriodType:  entity.PlanPeriodMonthly,
		Price:       990,
	})
	assert.True(t, errors.Is(err, dto.ErrAlreadyExists))
}

func TestCreatePlanInvalidatesPlanCache(t *testing.T) {
	uow := newFakeUow()
	svc := newSubscriptionServiceForTest(uow)
	seedPlan(uow, nil)

	plans, err := svc.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)

	created, err := svc.CreatePlan(context.Background(), &dto.CreatePlanRequest{
		Name:              "premium_yearly",
		DisplayName:       "Premium Yearly",
		PeriodType:        entity.PlanPeriodYearly,
		Price:             11900,
		ChatRequestsDaily: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "premium_yearly", created.Name)

	plans, err = svc.GetPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}
