package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func seedChatWithMessages(uow *fakeUow, userId uuid.UUID, userMessages int) uuid.UUID {
	chatId := uuid.New()
	uow.chats.chats = append(uow.chats.chats, &entity.Chat{
		Id:     chatId,
		UserId: userId,
	})
	for i := 0; i < userMessages; i++ {
		uow.messages.messages = append(uow.messages.messages, &entity.ChatMessage{
			Id:        uuid.New(),
			ChatId:    chatId,
			Role:      constant.ChatMessageRoleUser,
			Content:   "hi",
			CreatedAt: time.Now().UTC(),
		})
	}
	return chatId
}

func TestCheckChatLimitsFreeTier(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)
	userId := uuid.New()
	seedChatWithMessages(uow, userId, 3)

	limits, err := svc.CheckChatLimits(context.Background(), userId, false)
	require.NoError(t, err)

	assert.Equal(t, constant.FreeTierDailyLimit, limits.DailyLimit)
	assert.Equal(t, 3, limits.MessagesToday)
	assert.Equal(t, constant.FreeTierDailyLimit-3, limits.Remaining)
}

func TestCheckChatLimitsUsesPlanAllowance(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)
	userId := uuid.New()

	plan := &entity.SubscriptionPlan{Id: uuid.New(), ChatRequestsDaily: 50}
	uow.subscriptions.subscriptions = append(uow.subscriptions.subscriptions, &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           plan.Id,
		Status:           entity.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
		Plan:             plan,
	})

	limits, err := svc.CheckChatLimits(context.Background(), userId, false)
	require.NoError(t, err)

	assert.Equal(t, 50, limits.DailyLimit)
	assert.Equal(t, 50, limits.Remaining)
}

func TestCheckChatLimitsIgnoresExpiredSubscription(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)
	userId := uuid.New()

	plan := &entity.SubscriptionPlan{Id: uuid.New(), ChatRequestsDaily: 50}
	uow.subscriptions.subscriptions = append(uow.subscriptions.subscriptions, &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           plan.Id,
		Status:           entity.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(-time.Hour),
		Plan:             plan,
	})

	limits, err := svc.CheckChatLimits(context.Background(), userId, false)
	require.NoError(t, err)

	assert.Equal(t, constant.FreeTierDailyLimit, limits.DailyLimit)
}

func TestCheckChatLimitsExceeded(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)
	userId := uuid.New()
	seedChatWithMessages(uow, userId, constant.FreeTierDailyLimit+2)

	limits, err := svc.CheckChatLimits(context.Background(), userId, true)
	require.Error(t, err)

	var quotaErr *dto.QuotaExceededError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, constant.FreeTierDailyLimit, quotaErr.DailyLimit)
	assert.Equal(t, constant.FreeTierDailyLimit+2, quotaErr.MessagesToday)
	assert.Equal(t, 0, quotaErr.Remaining)

	// The client-facing payload carries the full usage snapshot.
	payload, marshalErr := json.Marshal(quotaErr)
	require.NoError(t, marshalErr)
	assert.Contains(t, string(payload), `"remaining":0`)

	// Limits are still reported, remaining clamped at zero.
	require.NotNil(t, limits)
	assert.Equal(t, 0, limits.Remaining)
}

func TestCheckChatLimitsNotThrownWhenReadOnly(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)
	userId := uuid.New()
	seedChatWithMessages(uow, userId, constant.FreeTierDailyLimit)

	limits, err := svc.CheckChatLimits(context.Background(), userId, false)
	require.NoError(t, err)
	assert.Equal(t, 0, limits.Remaining)
}

func TestCheckChatLimitsResetAtNextUTCMidnight(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)

	limits, err := svc.CheckChatLimits(context.Background(), uuid.New(), false)
	require.NoError(t, err)

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.Equal(t, dayStart.Add(24*time.Hour), limits.ResetAt)
}

func TestCheckChatLimitsCountsOnlyOwnUserMessages(t *testing.T) {
	uow := newFakeUow()
	svc := NewLimitsService(&fakeFactory{uow: uow}, nil)
	userId := uuid.New()

	chatId := seedChatWithMessages(uow, userId, 2)
	// Assistant replies never count against the allowance.
	uow.messages.messages = append(uow.messages.messages, &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		Role:      constant.ChatMessageRoleAssistant,
		Content:   "reply",
		CreatedAt: time.Now().UTC(),
	})
	// Neither does another user's traffic.
	seedChatWithMessages(uow, uuid.New(), 5)

	limits, err := svc.CheckChatLimits(context.Background(), userId, false)
	require.NoError(t, err)
	assert.Equal(t, 2, limits.MessagesToday)
}

func TestUpdateUsagePublishesEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewLimitsService(&fakeFactory{uow: newFakeUow()}, pub)
	userId := uuid.New()

	err := svc.UpdateUsage(context.Background(), userId, "chat")
	require.NoError(t, err)
	require.Len(t, pub.payloads, 1)

	var event dto.UsageEventMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &event))
	assert.Equal(t, userId, event.UserId)
	assert.Equal(t, "chat", event.Kind)
	assert.Equal(t, 1, event.Amount)
}

func TestUpdateUsageNilPublisher(t *testing.T) {
	svc := NewLimitsService(&fakeFactory{uow: newFakeUow()}, nil)
	assert.NoError(t, svc.UpdateUsage(context.Background(), uuid.New(), "image"))
}
