package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ILimitsService interface {
	// CheckChatLimits computes the daily allowance and today's usage.
	// When throwOnExceeded is set and nothing remains, a QuotaExceededError
	// is returned alongside the computed limits.
	CheckChatLimits(ctx context.Context, userId uuid.UUID, throwOnExceeded bool) (*entity.UsageLimits, error)

	// UpdateUsage emits a usage event for the given kind. Consumption is
	// derived from stored messages, so this is observational only.
	UpdateUsage(ctx context.Context, userId uuid.UUID, kind string) error
}

type limitsService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewLimitsService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) ILimitsService {
	return &limitsService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *limitsService) CheckChatLimits(ctx context.Context, userId uuid.UUID, throwOnExceeded bool) (*entity.UsageLimits, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now().UTC()

	dailyLimit := constant.FreeTierDailyLimit

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveAt{Now: now},
	)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		plan := sub.Plan
		if plan == nil {
			plan, err = uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
			if err != nil {
				return nil, err
			}
		}
		if plan != nil {
			dailyLimit = plan.ChatRequestsDaily
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	messagesToday, err := uow.ChatMessageRepository().CountUserMessagesSince(ctx, userId, constant.ChatMessageRoleUser, dayStart)
	if err != nil {
		return nil, err
	}

	remaining := dailyLimit - int(messagesToday)
	if remaining < 0 {
		remaining = 0
	}

	limits := &entity.UsageLimits{
		DailyLimit:    dailyLimit,
		MessagesToday: int(messagesToday),
		Remaining:     remaining,
		ResetAt:       dayStart.Add(24 * time.Hour),
	}

	if remaining == 0 && throwOnExceeded {
		return limits, &dto.QuotaExceededError{
			DailyLimit:    limits.DailyLimit,
			MessagesToday: limits.MessagesToday,
			Remaining:     0,
			ResetAt:       limits.ResetAt,
		}
	}

	return limits, nil
}

func (s *limitsService) UpdateUsage(ctx context.Context, userId uuid.UUID, kind string) error {
	if s.publisherService == nil {
		return nil
	}

	payload := dto.UsageEventMessage{
		UserId:     userId,
		Kind:       kind,
		Amount:     1,
		OccurredAt: time.Now().UTC(),
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal usage event: %w", err)
	}

	return s.publisherService.Publish(ctx, payloadJson)
}
