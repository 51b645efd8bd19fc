package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:                      p.Id,
		Name:                    p.Name,
		DisplayName:             p.DisplayName,
		PeriodType:              p.PeriodType,
		Price:                   p.Price,
		ChatRequestsDaily:       p.ChatRequestsDaily,
		ImageGenerationsMonthly: p.ImageGenerationsMonthly,
		ToolCardsMonthly:        p.ToolCardsMonthly,
		Description:             p.Description,
		IsActive:                p.IsActive,
		IsTrial:                 p.IsTrial,
		TrialDurationDays:       p.TrialDurationDays,
		CreatedAt:               p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:                      p.Id,
		Name:                    p.Name,
		DisplayName:             p.DisplayName,
		PeriodType:              p.PeriodType,
		Price:                   p.Price,
		ChatRequestsDaily:       p.ChatRequestsDaily,
		ImageGenerationsMonthly: p.ImageGenerationsMonthly,
		ToolCardsMonthly:        p.ToolCardsMonthly,
		Description:             p.Description,
		IsActive:                p.IsActive,
		IsTrial:                 p.IsTrial,
		TrialDurationDays:       p.TrialDurationDays,
		CreatedAt:               p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PlansToEntities(plans []*model.SubscriptionPlan) []*entity.SubscriptionPlan {
	entities := make([]*entity.SubscriptionPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                            s.Id,
		UserId:                        s.UserId,
		PlanId:                        s.PlanId,
		Status:                        entity.SubscriptionStatus(s.Status),
		CurrentPeriodStart:            s.CurrentPeriodStart,
		CurrentPeriodEnd:              s.CurrentPeriodEnd,
		CancelAtPeriodEnd:             s.CancelAtPeriodEnd,
		PaymentProvider:               s.PaymentProvider,
		PaymentProviderSubscriptionId: s.PaymentProviderSubscriptionId,
		CreatedAt:                     s.CreatedAt,
		UpdatedAt:                     s.UpdatedAt,
		Plan:                          m.PlanToEntity(s.Plan),
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                            s.Id,
		UserId:                        s.UserId,
		PlanId:                        s.PlanId,
		Status:                        string(s.Status),
		CurrentPeriodStart:            s.CurrentPeriodStart,
		CurrentPeriodEnd:              s.CurrentPeriodEnd,
		CancelAtPeriodEnd:             s.CancelAtPeriodEnd,
		PaymentProvider:               s.PaymentProvider,
		PaymentProviderSubscriptionId: s.PaymentProviderSubscriptionId,
		CreatedAt:                     s.CreatedAt,
		UpdatedAt:                     s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionsToEntities(subs []*model.UserSubscription) []*entity.UserSubscription {
	entities := make([]*entity.UserSubscription, len(subs))
	for i, s := range subs {
		entities[i] = m.SubscriptionToEntity(s)
	}
	return entities
}

func (m *SubscriptionMapper) PaymentToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:                       p.Id,
		UserId:                   p.UserId,
		SubscriptionId:           p.SubscriptionId,
		Amount:                   p.Amount,
		Currency:                 p.Currency,
		Status:                   entity.PaymentStatus(p.Status),
		PaymentProvider:          p.PaymentProvider,
		PaymentProviderPaymentId: p.PaymentProviderPaymentId,
		CreatedAt:                p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PaymentToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:                       p.Id,
		UserId:                   p.UserId,
		SubscriptionId:           p.SubscriptionId,
		Amount:                   p.Amount,
		Currency:                 p.Currency,
		Status:                   string(p.Status),
		PaymentProvider:          p.PaymentProvider,
		PaymentProviderPaymentId: p.PaymentProviderPaymentId,
		CreatedAt:                p.CreatedAt,
	}
}
