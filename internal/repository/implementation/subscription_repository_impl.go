package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Plans

func (r *SubscriptionRepositoryImpl) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	modelPlan := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(modelPlan).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(modelPlan)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	modelPlan := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Save(modelPlan).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(modelPlan)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	var modelPlan model.SubscriptionPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPlan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PlanToEntity(&modelPlan), nil
}

func (r *SubscriptionRepositoryImpl) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var modelPlans []*model.SubscriptionPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPlans).Error; err != nil {
		return nil, err
	}

	return r.mapper.PlansToEntities(modelPlans), nil
}

// Subscriptions

func (r *SubscriptionRepositoryImpl) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	modelSub := r.mapper.SubscriptionToModel(sub)
	if err := r.db.WithContext(ctx).Create(modelSub).Error; err != nil {
		return err
	}
	*sub = *r.mapper.SubscriptionToEntity(modelSub)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	modelSub := r.mapper.SubscriptionToModel(sub)
	if err := r.db.WithContext(ctx).Save(modelSub).Error; err != nil {
		return err
	}
	*sub = *r.mapper.SubscriptionToEntity(modelSub)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	var modelSub model.UserSubscription
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Plan"), specs...)

	if err := query.First(&modelSub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.SubscriptionToEntity(&modelSub), nil
}

func (r *SubscriptionRepositoryImpl) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	var modelSubs []*model.UserSubscription
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Plan"), specs...)

	if err := query.Find(&modelSubs).Error; err != nil {
		return nil, err
	}

	return r.mapper.SubscriptionsToEntities(modelSubs), nil
}

// Payments

func (r *SubscriptionRepositoryImpl) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	modelPayment := r.mapper.PaymentToModel(payment)
	if err := r.db.WithContext(ctx).Create(modelPayment).Error; err != nil {
		return err
	}
	*payment = *r.mapper.PaymentToEntity(modelPayment)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdatePayment(ctx context.Context, payment *entity.Payment) error {
	modelPayment := r.mapper.PaymentToModel(payment)
	if err := r.db.WithContext(ctx).Save(modelPayment).Error; err != nil {
		return err
	}
	*payment = *r.mapper.PaymentToEntity(modelPayment)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOnePayment(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var modelPayment model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPayment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PaymentToEntity(&modelPayment), nil
}
