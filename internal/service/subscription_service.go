package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	gocache "github.com/patrickmn/go-cache"
)

type ISubscriptionService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	Subscribe(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error)
	MySubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	MyLimits(ctx context.Context, userId uuid.UUID) (*dto.MyLimitsResponse, error)

	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

const plansCacheKey = "subscription:plans"

type subscriptionService struct {
	uowFactory     unitofwork.RepositoryFactory
	limitsService  ILimitsService
	eventPublisher *pktNats.Publisher
	cache          *gocache.Cache
}

func NewSubscriptionService(uowFactory unitofwork.RepositoryFactory, limitsService ILimitsService, eventPublisher *pktNats.Publisher) ISubscriptionService {
	return &subscriptionService{
		uowFactory:     uowFactory,
		limitsService:  limitsService,
		eventPublisher: eventPublisher,
		cache:          gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *subscriptionService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	if cached, found := s.cache.Get(plansCacheKey); found {
		if plans, ok := cached.([]*dto.PlanResponse); ok {
			return plans, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.ActivePlans{},
		specification.OrderBy{Field: "price"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}

	s.cache.Set(plansCacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

func (s *subscriptionService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByPlanName{Name: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: plan with this name already exists", dto.ErrAlreadyExists)
	}

	plan := &entity.SubscriptionPlan{
		Id:                      uuid.New(),
		Name:                    req.Name,
		DisplayName:             req.DisplayName,
		PeriodType:              req.PeriodType,
		Price:                   req.Price,
		ChatRequestsDaily:       req.ChatRequestsDaily,
		ImageGenerationsMonthly: req.ImageGenerationsMonthly,
		ToolCardsMonthly:        req.ToolCardsMonthly,
		Description:             req.Description,
		IsActive:                true,
		IsTrial:                 req.IsTrial,
		TrialDurationDays:       req.TrialDurationDays,
		CreatedAt:               time.Now(),
	}

	if err := uow.SubscriptionRepository().CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.cache.Delete(plansCacheKey)
	return toPlanResponse(plan), nil
}

// Subscribe activates a plan directly, without going through checkout.
// Used for trials and externally billed providers.
func (s *subscriptionService) Subscribe(ctx context.Context, userId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveAt{Now: time.Now().UTC()},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already has an active subscription", dto.ErrAlreadyExists)
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, fmt.Errorf("%w: plan not found or inactive", dto.ErrNotFound)
	}

	now := time.Now().UTC()
	sub := &entity.UserSubscription{
		Id:                            uuid.New(),
		UserId:                        userId,
		PlanId:                        plan.Id,
		Status:                        entity.SubscriptionStatusActive,
		CurrentPeriodStart:            now,
		CurrentPeriodEnd:              periodEnd(now, plan),
		PaymentProvider:               req.PaymentProvider,
		PaymentProviderSubscriptionId: req.PaymentProviderSubscriptionId,
		CreatedAt:                     now,
		UpdatedAt:                     now,
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeSubscriptionCreated, map[string]interface{}{
		"user_id":   userId,
		"plan_id":   plan.Id,
		"plan_name": plan.Name,
	})

	return toSubscriptionResponse(sub, plan), nil
}

// periodEnd computes when a subscription period closes. The billing period
// wins over the trial flag; trials without a duration get seven days.
func periodEnd(start time.Time, plan *entity.SubscriptionPlan) time.Time {
	switch {
	case plan.PeriodType == entity.PlanPeriodMonthly:
		return start.AddDate(0, 0, 30)
	case plan.PeriodType == entity.PlanPeriodYearly:
		return start.AddDate(0, 0, 365)
	case plan.IsTrial:
		days := 7
		if plan.TrialDurationDays != nil {
			days = *plan.TrialDurationDays
		}
		return start.AddDate(0, 0, days)
	default:
		return start.AddDate(0, 0, 30)
	}
}

func (s *subscriptionService) MySubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveAt{Now: time.Now().UTC()},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: no active subscription", dto.ErrNotFound)
	}
	return toSubscriptionResponse(sub, sub.Plan), nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveAt{Now: time.Now().UTC()},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: no active subscription", dto.ErrNotFound)
	}

	// Access is retained until the period end.
	sub.CancelAtPeriodEnd = true
	sub.UpdatedAt = time.Now()
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return toSubscriptionResponse(sub, sub.Plan), nil
}

func (s *subscriptionService) MyLimits(ctx context.Context, userId uuid.UUID) (*dto.MyLimitsResponse, error) {
	chatLimits, err := s.limitsService.CheckChatLimits(ctx, userId, false)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	imagesMonthly := 0
	toolsMonthly := 0
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveAt{Now: time.Now().UTC()},
	)
	if err != nil {
		return nil, err
	}
	if sub != nil && sub.Plan != nil {
		imagesMonthly = sub.Plan.ImageGenerationsMonthly
		toolsMonthly = sub.Plan.ToolCardsMonthly
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	imagesUsed, err := uow.ImageRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedSince{Since: monthStart},
	)
	if err != nil {
		return nil, err
	}

	return &dto.MyLimitsResponse{
		Chat: dto.LimitsResponse{
			DailyLimit:    chatLimits.DailyLimit,
			MessagesToday: chatLimits.MessagesToday,
			Remaining:     chatLimits.Remaining,
			ResetAt:       chatLimits.ResetAt.Format(time.RFC3339),
		},
		Images: dto.MonthlyUsageSummary{
			MonthlyLimit:  imagesMonthly,
			UsedThisMonth: int(imagesUsed),
		},
		Tools: dto.MonthlyUsageSummary{
			MonthlyLimit:  toolsMonthly,
			UsedThisMonth: 0,
		},
	}, nil
}

// Checkout creates a pending subscription and a Midtrans Snap transaction
// for it. The subscription activates when the payment webhook confirms
// settlement.
func (s *subscriptionService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, fmt.Errorf("%w: plan not found or inactive", dto.ErrNotFound)
	}

	existing, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveAt{Now: time.Now().UTC()},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already has an active subscription", dto.ErrAlreadyExists)
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", dto.ErrNotFound)
	}

	now := time.Now().UTC()
	provider := "midtrans"
	subId := uuid.New()
	sub := &entity.UserSubscription{
		Id:                 subId,
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusPending,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd(now, plan),
		PaymentProvider:    &provider,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	payment := &entity.Payment{
		Id:              uuid.New(),
		UserId:          &userId,
		SubscriptionId:  &subId,
		Amount:          plan.Price,
		Currency:        "RUB",
		Status:          entity.PaymentStatusPending,
		PaymentProvider: provider,
		CreatedAt:       now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	if err := uow.SubscriptionRepository().CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// External call happens after commit so a Midtrans failure never
	// leaves the transaction open.
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	clientURL := os.Getenv("CLIENT_URL")
	finishRedirectURL := fmt.Sprintf("%s/app?payment=success", clientURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  subId.String(),
			GrossAmt: int64(plan.Price),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.DisplayName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.publishEvent(ctx, events.TypeSubscriptionCreated, map[string]interface{}{
		"user_id":   userId,
		"plan_id":   plan.Id,
		"plan_name": plan.Name,
		"amount":    plan.Price,
		"currency":  payment.Currency,
	})

	return &dto.CheckoutResponse{
		SubscriptionId:  subId,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *subscriptionService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return errors.New("server configuration error")
	}

	// signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		return errors.New("invalid signature")
	}

	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return errors.New("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("subscription not found: %s", req.OrderId)
	}

	var newStatus entity.SubscriptionStatus
	var newPaymentStatus entity.PaymentStatus

	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.SubscriptionStatusActive
		newPaymentStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire":
		newStatus = entity.SubscriptionStatusCanceled
		newPaymentStatus = entity.PaymentStatusFailed
	case "pending":
		return nil
	default:
		return nil
	}

	if sub.Status == newStatus {
		return nil
	}

	now := time.Now().UTC()
	sub.Status = newStatus
	sub.UpdatedAt = now
	if newStatus == entity.SubscriptionStatusActive {
		// The paid period starts at activation, not checkout.
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
		if err != nil {
			return err
		}
		if plan != nil {
			sub.CurrentPeriodStart = now
			sub.CurrentPeriodEnd = periodEnd(now, plan)
		}
	}

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	payment, err := uow.SubscriptionRepository().FindOnePayment(ctx,
		specification.Filter("subscription_id", sub.Id),
	)
	if err != nil {
		return err
	}
	if payment != nil {
		payment.Status = newPaymentStatus
		if req.OrderId != "" {
			orderId := req.OrderId
			payment.PaymentProviderPaymentId = &orderId
		}
		if err := uow.SubscriptionRepository().UpdatePayment(ctx, payment); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if newStatus == entity.SubscriptionStatusActive {
		s.publishEvent(ctx, events.TypeSubscriptionActivated, map[string]interface{}{
			"user_id":         sub.UserId,
			"subscription_id": sub.Id,
			"plan_id":         sub.PlanId,
		})
	}
	return nil
}

func (s *subscriptionService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func toPlanResponse(p *entity.SubscriptionPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		Id:                      p.Id,
		Name:                    p.Name,
		DisplayName:             p.DisplayName,
		PeriodType:              p.PeriodType,
		Price:                   p.Price,
		ChatRequestsDaily:       p.ChatRequestsDaily,
		ImageGenerationsMonthly: p.ImageGenerationsMonthly,
		ToolCardsMonthly:        p.ToolCardsMonthly,
		Description:             p.Description,
		IsTrial:                 p.IsTrial,
		TrialDurationDays:       p.TrialDurationDays,
	}
}

func toSubscriptionResponse(sub *entity.UserSubscription, plan *entity.SubscriptionPlan) *dto.SubscriptionResponse {
	res := &dto.SubscriptionResponse{
		Id:                 sub.Id,
		PlanId:             sub.PlanId,
		Status:             string(sub.Status),
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CreatedAt:          sub.CreatedAt,
	}
	if plan != nil {
		res.PlanName = plan.DisplayName
	}
	return res
}
