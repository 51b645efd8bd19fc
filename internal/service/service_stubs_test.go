package service

import (
	"context"
	"sort"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory fakes for the repository layer. Specifications are
// interpreted by type switch, covering only what the services use.

type fakeUow struct {
	users         *fakeUserRepo
	folders       *fakeFolderRepo
	chats         *fakeChatRepo
	messages      *fakeMessageRepo
	subscriptions *fakeSubscriptionRepo
	images        *fakeImageRepo
}

func newFakeUow() *fakeUow {
	chats := &fakeChatRepo{}
	return &fakeUow{
		users:         &fakeUserRepo{},
		folders:       &fakeFolderRepo{},
		chats:         chats,
		messages:      &fakeMessageRepo{chats: chats},
		subscriptions: &fakeSubscriptionRepo{},
		images:        &fakeImageRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) ChatFolderRepository() contract.ChatFolderRepository     { return u.folders }
func (u *fakeUow) ChatRepository() contract.ChatRepository                 { return u.chats }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository   { return u.messages }
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository { return u.subscriptions }
func (u *fakeUow) ImageRepository() contract.ImageRepository               { return u.images }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

// --- users ---

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if matchUser(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, passwordHash string) error {
	for _, u := range r.users {
		if u.Id == userId {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

func (r *fakeUserRepo) SetResetToken(ctx context.Context, userId uuid.UUID, token string, expires time.Time) error {
	for _, u := range r.users {
		if u.Id == userId {
			u.ResetPasswordToken = &token
			u.ResetPasswordExpires = &expires
		}
	}
	return nil
}

func (r *fakeUserRepo) ClearResetToken(ctx context.Context, userId uuid.UUID) error {
	for _, u := range r.users {
		if u.Id == userId {
			u.ResetPasswordToken = nil
			u.ResetPasswordExpires = nil
		}
	}
	return nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		case specification.ByResetToken:
			if u.ResetPasswordToken == nil || *u.ResetPasswordToken != s.Token {
				return false
			}
		}
	}
	return true
}

// --- folders ---

type fakeFolderRepo struct {
	folders []*entity.ChatFolder
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *entity.ChatFolder) error {
	r.folders = append(r.folders, folder)
	return nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *entity.ChatFolder) error { return nil }

func (r *fakeFolderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	out := r.folders[:0]
	for _, f := range r.folders {
		if f.Id != id {
			out = append(out, f)
		}
	}
	r.folders = out
	return nil
}

func (r *fakeFolderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatFolder, error) {
	for _, f := range r.folders {
		if matchFolder(f, specs) {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatFolder, error) {
	var out []*entity.ChatFolder
	for _, f := range r.folders {
		if matchFolder(f, specs) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchFolder(f *entity.ChatFolder, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if f.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if f.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

// --- chats ---

type fakeChatRepo struct {
	chats []*entity.Chat
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.chats = append(r.chats, chat)
	return nil
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	for i, c := range r.chats {
		if c.Id == chat.Id {
			r.chats[i] = chat
		}
	}
	return nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	out := r.chats[:0]
	for _, c := range r.chats {
		if c.Id != id {
			out = append(out, c)
		}
	}
	r.chats = out
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	for _, c := range r.chats {
		if matchChat(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var out []*entity.Chat
	for _, c := range r.chats {
		if matchChat(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchChat(c *entity.Chat, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != s.UserID {
				return false
			}
		case specification.ByFolderID:
			if c.FolderId == nil || *c.FolderId != s.FolderID {
				return false
			}
		}
	}
	return true
}

// --- messages ---

type fakeMessageRepo struct {
	chats    *fakeChatRepo
	messages []*entity.ChatMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			out = append(out, m)
		}
	}

	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			desc := s.Desc
			sort.SliceStable(out, func(i, j int) bool {
				if desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		case specification.Pagination:
			limit = s.Limit
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) CountUserMessagesSince(ctx context.Context, userId uuid.UUID, role string, since time.Time) (int64, error) {
	owned := map[uuid.UUID]bool{}
	for _, c := range r.chats.chats {
		if c.UserId == userId {
			owned[c.Id] = true
		}
	}

	var n int64
	for _, m := range r.messages {
		if owned[m.ChatId] && m.Role == role && !m.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func matchMessage(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByChatID:
			if m.ChatId != s.ChatID {
				return false
			}
		case specification.ByRole:
			if m.Role != s.Role {
				return false
			}
		case specification.CreatedBefore:
			if !m.CreatedAt.Before(s.Before) {
				return false
			}
		case specification.CreatedSince:
			if m.CreatedAt.Before(s.Since) {
				return false
			}
		}
	}
	return true
}

// --- subscriptions ---

type fakeSubscriptionRepo struct {
	plans         []*entity.SubscriptionPlan
	subscriptions []*entity.UserSubscription
	payments      []*entity.Payment
}

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.plans = append(r.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	return nil
}

func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, p := range r.plans {
		if matchPlan(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, p := range r.plans {
		if matchPlan(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.subscriptions = append(r.subscriptions, sub)
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	for i, s := range r.subscriptions {
		if s.Id == sub.Id {
			r.subscriptions[i] = sub
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	for _, s := range r.subscriptions {
		if matchSubscription(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	var out []*entity.UserSubscription
	for _, s := range r.subscriptions {
		if matchSubscription(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePayment(ctx context.Context, payment *entity.Payment) error {
	for i, p := range r.payments {
		if p.Id == payment.Id {
			r.payments[i] = payment
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) FindOnePayment(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	for _, p := range r.payments {
		if matchPayment(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func matchPlan(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ByPlanName:
			if p.Name != s.Name {
				return false
			}
		case specification.ActivePlans:
			if !p.IsActive {
				return false
			}
		}
	}
	return true
}

func matchSubscription(sub *entity.UserSubscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sub.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if sub.UserId != s.UserID {
				return false
			}
		case specification.ActiveAt:
			if sub.Status != entity.SubscriptionStatusActive || !sub.CurrentPeriodEnd.After(s.Now) {
				return false
			}
		}
	}
	return true
}

func matchPayment(p *entity.Payment, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "subscription_id" {
				id, ok := s.Value.(uuid.UUID)
				if !ok || p.SubscriptionId == nil || *p.SubscriptionId != id {
					return false
				}
			}
		}
	}
	return true
}

// --- images ---

type fakeImageRepo struct {
	images []*entity.UserImage
}

func (r *fakeImageRepo) Create(ctx context.Context, image *entity.UserImage) error {
	r.images = append(r.images, image)
	return nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	out := r.images[:0]
	for _, img := range r.images {
		if img.Id != id {
			out = append(out, img)
		}
	}
	r.images = out
	return nil
}

func (r *fakeImageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserImage, error) {
	for _, img := range r.images {
		if matchImage(img, specs) {
			return img, nil
		}
	}
	return nil, nil
}

func (r *fakeImageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserImage, error) {
	var out []*entity.UserImage
	for _, img := range r.images {
		if matchImage(img, specs) {
			out = append(out, img)
		}
	}

	limit, offset := 0, 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		case specification.OrderBy:
			desc := s.Desc
			sort.SliceStable(out, func(i, j int) bool {
				if desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeImageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, img := range r.images {
		if matchImage(img, specs) {
			n++
		}
	}
	return n, nil
}

func matchImage(img *entity.UserImage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if img.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if img.UserId != s.UserID {
				return false
			}
		case specification.ByStyle:
			if img.Style == nil || *img.Style != s.Style {
				return false
			}
		case specification.CreatedSince:
			if img.CreatedAt.Before(s.Since) {
				return false
			}
		case specification.CreatedUntil:
			if img.CreatedAt.After(s.Until) {
				return false
			}
		}
	}
	return true
}

// --- providers ---

type stubLLM struct {
	chatFn     func(history []llm.Message, opts llm.Options) (string, error)
	generateFn func(prompt string, opts llm.Options) (string, error)
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var opts llm.Options
	for _, o := range options {
		o(&opts)
	}
	return s.chatFn(history, opts)
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	var opts llm.Options
	for _, o := range options {
		o(&opts)
	}
	return s.generateFn(prompt, opts)
}

type stubTitler struct {
	title string
	emoji string
	err   error
	calls int
}

func (s *stubTitler) GenerateChatTitle(ctx context.Context, content string) (string, string, error) {
	s.calls++
	return s.title, s.emoji, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}
