package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetSettings(ctx context.Context, userId uuid.UUID) (*dto.UserSettingsResponse, error)
	UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.UserSettingsResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.MeResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

// Order matters for the settings UI, so the catalog is a slice rather
// than ranging over the prompts map.
var botStyleDescriptions = []dto.BotStyleOption{
	{Id: constant.BotStyleStandard, Description: "Универсальный помощник с адаптивным стилем общения"},
	{Id: constant.BotStyleFriendly, Description: "Дружелюбный и неформальный стиль общения"},
	{Id: constant.BotStyleProfessional, Description: "Формальный и деловой стиль общения"},
	{Id: constant.BotStyleConcise, Description: "Краткие и точные ответы без лишних слов"},
	{Id: constant.BotStyleCreative, Description: "Творческий подход с использованием метафор и образных выражений"},
}

func availableBotStyles() []dto.BotStyleOption {
	styles := make([]dto.BotStyleOption, 0, len(botStyleDescriptions))
	for _, opt := range botStyleDescriptions {
		styles = append(styles, dto.BotStyleOption{
			Id:          opt.Id,
			Name:        capitalize(opt.Id),
			Description: opt.Description,
		})
	}
	return styles
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s *userService) GetSettings(ctx context.Context, userId uuid.UUID) (*dto.UserSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", dto.ErrNotFound)
	}

	return &dto.UserSettingsResponse{
		DefaultBotStyle:    user.DefaultBotStyle,
		AvailableBotStyles: availableBotStyles(),
	}, nil
}

func (s *userService) UpdateSettings(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.UserSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", dto.ErrNotFound)
	}

	if req.DefaultBotStyle != nil {
		if _, ok := constant.BotStylePrompts[*req.DefaultBotStyle]; !ok {
			return nil, fmt.Errorf("%w: invalid bot style", dto.ErrInvalidInput)
		}
		user.DefaultBotStyle = *req.DefaultBotStyle
		user.UpdatedAt = time.Now()
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return &dto.UserSettingsResponse{
		DefaultBotStyle:    user.DefaultBotStyle,
		AvailableBotStyles: availableBotStyles(),
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", dto.ErrNotFound)
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.AboutMe != nil {
		user.AboutMe = req.AboutMe
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.MeResponse{
		Id:              user.Id,
		Email:           user.Email,
		Username:        user.Username,
		FullName:        user.FullName,
		AvatarURL:       user.AvatarURL,
		AboutMe:         user.AboutMe,
		IsVerified:      user.IsVerified,
		DefaultBotStyle: user.DefaultBotStyle,
		CreatedAt:       user.CreatedAt,
	}, nil
}
