package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                   u.Id,
		Email:                u.Email,
		Username:             u.Username,
		PasswordHash:         u.PasswordHash,
		FullName:             u.FullName,
		AvatarURL:            u.AvatarURL,
		AboutMe:              u.AboutMe,
		IsActive:             u.IsActive,
		IsVerified:           u.IsVerified,
		IsAdmin:              u.IsAdmin,
		ResetPasswordToken:   u.ResetPasswordToken,
		ResetPasswordExpires: u.ResetPasswordExpires,
		EmailVerifiedAt:      u.EmailVerifiedAt,
		AiModel:              u.AiModel,
		DefaultBotStyle:      u.DefaultBotStyle,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                   u.Id,
		Email:                u.Email,
		Username:             u.Username,
		PasswordHash:         u.PasswordHash,
		FullName:             u.FullName,
		AvatarURL:            u.AvatarURL,
		AboutMe:              u.AboutMe,
		IsActive:             u.IsActive,
		IsVerified:           u.IsVerified,
		IsAdmin:              u.IsAdmin,
		ResetPasswordToken:   u.ResetPasswordToken,
		ResetPasswordExpires: u.ResetPasswordExpires,
		EmailVerifiedAt:      u.EmailVerifiedAt,
		AiModel:              u.AiModel,
		DefaultBotStyle:      u.DefaultBotStyle,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
