package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                   uuid.UUID
	Email                string
	Username             string
	PasswordHash         string
	FullName             *string
	AvatarURL            *string
	AboutMe              *string
	IsActive             bool
	IsVerified           bool
	IsAdmin              bool
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	EmailVerifiedAt      *time.Time
	AiModel              string
	DefaultBotStyle      string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
