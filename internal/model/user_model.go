package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username             string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash         string    `gorm:"type:varchar(255);not null"`
	FullName             *string   `gorm:"type:varchar(100)"`
	AvatarURL            *string   `gorm:"type:varchar(255)"`
	AboutMe              *string   `gorm:"type:text"`
	IsActive             bool      `gorm:"default:true"`
	IsVerified           bool      `gorm:"default:false"`
	IsAdmin              bool      `gorm:"default:false"`
	ResetPasswordToken   *string   `gorm:"type:varchar(255)"`
	ResetPasswordExpires *time.Time
	EmailVerifiedAt      *time.Time
	AiModel              string    `gorm:"type:varchar(50);not null;default:'claude-3-5-sonnet-20241022'"`
	DefaultBotStyle      string    `gorm:"type:varchar(50);not null;default:'standard'"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
