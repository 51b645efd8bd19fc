package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatFolder struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Emoji      *string   `gorm:"type:varchar(10)"`
	OrderIndex int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (ChatFolder) TableName() string {
	return "chat_folders"
}

type Chat struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	FolderId        *uuid.UUID                  `gorm:"type:uuid;index"`
	Title           *string                     `gorm:"type:varchar(255)"`
	Emoji           *string                     `gorm:"type:varchar(10)"`
	AutoTitleNumber *int
	Tags            datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	BotStyle        *string                     `gorm:"type:varchar(50)"`
	IsMemoryEnabled bool                        `gorm:"default:true"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Role       string    `gorm:"type:varchar(20);not null"`
	Content    string    `gorm:"type:text;not null"`
	TokensUsed *int
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
