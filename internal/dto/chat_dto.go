package dto

import (
	"time"

	"github.com/google/uuid"
)

// Folders

type CreateFolderRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Emoji *string `json:"emoji,omitempty" validate:"omitempty,max=10"`
}

type UpdateFolderRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Emoji      *string `json:"emoji,omitempty" validate:"omitempty,max=10"`
	OrderIndex *int    `json:"order_index,omitempty"`
}

type FolderResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Emoji      *string   `json:"emoji,omitempty"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Chats

type CreateChatRequest struct {
	FolderId        *uuid.UUID `json:"folder_id,omitempty"`
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	BotStyle        *string    `json:"bot_style,omitempty"`
	IsMemoryEnabled *bool      `json:"is_memory_enabled,omitempty"`
}

type UpdateChatRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	FolderId        *uuid.UUID `json:"folder_id,omitempty"`
	BotStyle        *string    `json:"bot_style,omitempty"`
	IsMemoryEnabled *bool      `json:"is_memory_enabled,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
}

type ChatResponse struct {
	Id              uuid.UUID  `json:"id"`
	FolderId        *uuid.UUID `json:"folder_id,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Emoji           *string    `json:"emoji,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	BotStyle        *string    `json:"bot_style,omitempty"`
	IsMemoryEnabled bool       `json:"is_memory_enabled"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Messages

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ListMessagesQuery struct {
	Limit    int        `query:"limit"`
	BeforeId *uuid.UUID `query:"before_id"`
}

// Limits

type LimitsResponse struct {
	DailyLimit    int    `json:"daily_limit"`
	MessagesToday int    `json:"messages_today"`
	Remaining     int    `json:"remaining"`
	ResetAt       string `json:"reset_at"`
}

// QuotaExceededError carries the usage snapshot for limit rejections.
type QuotaExceededError struct {
	DailyLimit    int       `json:"daily_limit"`
	MessagesToday int       `json:"messages_today"`
	Remaining     int       `json:"remaining"`
	ResetAt       time.Time `json:"reset_at"`
}

func (e *QuotaExceededError) Error() string {
	return "daily message limit exceeded"
}
