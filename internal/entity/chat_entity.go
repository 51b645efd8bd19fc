package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatFolder struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Name       string
	Emoji      *string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Chat struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	FolderId        *uuid.UUID
	Title           *string
	Emoji           *string
	AutoTitleNumber *int
	Tags            []string
	BotStyle        *string
	IsMemoryEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ChatMessage struct {
	Id         uuid.UUID
	ChatId     uuid.UUID
	Role       string
	Content    string
	TokensUsed *int
	CreatedAt  time.Time
}

// UsageLimits describes how much of the daily message allowance a user
// has consumed. ResetAt marks the next UTC midnight.
type UsageLimits struct {
	DailyLimit    int
	MessagesToday int
	Remaining     int
	ResetAt       time.Time
}
