package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("not enough permissions")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// UsageEventMessage is the payload published on the usage topic every
// time an allowance-relevant action happens. Consumers only observe it;
// no counter is stored.
type UsageEventMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Kind       string    `json:"kind"` // "chat" | "image" | "tool"
	Amount     int       `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
