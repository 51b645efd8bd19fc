package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ImageStatusCompleted = "completed"
	ImageStatusFailed    = "failed"
)

type UserImage struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Prompt           string
	TranslatedPrompt string
	ImageURL         string
	AspectRatio      string
	Style            *string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ImageGallery is a filtered, paginated page of a user's images.
type ImageGallery struct {
	Images []UserImage
	Total  int64
	Page   int
	Pages  int
}
