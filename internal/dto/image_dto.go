package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateImageRequest struct {
	Prompt      string  `json:"prompt" validate:"required"`
	AspectRatio string  `json:"aspect_ratio" validate:"omitempty"`
	Style       *string `json:"style,omitempty"`
}

type ImageResponse struct {
	Id               uuid.UUID `json:"id"`
	Prompt           string    `json:"prompt"`
	TranslatedPrompt string    `json:"translated_prompt"`
	ImageURL         string    `json:"image_url"`
	AspectRatio      string    `json:"aspect_ratio"`
	Style            *string   `json:"style,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type GalleryQuery struct {
	Page      int        `query:"page"`
	Limit     int        `query:"limit"`
	Style     *string    `query:"style"`
	StartDate *time.Time `query:"start_date"`
	EndDate   *time.Time `query:"end_date"`
	Search    *string    `query:"search"`
}

type GalleryResponse struct {
	Images []ImageResponse `json:"images"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Pages  int             `json:"pages"`
}
