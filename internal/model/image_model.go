package model

import (
	"time"

	"github.com/google/uuid"
)

type UserImage struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	Prompt           string    `gorm:"type:text;not null"`
	TranslatedPrompt string    `gorm:"type:text;not null"`
	ImageURL         string    `gorm:"type:text;not null"`
	AspectRatio      string    `gorm:"type:varchar(10);default:'1:1'"`
	Style            *string   `gorm:"type:varchar(50)"`
	Status           string    `gorm:"type:varchar(20);default:'completed'"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (UserImage) TableName() string {
	return "user_images"
}
