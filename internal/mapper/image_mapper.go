package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type ImageMapper struct{}

func NewImageMapper() *ImageMapper {
	return &ImageMapper{}
}

func (m *ImageMapper) ToEntity(img *model.UserImage) *entity.UserImage {
	if img == nil {
		return nil
	}
	return &entity.UserImage{
		Id:               img.Id,
		UserId:           img.UserId,
		Prompt:           img.Prompt,
		TranslatedPrompt: img.TranslatedPrompt,
		ImageURL:         img.ImageURL,
		AspectRatio:      img.AspectRatio,
		Style:            img.Style,
		Status:           img.Status,
		CreatedAt:        img.CreatedAt,
		UpdatedAt:        img.UpdatedAt,
	}
}

func (m *ImageMapper) ToModel(img *entity.UserImage) *model.UserImage {
	if img == nil {
		return nil
	}
	return &model.UserImage{
		Id:               img.Id,
		UserId:           img.UserId,
		Prompt:           img.Prompt,
		TranslatedPrompt: img.TranslatedPrompt,
		ImageURL:         img.ImageURL,
		AspectRatio:      img.AspectRatio,
		Style:            img.Style,
		Status:           img.Status,
		CreatedAt:        img.CreatedAt,
		UpdatedAt:        img.UpdatedAt,
	}
}

func (m *ImageMapper) ToEntities(images []*model.UserImage) []*entity.UserImage {
	entities := make([]*entity.UserImage, len(images))
	for i, img := range images {
		entities[i] = m.ToEntity(img)
	}
	return entities
}
