package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ImageRepository interface {
	Create(ctx context.Context, image *entity.UserImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserImage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserImage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
