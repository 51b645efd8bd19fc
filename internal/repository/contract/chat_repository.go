package contract

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatFolderRepository interface {
	Create(ctx context.Context, folder *entity.ChatFolder) error
	Update(ctx context.Context, folder *entity.ChatFolder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatFolder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatFolder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountUserMessagesSince counts messages with the given role across
	// all of the user's chats created at or after the given moment.
	CountUserMessagesSince(ctx context.Context, userId uuid.UUID, role string, since time.Time) (int64, error)
}
