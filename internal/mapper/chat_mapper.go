package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Folder Mappers

func (m *ChatMapper) FolderToEntity(f *model.ChatFolder) *entity.ChatFolder {
	if f == nil {
		return nil
	}
	return &entity.ChatFolder{
		Id:         f.Id,
		UserId:     f.UserId,
		Name:       f.Name,
		Emoji:      f.Emoji,
		OrderIndex: f.OrderIndex,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

func (m *ChatMapper) FolderToModel(f *entity.ChatFolder) *model.ChatFolder {
	if f == nil {
		return nil
	}
	return &model.ChatFolder{
		Id:         f.Id,
		UserId:     f.UserId,
		Name:       f.Name,
		Emoji:      f.Emoji,
		OrderIndex: f.OrderIndex,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

func (m *ChatMapper) FoldersToEntities(folders []*model.ChatFolder) []*entity.ChatFolder {
	entities := make([]*entity.ChatFolder, len(folders))
	for i, f := range folders {
		entities[i] = m.FolderToEntity(f)
	}
	return entities
}

// Chat Mappers

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:              c.Id,
		UserId:          c.UserId,
		FolderId:        c.FolderId,
		Title:           c.Title,
		Emoji:           c.Emoji,
		AutoTitleNumber: c.AutoTitleNumber,
		Tags:            []string(c.Tags),
		BotStyle:        c.BotStyle,
		IsMemoryEnabled: c.IsMemoryEnabled,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:              c.Id,
		UserId:          c.UserId,
		FolderId:        c.FolderId,
		Title:           c.Title,
		Emoji:           c.Emoji,
		AutoTitleNumber: c.AutoTitleNumber,
		Tags:            datatypes.NewJSONSlice(c.Tags),
		BotStyle:        c.BotStyle,
		IsMemoryEnabled: c.IsMemoryEnabled,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatsToEntities(chats []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(chats))
	for i, c := range chats {
		entities[i] = m.ChatToEntity(c)
	}
	return entities
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         msg.Id,
		ChatId:     msg.ChatId,
		Role:       msg.Role,
		Content:    msg.Content,
		TokensUsed: msg.TokensUsed,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         msg.Id,
		ChatId:     msg.ChatId,
		Role:       msg.Role,
		Content:    msg.Content,
		TokensUsed: msg.TokensUsed,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, msg := range messages {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
