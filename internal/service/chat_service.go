package service

import (
	"context"
	"fmt"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"
	"ai-chat-be/pkg/titler"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateFolder(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.FolderResponse, error)
	GetFolders(ctx context.Context, userId uuid.UUID) ([]*dto.FolderResponse, error)
	UpdateFolder(ctx context.Context, userId, folderId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error)
	DeleteFolder(ctx context.Context, userId, folderId uuid.UUID) error

	CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	GetChats(ctx context.Context, userId uuid.UUID, folderId *uuid.UUID) ([]*dto.ChatResponse, error)
	GetChat(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatResponse, error)
	UpdateChat(ctx context.Context, userId, chatId uuid.UUID, req *dto.UpdateChatRequest) (*dto.ChatResponse, error)
	DeleteChat(ctx context.Context, userId, chatId uuid.UUID) error

	GetMessages(ctx context.Context, userId, chatId uuid.UUID, query *dto.ListMessagesQuery) ([]*dto.MessageResponse, error)
	SendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetLimits(ctx context.Context, userId uuid.UUID) (*dto.LimitsResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	limitsService ILimitsService
	llmProvider   llm.LLMProvider
	titleGen      titler.Generator
	logger        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	limitsService ILimitsService,
	llmProvider llm.LLMProvider,
	titleGen titler.Generator,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		limitsService: limitsService,
		llmProvider:   llmProvider,
		titleGen:      titleGen,
		logger:        log,
	}
}

// historyLimit bounds how many stored messages are loaded when building
// provider context and when listing.
const historyLimit = 50

// --- Folders ---

func (s *chatService) CreateFolder(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ChatFolderRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	folder := &entity.ChatFolder{
		Id:         uuid.New(),
		UserId:     userId,
		Name:       req.Name,
		Emoji:      req.Emoji,
		OrderIndex: int(count) + 1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := uow.ChatFolderRepository().Create(ctx, folder); err != nil {
		return nil, err
	}

	return toFolderResponse(folder), nil
}

func (s *chatService) GetFolders(ctx context.Context, userId uuid.UUID) ([]*dto.FolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.ChatFolderRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "order_index"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.FolderResponse, 0, len(folders))
	for _, folder := range folders {
		responses = append(responses, toFolderResponse(folder))
	}
	return responses, nil
}

func (s *chatService) UpdateFolder(ctx context.Context, userId, folderId uuid.UUID, req *dto.UpdateFolderRequest) (*dto.FolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := s.findOwnedFolder(ctx, uow, userId, folderId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}
	if req.Emoji != nil {
		folder.Emoji = req.Emoji
	}
	if req.OrderIndex != nil {
		folder.OrderIndex = *req.OrderIndex
	}
	folder.UpdatedAt = time.Now()

	if err := uow.ChatFolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}
	return toFolderResponse(folder), nil
}

func (s *chatService) DeleteFolder(ctx context.Context, userId, folderId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := s.findOwnedFolder(ctx, uow, userId, folderId)
	if err != nil {
		return err
	}
	return uow.ChatFolderRepository().Delete(ctx, folder.Id)
}

func (s *chatService) findOwnedFolder(ctx context.Context, uow unitofwork.UnitOfWork, userId, folderId uuid.UUID) (*entity.ChatFolder, error) {
	folder, err := uow.ChatFolderRepository().FindOne(ctx, specification.ByID{ID: folderId})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, fmt.Errorf("%w: folder not found", dto.ErrNotFound)
	}
	if folder.UserId != userId {
		return nil, fmt.Errorf("%w: not your folder", dto.ErrForbidden)
	}
	return folder, nil
}

// --- Chats ---

func (s *chatService) CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.FolderId != nil {
		if _, err := s.findOwnedFolder(ctx, uow, userId, *req.FolderId); err != nil {
			return nil, err
		}
	}

	botStyle := req.BotStyle
	if botStyle == nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err != nil {
			return nil, err
		}
		if user != nil {
			style := user.DefaultBotStyle
			botStyle = &style
		}
	}

	count, err := uow.ChatRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	autoNumber := int(count) + 1

	title := req.Title
	if title == nil {
		generated := fmt.Sprintf("Chat %d", autoNumber)
		title = &generated
	}

	isMemoryEnabled := true
	if req.IsMemoryEnabled != nil {
		isMemoryEnabled = *req.IsMemoryEnabled
	}

	chat := &entity.Chat{
		Id:              uuid.New(),
		UserId:          userId,
		FolderId:        req.FolderId,
		Title:           title,
		AutoTitleNumber: &autoNumber,
		BotStyle:        botStyle,
		IsMemoryEnabled: isMemoryEnabled,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	return toChatResponse(chat), nil
}

func (s *chatService) GetChats(ctx context.Context, userId uuid.UUID, folderId *uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if folderId != nil {
		specs = append(specs, specification.ByFolderID{FolderID: *folderId})
	}

	chats, err := uow.ChatRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatResponse, 0, len(chats))
	for _, chat := range chats {
		responses = append(responses, toChatResponse(chat))
	}
	return responses, nil
}

func (s *chatService) GetChat(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat), nil
}

func (s *chatService) UpdateChat(ctx context.Context, userId, chatId uuid.UUID, req *dto.UpdateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	if req.FolderId != nil {
		if _, err := s.findOwnedFolder(ctx, uow, userId, *req.FolderId); err != nil {
			return nil, err
		}
		chat.FolderId = req.FolderId
	}
	if req.Title != nil {
		chat.Title = req.Title
	}
	if req.BotStyle != nil {
		chat.BotStyle = req.BotStyle
	}
	if req.IsMemoryEnabled != nil {
		chat.IsMemoryEnabled = *req.IsMemoryEnabled
	}
	if req.Tags != nil {
		chat.Tags = req.Tags
	}
	chat.UpdatedAt = time.Now()

	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}
	return toChatResponse(chat), nil
}

func (s *chatService) DeleteChat(ctx context.Context, userId, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return err
	}
	return uow.ChatRepository().Delete(ctx, chat.Id)
}

func (s *chatService) findOwnedChat(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat not found", dto.ErrNotFound)
	}
	if chat.UserId != userId {
		return nil, fmt.Errorf("%w: not your chat", dto.ErrForbidden)
	}
	return chat, nil
}

// --- Messages ---

func (s *chatService) GetMessages(ctx context.Context, userId, chatId uuid.UUID, query *dto.ListMessagesQuery) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedChat(ctx, uow, userId, chatId); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}

	specs := []specification.Specification{
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	}
	if query.BeforeId != nil {
		anchor, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByID{ID: *query.BeforeId})
		if err != nil {
			return nil, err
		}
		if anchor != nil {
			specs = append(specs, specification.CreatedBefore{Before: anchor.CreatedAt})
		}
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, toMessageResponse(msg))
	}
	return responses, nil
}

// SendMessage runs the full pipeline: quota gate, persist the user message,
// first-message title generation, context assembly, provider call, persist
// the assistant reply. A provider failure still produces an assistant
// message so the client always gets a reply.
func (s *chatService) SendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if _, err := s.limitsService.CheckChatLimits(ctx, userId, true); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	userMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      constant.ChatMessageRoleUser,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	total, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatID{ChatID: chat.Id})
	if err != nil {
		s.logger.Warn("ChatService", "Failed to count chat messages", map[string]interface{}{
			"chat_id": chat.Id,
			"error":   err.Error(),
		})
	}
	if total == 1 {
		s.generateTitle(ctx, uow, chat, req.Content)
	}

	if err := s.limitsService.UpdateUsage(ctx, userId, "chat"); err != nil {
		s.logger.Warn("ChatService", "Failed to record usage", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	history, err := s.buildContext(ctx, uow, chat, userMessage)
	if err != nil {
		return nil, err
	}

	var style string
	if chat.BotStyle != nil {
		style = *chat.BotStyle
	}
	systemPrompt := constant.SystemPromptByStyle(style)

	replyContent, llmErr := s.llmProvider.Chat(ctx, history, llm.WithSystem(systemPrompt))
	if llmErr != nil {
		s.logger.Error("ChatService", "Model call failed", map[string]interface{}{
			"chat_id": chat.Id,
			"error":   llmErr.Error(),
		})
		replyContent = constant.ChatErrorFallbackMessage
	}

	assistantMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      constant.ChatMessageRoleAssistant,
		Content:   replyContent,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	return toMessageResponse(assistantMessage), nil
}

// generateTitle sets the chat title and emoji from its first message.
// Failures are logged and the chat keeps the fallback title so the
// pipeline keeps going.
func (s *chatService) generateTitle(ctx context.Context, uow unitofwork.UnitOfWork, chat *entity.Chat, content string) {
	title, emoji := constant.DefaultChatTitle, constant.DefaultChatEmoji

	if s.titleGen != nil {
		generated, generatedEmoji, err := s.titleGen.GenerateChatTitle(ctx, content)
		if err != nil {
			s.logger.Warn("ChatService", "Title generation failed", map[string]interface{}{
				"chat_id": chat.Id,
				"error":   err.Error(),
			})
		} else {
			title, emoji = generated, generatedEmoji
		}
	}

	chat.Title = &title
	chat.Emoji = &emoji
	chat.UpdatedAt = time.Now()

	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		s.logger.Warn("ChatService", "Failed to store generated title", map[string]interface{}{
			"chat_id": chat.Id,
			"error":   err.Error(),
		})
	}
}

// buildContext assembles the provider history. With memory enabled the
// stored conversation is loaded newest-first and reversed; otherwise only
// the current message is sent.
func (s *chatService) buildContext(ctx context.Context, uow unitofwork.UnitOfWork, chat *entity.Chat, current *entity.ChatMessage) ([]llm.Message, error) {
	if !chat.IsMemoryEnabled {
		return []llm.Message{{Role: current.Role, Content: current.Content}}, nil
	}

	stored, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chat.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyLimit},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		history = append(history, llm.Message{Role: stored[i].Role, Content: stored[i].Content})
	}
	return history, nil
}

func (s *chatService) GetLimits(ctx context.Context, userId uuid.UUID) (*dto.LimitsResponse, error) {
	limits, err := s.limitsService.CheckChatLimits(ctx, userId, false)
	if err != nil {
		return nil, err
	}
	return &dto.LimitsResponse{
		DailyLimit:    limits.DailyLimit,
		MessagesToday: limits.MessagesToday,
		Remaining:     limits.Remaining,
		ResetAt:       limits.ResetAt.Format(time.RFC3339),
	}, nil
}

// --- mapping helpers ---

func toFolderResponse(folder *entity.ChatFolder) *dto.FolderResponse {
	return &dto.FolderResponse{
		Id:         folder.Id,
		Name:       folder.Name,
		Emoji:      folder.Emoji,
		OrderIndex: folder.OrderIndex,
		CreatedAt:  folder.CreatedAt,
		UpdatedAt:  folder.UpdatedAt,
	}
}

func toChatResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:              chat.Id,
		FolderId:        chat.FolderId,
		Title:           chat.Title,
		Emoji:           chat.Emoji,
		Tags:            chat.Tags,
		BotStyle:        chat.BotStyle,
		IsMemoryEnabled: chat.IsMemoryEnabled,
		CreatedAt:       chat.CreatedAt,
		UpdatedAt:       chat.UpdatedAt,
	}
}

func toMessageResponse(msg *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
