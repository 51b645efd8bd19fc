package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/events"
	"ai-chat-be/pkg/imagegen/bfl"
	"ai-chat-be/pkg/llm"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IImageService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateImageRequest) (*dto.ImageResponse, error)
	List(ctx context.Context, userId uuid.UUID, skip, limit int) ([]dto.ImageResponse, error)
	Gallery(ctx context.Context, userId uuid.UUID, query *dto.GalleryQuery) (*dto.GalleryResponse, error)
	Delete(ctx context.Context, userId, imageId uuid.UUID) error
}

const (
	defaultGalleryLimit = 20
	maxGalleryLimit     = 100
	defaultAspectRatio  = "1:1"
)

var cyrillicPattern = regexp.MustCompile(`[а-яА-Я]`)

type imageService struct {
	uowFactory     unitofwork.RepositoryFactory
	limitsService  ILimitsService
	translator     llm.LLMProvider
	imageClient    *bfl.Client
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewImageService(
	uowFactory unitofwork.RepositoryFactory,
	limitsService ILimitsService,
	translator llm.LLMProvider,
	imageClient *bfl.Client,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IImageService {
	return &imageService{
		uowFactory:     uowFactory,
		limitsService:  limitsService,
		translator:     translator,
		imageClient:    imageClient,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *imageService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateImageRequest) (*dto.ImageResponse, error) {
	if _, err := s.limitsService.CheckChatLimits(ctx, userId, true); err != nil {
		return nil, err
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = defaultAspectRatio
	}
	if !bfl.SupportedRatio(aspectRatio) {
		return nil, fmt.Errorf("%w: unsupported aspect ratio %q", dto.ErrInvalidInput, aspectRatio)
	}
	if req.Style != nil && !constant.ValidImageStyle(*req.Style) {
		return nil, fmt.Errorf("%w: unknown style %q", dto.ErrInvalidInput, *req.Style)
	}

	finalPrompt, err := s.preparePrompt(ctx, req.Prompt, req.Style)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.imageClient.GenerateImage(ctx, finalPrompt, aspectRatio)
	if err != nil {
		s.logger.Error("ImageService", "Image generation failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	image := &entity.UserImage{
		Id:               uuid.New(),
		UserId:           userId,
		Prompt:           req.Prompt,
		TranslatedPrompt: finalPrompt,
		ImageURL:         imageURL,
		AspectRatio:      aspectRatio,
		Style:            req.Style,
		Status:           entity.ImageStatusCompleted,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := uow.ImageRepository().Create(ctx, image); err != nil {
		return nil, err
	}

	if err := s.limitsService.UpdateUsage(ctx, userId, "image"); err != nil {
		s.logger.Warn("ImageService", "Failed to record usage", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeImageGenerated,
			Data: map[string]interface{}{
				"user_id":      userId,
				"image_id":     image.Id,
				"aspect_ratio": aspectRatio,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish IMAGE_GENERATED event: %v\n", err)
		}
	}

	return toImageResponse(image), nil
}

// preparePrompt translates Cyrillic prompts to English and appends the
// style suffix unless the no-style sentinel was sent.
func (s *imageService) preparePrompt(ctx context.Context, prompt string, style *string) (string, error) {
	final := prompt

	if cyrillicPattern.MatchString(prompt) {
		translated, err := s.translator.Generate(ctx,
			constant.ImageTranslationPrompt+prompt,
			llm.WithTemperature(0.3),
		)
		if err != nil {
			return "", fmt.Errorf("translate prompt: %w", err)
		}
		final = strings.TrimSpace(translated)
	}

	if style != nil && *style != constant.ImageStyleNone {
		if suffix := constant.ImageStyles[*style]; suffix != "" {
			final = final + ", " + suffix
		}
	}
	return final, nil
}

// List returns the user's images newest-first, without gallery filters.
func (s *imageService) List(ctx context.Context, userId uuid.UUID, skip, limit int) ([]dto.ImageResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxGalleryLimit {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	images, err := uow.ImageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: skip},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ImageResponse, 0, len(images))
	for _, img := range images {
		responses = append(responses, *toImageResponse(img))
	}
	return responses, nil
}

func (s *imageService) Gallery(ctx context.Context, userId uuid.UUID, query *dto.GalleryQuery) (*dto.GalleryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultGalleryLimit
	}
	if limit > maxGalleryLimit {
		limit = maxGalleryLimit
	}

	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if query.Style != nil && *query.Style != "" {
		filters = append(filters, specification.ByStyle{Style: *query.Style})
	}
	if query.StartDate != nil {
		filters = append(filters, specification.CreatedSince{Since: *query.StartDate})
	}
	if query.EndDate != nil {
		filters = append(filters, specification.CreatedUntil{Until: *query.EndDate})
	}
	if query.Search != nil && *query.Search != "" {
		filters = append(filters, specification.PromptSearch{Term: *query.Search})
	}

	total, err := uow.ImageRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	images, err := uow.ImageRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ImageResponse, 0, len(images))
	for _, img := range images {
		responses = append(responses, *toImageResponse(img))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.GalleryResponse{
		Images: responses,
		Total:  total,
		Page:   page,
		Pages:  pages,
	}, nil
}

func (s *imageService) Delete(ctx context.Context, userId, imageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	image, err := uow.ImageRepository().FindOne(ctx,
		specification.ByID{ID: imageId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if image == nil {
		return fmt.Errorf("%w: image not found", dto.ErrNotFound)
	}
	return uow.ImageRepository().Delete(ctx, image.Id)
}

func toImageResponse(img *entity.UserImage) *dto.ImageResponse {
	return &dto.ImageResponse{
		Id:               img.Id,
		Prompt:           img.Prompt,
		TranslatedPrompt: img.TranslatedPrompt,
		ImageURL:         img.ImageURL,
		AspectRatio:      img.AspectRatio,
		Style:            img.Style,
		Status:           img.Status,
		CreatedAt:        img.CreatedAt,
	}
}
