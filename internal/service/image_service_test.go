package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageServiceForTest(uow *fakeUow, translator *stubLLM) *imageService {
	factory := &fakeFactory{uow: uow}
	svc := NewImageService(factory, NewLimitsService(factory, nil), translator, nil, nil, nopLogger{})
	return svc.(*imageService)
}

func TestPreparePromptTranslatesCyrillic(t *testing.T) {
	var capturedPrompt string
	var capturedTemp float64
	translator := &stubLLM{
		generateFn: func(prompt string, opts llm.Options) (string, error) {
			capturedPrompt = prompt
			capturedTemp = opts.Temperature
			return "a red cat on a roof", nil
		},
	}
	svc := newImageServiceForTest(newFakeUow(), translator)

	final, err := svc.preparePrompt(context.Background(), "рыжий кот на крыше", nil)
	require.NoError(t, err)

	assert.Equal(t, "a red cat on a roof", final)
	assert.Equal(t, constant.ImageTranslationPrompt+"рыжий кот на крыше", capturedPrompt)
	assert.Equal(t, 0.3, capturedTemp)
}

func TestPreparePromptSkipsTranslationForEnglish(t *testing.T) {
	translator := &stubLLM{
		generateFn: func(prompt string, opts llm.Options) (string, error) {
			t.Fatal("translation must not run for an English prompt")
			return "", nil
		},
	}
	svc := newImageServiceForTest(newFakeUow(), translator)

	final, err := svc.preparePrompt(context.Background(), "a red cat", nil)
	require.NoError(t, err)
	assert.Equal(t, "a red cat", final)
}

func TestPreparePromptAppendsStyleSuffix(t *testing.T) {
	svc := newImageServiceForTest(newFakeUow(), &stubLLM{})
	style := "КИБЕРПАНК"

	final, err := svc.preparePrompt(context.Background(), "a red cat", &style)
	require.NoError(t, err)
	assert.Equal(t, "a red cat, "+constant.ImageStyles[style], final)
}

func TestPreparePromptNoStyleSentinel(t *testing.T) {
	svc := newImageServiceForTest(newFakeUow(), &stubLLM{})
	style := constant.ImageStyleNone

	final, err := svc.preparePrompt(context.Background(), "a red cat", &style)
	require.NoError(t, err)
	assert.Equal(t, "a red cat", final)
}

func TestGenerateRejectsUnknownStyleAndRatio(t *testing.T) {
	svc := newImageServiceForTest(newFakeUow(), &stubLLM{})
	userId := uuid.New()

	badStyle := "ВИНТАЖ"
	_, err := svc.Generate(context.Background(), userId, &dto.GenerateImageRequest{
		Prompt: "a cat",
		Style:  &badStyle,
	})
	assert.True(t, errors.Is(err, dto.ErrInvalidInput))

	_, err = svc.Generate(context.Background(), userId, &dto.GenerateImageRequest{
		Prompt:      "a cat",
		AspectRatio: "21:9",
	})
	assert.True(t, errors.Is(err, dto.ErrInvalidInput))
}

func TestGalleryFiltersAndPaginates(t *testing.T) {
	uow := newFakeUow()
	svc := newImageServiceForTest(uow, &stubLLM{})
	userId := uuid.New()

	cyber := "КИБЕРПАНК"
	art := "АРТ"
	for i := 0; i < 3; i++ {
		uow.images.images = append(uow.images.images, &entity.UserImage{
			Id:        uuid.New(),
			UserId:    userId,
			Style:     &cyber,
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}
	uow.images.images = append(uow.images.images, &entity.UserImage{
		Id:        uuid.New(),
		UserId:    userId,
		Style:     &art,
		CreatedAt: time.Now(),
	})

	res, err := svc.Gallery(context.Background(), userId, &dto.GalleryQuery{Style: &cyber, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Total)
	assert.Len(t, res.Images, 2)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 1, res.Page)
}

func TestGalleryLimitIsCapped(t *testing.T) {
	uow := newFakeUow()
	svc := newImageServiceForTest(uow, &stubLLM{})

	res, err := svc.Gallery(context.Background(), uuid.New(), &dto.GalleryQuery{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Pages)
	assert.Empty(t, res.Images)
}

func TestDeleteImage(t *testing.T) {
	uow := newFakeUow()
	svc := newImageServiceForTest(uow, &stubLLM{})
	userId := uuid.New()

	imageId := uuid.New()
	uow.images.images = append(uow.images.images, &entity.UserImage{
		Id:     imageId,
		UserId: userId,
	})

	require.NoError(t, svc.Delete(context.Background(), userId, imageId))
	assert.Empty(t, uow.images.images)
}

func TestDeleteImageNotFoundOrForeign(t *testing.T) {
	uow := newFakeUow()
	svc := newImageServiceForTest(uow, &stubLLM{})
	userId := uuid.New()

	imageId := uuid.New()
	uow.images.images = append(uow.images.images, &entity.UserImage{
		Id:     imageId,
		UserId: uuid.New(),
	})

	err := svc.Delete(context.Background(), userId, imageId)
	assert.True(t, errors.Is(err, dto.ErrNotFound))

	err = svc.Delete(context.Background(), userId, uuid.New())
	assert.True(t, errors.Is(err, dto.ErrNotFound))
}

func TestListReturnsNewestFirst(t *testing.T) {
	uow := newFakeUow()
	svc := newImageServiceForTest(uow, &stubLLM{})
	userId := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		uow.images.images = append(uow.images.images, &entity.UserImage{
			Id:        uuid.New(),
			UserId:    userId,
			Prompt:    fmt.Sprintf("prompt-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	uow.images.images = append(uow.images.images, &entity.UserImage{
		Id:     uuid.New(),
		UserId: uuid.New(),
		Prompt: "someone else",
	})

	res, err := svc.List(context.Background(), userId, 0, 50)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "prompt-2", res[0].Prompt)
	assert.Equal(t, "prompt-0", res[2].Prompt)
}
