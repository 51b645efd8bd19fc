package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImageMapper
}

func NewImageRepository(db *gorm.DB) contract.ImageRepository {
	return &ImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewImageMapper(),
	}
}

func (r *ImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *entity.UserImage) error {
	modelImage := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Create(modelImage).Error; err != nil {
		return err
	}
	*image = *r.mapper.ToEntity(modelImage)
	return nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserImage{}).Error
}

func (r *ImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserImage, error) {
	var modelImage model.UserImage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelImage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelImage), nil
}

func (r *ImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserImage, error) {
	var modelImages []*model.UserImage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelImages).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelImages), nil
}

func (r *ImageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserImage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
