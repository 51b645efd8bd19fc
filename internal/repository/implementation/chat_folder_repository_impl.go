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

type ChatFolderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatFolderRepository(db *gorm.DB) contract.ChatFolderRepository {
	return &ChatFolderRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatFolderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatFolderRepositoryImpl) Create(ctx context.Context, folder *entity.ChatFolder) error {
	modelFolder := r.mapper.FolderToModel(folder)
	if err := r.db.WithContext(ctx).Create(modelFolder).Error; err != nil {
		return err
	}
	*folder = *r.mapper.FolderToEntity(modelFolder)
	return nil
}

func (r *ChatFolderRepositoryImpl) Update(ctx context.Context, folder *entity.ChatFolder) error {
	modelFolder := r.mapper.FolderToModel(folder)
	if err := r.db.WithContext(ctx).Save(modelFolder).Error; err != nil {
		return err
	}
	*folder = *r.mapper.FolderToEntity(modelFolder)
	return nil
}

func (r *ChatFolderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ChatFolder{}).Error
}

func (r *ChatFolderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatFolder, error) {
	var modelFolder model.ChatFolder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelFolder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.FolderToEntity(&modelFolder), nil
}

func (r *ChatFolderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatFolder, error) {
	var modelFolders []*model.ChatFolder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelFolders).Error; err != nil {
		return nil, err
	}

	return r.mapper.FoldersToEntities(modelFolders), nil
}

func (r *ChatFolderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatFolder{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
