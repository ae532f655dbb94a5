package implementation

import (
	"context"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/mapper"
	"college-portal-be/internal/model"
	"college-portal-be/internal/repository/contract"
	"college-portal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LiveChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LiveChatMapper
}

func NewLiveChatMessageRepository(db *gorm.DB) contract.LiveChatMessageRepository {
	return &LiveChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewLiveChatMapper(),
	}
}

func (r *LiveChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LiveChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *LiveChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.LiveChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *LiveChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LiveChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
