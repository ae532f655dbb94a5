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

type ChatbotExchangeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatbotMapper
}

func NewChatbotExchangeRepository(db *gorm.DB) contract.ChatbotExchangeRepository {
	return &ChatbotExchangeRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatbotMapper(),
	}
}

func (r *ChatbotExchangeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatbotExchangeRepositoryImpl) Create(ctx context.Context, exchange *entity.ChatbotExchange) error {
	m := r.mapper.ToModel(exchange)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*exchange = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatbotExchangeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatbotExchange, error) {
	var models []*model.ChatbotExchange
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatbotExchange, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ChatbotExchangeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatbotExchange{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
