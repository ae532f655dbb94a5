package implementation

import (
	"context"
	"errors"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/mapper"
	"college-portal-be/internal/model"
	"college-portal-be/internal/repository/contract"
	"college-portal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoticeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoticeMapper
}

func NewNoticeRepository(db *gorm.DB) contract.NoticeRepository {
	return &NoticeRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoticeMapper(),
	}
}

func (r *NoticeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoticeRepositoryImpl) Create(ctx context.Context, notice *entity.Notice) error {
	m := r.mapper.ToModel(notice)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notice = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoticeRepositoryImpl) Update(ctx context.Context, notice *entity.Notice) error {
	m := r.mapper.ToModel(notice)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*notice = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoticeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Notice{}, id).Error
}

func (r *NoticeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notice, error) {
	var m model.Notice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoticeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notice, error) {
	var models []*model.Notice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
