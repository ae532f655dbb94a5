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

type LiveChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LiveChatMapper
}

func NewLiveChatSessionRepository(db *gorm.DB) contract.LiveChatSessionRepository {
	return &LiveChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewLiveChatMapper(),
	}
}

func (r *LiveChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LiveChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *LiveChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.LiveChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *LiveChatSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var models []*model.LiveChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SessionsToEntities(models), nil
}

func (r *LiveChatSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LiveChatSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TransitionStatus relies on the database's single-row update atomicity: the
// WHERE clause re-checks the expected status, so concurrent transitions from
// the same state resolve to exactly one winner without explicit locking.
func (r *LiveChatSessionRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, expected entity.SessionStatus, transition contract.StatusTransition) (bool, error) {
	updates := map[string]interface{}{
		"status": string(transition.NewStatus),
	}
	if transition.FacultyId != nil {
		updates["faculty_id"] = *transition.FacultyId
	}
	if transition.AcceptedAt != nil {
		updates["accepted_at"] = *transition.AcceptedAt
	}
	if transition.ClosedAt != nil {
		updates["closed_at"] = *transition.ClosedAt
	}

	result := r.db.WithContext(ctx).
		Model(&model.LiveChatSession{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
