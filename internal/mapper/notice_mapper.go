package mapper

import (
	"encoding/json"
	"time"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/model"

	"gorm.io/datatypes"
)

type NoticeMapper struct{}

func NewNoticeMapper() *NoticeMapper {
	return &NoticeMapper{}
}

func (m *NoticeMapper) ToEntity(n *model.Notice) *entity.Notice {
	if n == nil {
		return nil
	}

	var audience []string
	if len(n.TargetAudience) > 0 {
		// Malformed rows degrade to an untargeted (everyone) notice.
		_ = json.Unmarshal(n.TargetAudience, &audience)
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Notice{
		Id:             n.Id,
		Title:          n.Title,
		Content:        n.Content,
		Priority:       n.Priority,
		TargetAudience: audience,
		IsActive:       n.IsActive,
		ExpiresAt:      n.ExpiresAt,
		CreatedBy:      n.CreatedBy,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *NoticeMapper) ToModel(n *entity.Notice) *model.Notice {
	if n == nil {
		return nil
	}

	var audience datatypes.JSON
	if len(n.TargetAudience) > 0 {
		raw, _ := json.Marshal(n.TargetAudience)
		audience = datatypes.JSON(raw)
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Notice{
		Id:             n.Id,
		Title:          n.Title,
		Content:        n.Content,
		Priority:       n.Priority,
		TargetAudience: audience,
		IsActive:       n.IsActive,
		ExpiresAt:      n.ExpiresAt,
		CreatedBy:      n.CreatedBy,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *NoticeMapper) ToEntities(models []*model.Notice) []*entity.Notice {
	entities := make([]*entity.Notice, len(models))
	for i, n := range models {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
