package contract

import (
	"context"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *entity.Notice) error
	Update(ctx context.Context, notice *entity.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notice, error)
}
