package contract

import (
	"context"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/repository/specification"
)

type LiveChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
