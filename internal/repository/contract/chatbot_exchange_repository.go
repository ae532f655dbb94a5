package contract

import (
	"context"

	"college-portal-be/internal/entity"
	"college-portal-be/internal/repository/specification"
)

type ChatbotExchangeRepository interface {
	Create(ctx context.Context, exchange *entity.ChatbotExchange) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatbotExchange, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
