package unitofwork

import (
	"context"

	"college-portal-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LiveChatSessionRepository() contract.LiveChatSessionRepository
	LiveChatMessageRepository() contract.LiveChatMessageRepository
	NoticeRepository() contract.NoticeRepository
	ChatbotExchangeRepository() contract.ChatbotExchangeRepository
}
