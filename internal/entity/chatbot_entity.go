package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatbotExchange is one archived question/answer pair from the support
// chatbot, persisted asynchronously after the gateway responds.
type ChatbotExchange struct {
	Id        uuid.UUID
	UserId    *uuid.UUID // nil for anonymous visitors
	Role      string     // audience role the prompt was built for
	Question  string
	Answer    string
	History   []ChatbotTurn
	CreatedAt time.Time
}

type ChatbotTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
