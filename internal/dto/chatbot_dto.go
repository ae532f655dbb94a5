package dto

type ChatbotTurnPayload struct {
	Role    string `json:"role" validate:"required,oneof=user model assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatbotRequest struct {
	Message string               `json:"message" validate:"required"`
	Role    string               `json:"role" validate:"omitempty,oneof=student faculty visitor"`
	History []ChatbotTurnPayload `json:"history" validate:"dive"`
}

type ChatbotResponse struct {
	Reply string `json:"reply"`
}
