package dto

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendChatResponse struct {
	Reply string `json:"reply"`
}
