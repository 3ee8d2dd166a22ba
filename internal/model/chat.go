package model

import "time"

// ChatLog is one conversational turn: what the senior said and what the companion answered.
type ChatLog struct {
	ID          string    `json:"id"`
	SeniorID    string    `json:"userId"`
	UserMessage string    `json:"userMessage"`
	BotReply    string    `json:"botReply"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type EmotionResponse struct {
	EmotionAnalysis string `json:"emotionAnalysis"`
}

type TestEmailRequest struct {
	ToEmail string `json:"toEmail"`
	Content string `json:"content"`
}
