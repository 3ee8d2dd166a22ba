package ai

import "github.com/wldnd519/BE/internal/model"

const (
	SummaryInstruction = "다음은 노인 사용자와 AI 챗봇 간의 대화입니다. 해당 대화를 요약하여 보호자에게 전달할 수 있도록 간결하게 정리해 주세요."
	EmotionInstruction = "다음은 노인 사용자와 AI 챗봇의 대화입니다. 사용자의 감정을 분석하여 보호자에게 전달할 수 있도록 정리해 주세요. 예시: '전반적으로 불안감을 보였으며, 외로움과 건강에 대한 걱정을 나타냈습니다.'"
	AnalystInstruction = "당신은 감정 분석가입니다. 다음 대화를 보고 사용자의 현재 감정 상태를 추론하세요. 감정 키워드와 이유를 간결하게 설명해주세요."
)

// ConversationPrompt is the system instruction followed by one user/assistant
// pair per turn, in the order given.
func ConversationPrompt(instruction string, turns []model.ChatLog) []Message {
	msgs := make([]Message, 0, 1+2*len(turns))
	msgs = append(msgs, Message{Role: RoleSystem, Content: instruction})
	for _, t := range turns {
		msgs = append(msgs,
			Message{Role: RoleUser, Content: t.UserMessage},
			Message{Role: RoleAssistant, Content: t.BotReply},
		)
	}
	return msgs
}
