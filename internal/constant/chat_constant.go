package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Free tier allowance when no active subscription exists.
	FreeTierDailyLimit = 10

	// Fallbacks when chat title generation fails.
	DefaultChatTitle = "Новый чат"
	DefaultChatEmoji = "💭"

	// Returned as the assistant message when the model call fails.
	ChatErrorFallbackMessage = "Извините, произошла ошибка при обработке сообщения. Пожалуйста, попробуйте позже."
)

const (
	BotStyleStandard     = "standard"
	BotStyleFriendly     = "friendly"
	BotStyleProfessional = "professional"
	BotStyleConcise      = "concise"
	BotStyleCreative     = "creative"
)

// BotStylePrompts maps a chat's bot style to the system prompt sent to
// the model. Unknown styles fall back to the standard prompt.
var BotStylePrompts = map[string]string{
	BotStyleFriendly:     "Ты дружелюбный и отзывчивый помощник. Используй неформальный стиль общения, будь позитивным и эмпатичным.",
	BotStyleProfessional: "Ты профессиональный ассистент. Используй формальный стиль общения, будь точным и информативным.",
	BotStyleConcise:      "Ты лаконичный помощник. Давай короткие, но полные ответы без лишних деталей.",
	BotStyleCreative:     "Ты креативный помощник. Используй образные выражения, метафоры и будь находчивым в ответах.",
	BotStyleStandard:     "Ты универсальный помощник. Адаптируй свой стиль под контекст разговора.",
}

// SystemPromptByStyle resolves the system prompt for a bot style.
func SystemPromptByStyle(style string) string {
	if prompt, ok := BotStylePrompts[style]; ok {
		return prompt
	}
	return BotStylePrompts[BotStyleStandard]
}
