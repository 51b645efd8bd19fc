package dto

type BotStyleOption struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserSettingsResponse struct {
	DefaultBotStyle    string           `json:"default_bot_style"`
	AvailableBotStyles []BotStyleOption `json:"available_bot_styles"`
}

type UpdateSettingsRequest struct {
	DefaultBotStyle *string `json:"default_bot_style,omitempty"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AboutMe   *string `json:"about_me,omitempty"`
}
