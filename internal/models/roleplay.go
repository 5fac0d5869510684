package models

// ChatRole is the author of a chat message in a role-play transcript.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of a role-play transcript. AudioDataURI carries the
// synthesized speech for model messages when voice chat is enabled.
type ChatMessage struct {
	Role         ChatRole `json:"role"`
	Content      string   `json:"content"`
	AudioDataURI string   `json:"audioDataUri,omitempty"`
}

// Scenario is the setup of a role-play session.
type Scenario struct {
	Description  string `json:"scenarioDescription"`
	UserRole     string `json:"userRole"`
	AIRole       string `json:"aiRole"`
	VoiceEnabled bool   `json:"voiceChatEnabled"`
}
