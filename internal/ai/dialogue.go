package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/sashabaranov/go-openai"
)

// DialogueRequest carries a role-play scenario and the full prior transcript.
type DialogueRequest struct {
	Scenario models.Scenario
	History  []models.ChatMessage
}

// DialogueResponse is the model's next line. AudioDataURI is set when voice
// chat is enabled and server-side synthesis succeeded.
type DialogueResponse struct {
	Response     string `json:"response"`
	AudioDataURI string `json:"audioDataUri,omitempty"`
}

// Dialogue generates the AI's next in-character line for a role-play session.
// With an empty history it produces the opening line of the scenario.
func (c *Client) Dialogue(ctx context.Context, req DialogueRequest) (DialogueResponse, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(
				`You are an expert actor simulating a real-world scenario for skill practice.
You stay in character as %q and never break character.
The user plays the role of %q.
The scenario: %s`,
				req.Scenario.AIRole, req.Scenario.UserRole, req.Scenario.Description),
		},
	}
	if len(req.History) == 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: "This is the beginning of the conversation. Open the scenario in character.",
		})
	}
	for _, message := range req.History {
		role := openai.ChatMessageRoleUser
		if message.Role == models.ChatRoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: message.Content})
	}

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
		Model:     c.model,
		MaxTokens: MaxTokens,
		Messages:  messages,
	})
	if err != nil {
		return DialogueResponse{}, errors.Wrap(err, "create dialogue completion")
	}
	if len(completion.Choices) == 0 {
		return DialogueResponse{}, errors.New("no choices in dialogue completion")
	}

	response := DialogueResponse{Response: completion.Choices[0].Message.Content}

	if req.Scenario.VoiceEnabled {
		// Synthesis failures are not worth failing the whole turn for. The
		// session manager falls back to on-device synthesis when the data URI
		// is missing.
		if response.AudioDataURI, err = c.synthesize(ctx, response.Response, req.Scenario.AIRole); err != nil {
			response.AudioDataURI = ""
		}
	}

	return response, nil
}

// synthesize renders text to speech and returns it as a data URI.
func (c *Client) synthesize(ctx context.Context, text string, aiRole string) (string, error) {
	speech, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{ //nolint:exhaustruct // this is better for readability
		Model: openai.TTSModel1,
		Input: text,
		Voice: voiceForRole(aiRole),
	})
	if err != nil {
		return "", errors.Wrap(err, "create speech")
	}
	defer speech.Close()

	audio, err := io.ReadAll(speech)
	if err != nil {
		return "", errors.Wrap(err, "read speech audio")
	}
	return fmt.Sprintf("data:audio/mpeg;base64,%s", base64.StdEncoding.EncodeToString(audio)), nil
}

// voiceForRole picks a synthesis voice from keywords in the AI's role name.
func voiceForRole(aiRole string) openai.SpeechVoice {
	role := strings.ToLower(aiRole)
	for _, keyword := range []string{"woman", "female", "girl", "mother", "nurse"} {
		if strings.Contains(role, keyword) {
			return openai.VoiceNova
		}
	}
	for _, keyword := range []string{"man", "male", "boy", "father"} {
		if strings.Contains(role, keyword) {
			return openai.VoiceOnyx
		}
	}
	return openai.VoiceAlloy
}
