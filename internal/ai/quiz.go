package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/adaptlearn/internal/errors"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var ErrInvalidQuizRequest = errors.NewSentinel("invalid quiz request")

type QuizRequest struct {
	Domain            string     `json:"domain"`
	Topic             string     `json:"topic"`
	Difficulty        Difficulty `json:"difficulty"`
	NumberOfQuestions int        `json:"numberOfQuestions"`
}

// Validate checks the request bounds before any model call is made.
func (r QuizRequest) Validate() error {
	switch r.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return errors.Wrap(ErrInvalidQuizRequest, fmt.Sprintf("unknown difficulty %q", r.Difficulty))
	}
	if r.NumberOfQuestions < 1 || r.NumberOfQuestions > 20 {
		return errors.Wrap(ErrInvalidQuizRequest, "numberOfQuestions must be between 1 and 20")
	}
	return nil
}

type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

type QuizResponse struct {
	Quiz []QuizQuestion `json:"quiz"`
}

var quizSchema = &Schema{
	Name: "quiz",
	Definition: json.RawMessage(`{
		"type": "object",
		"properties": {
			"quiz": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string"},
						"options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
						"correctAnswerIndex": {"type": "integer", "minimum": 0},
						"explanation": {"type": "string"}
					},
					"required": ["question", "options", "correctAnswerIndex", "explanation"],
					"additionalProperties": false
				}
			}
		},
		"required": ["quiz"],
		"additionalProperties": false
	}`),
}

// GenerateQuiz creates a domain-specific multiple-choice quiz.
func (c *Client) GenerateQuiz(ctx context.Context, req QuizRequest) (QuizResponse, error) {
	if err := req.Validate(); err != nil {
		return QuizResponse{}, err
	}

	system := "You are an expert educator generating multiple-choice quizzes. " +
		"Every question has exactly one correct answer and a short explanation."
	user := fmt.Sprintf(
		"Generate a %s-level quiz with %d questions on the topic %q in the %q domain.",
		req.Difficulty, req.NumberOfQuestions, req.Topic, req.Domain)

	var response QuizResponse
	if err := c.generate(ctx, system, user, quizSchema, &response); err != nil {
		return QuizResponse{}, errors.Wrap(err, "generate quiz")
	}
	return response, nil
}
