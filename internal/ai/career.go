package ai

import (
	"context"
	"encoding/json"

	"github.com/myrjola/adaptlearn/internal/errors"
)

type CareerRequest struct {
	LearningJourney string `json:"learningJourney"`
	Goals           string `json:"goals"`
	Interests       string `json:"interests"`
}

type CareerResponse struct {
	CareerPaths    []string `json:"careerPaths"`
	Certifications []string `json:"certifications"`
	Skills         []string `json:"skills"`
}

var careerSchema = &Schema{
	Name: "career_suggestions",
	Definition: json.RawMessage(`{
		"type": "object",
		"properties": {
			"careerPaths": {"type": "array", "items": {"type": "string"}},
			"certifications": {"type": "array", "items": {"type": "string"}},
			"skills": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["careerPaths", "certifications", "skills"],
		"additionalProperties": false
	}`),
}

// SuggestCareers suggests career paths, certifications, and skills to develop
// based on the user's learning journey.
func (c *Client) SuggestCareers(ctx context.Context, req CareerRequest) (CareerResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return CareerResponse{}, errors.Wrap(err, "marshal career request")
	}

	system := "You are a career advisor. Suggest realistic career paths, useful certifications, " +
		"and concrete skills to develop, grounded in the user's learning journey and goals."

	var response CareerResponse
	if err = c.generate(ctx, system, string(payload), careerSchema, &response); err != nil {
		return CareerResponse{}, errors.Wrap(err, "suggest careers")
	}
	return response, nil
}
