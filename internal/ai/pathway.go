package ai

import (
	"context"
	"encoding/json"

	"github.com/myrjola/adaptlearn/internal/errors"
)

type PathwayRequest struct {
	Skills      string `json:"skills"`
	Preferences string `json:"preferences"`
	Goals       string `json:"goals"`
	Domain      string `json:"domain"`
}

type PathwayResponse struct {
	LearningPathway string `json:"learningPathway"`
}

var pathwaySchema = &Schema{
	Name: "learning_pathway",
	Definition: json.RawMessage(`{
		"type": "object",
		"properties": {
			"learningPathway": {"type": "string"}
		},
		"required": ["learningPathway"],
		"additionalProperties": false
	}`),
}

// GeneratePathway builds a structured learning pathway tailored to the
// user's skills, preferences, and goals within a domain.
func (c *Client) GeneratePathway(ctx context.Context, req PathwayRequest) (PathwayResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return PathwayResponse{}, errors.Wrap(err, "marshal pathway request")
	}

	system := "You are a curriculum designer. Produce a structured, step-by-step learning pathway " +
		"for the given domain, connecting concepts from the user's current skills toward their goals."

	var response PathwayResponse
	if err = c.generate(ctx, system, string(payload), pathwaySchema, &response); err != nil {
		return PathwayResponse{}, errors.Wrap(err, "generate pathway")
	}
	return response, nil
}
