package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myrjola/adaptlearn/internal/errors"
)

type ScenarioResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tasks       []string `json:"tasks"`
}

var scenarioSchema = &Schema{
	Name: "simulation_scenario",
	Definition: json.RawMessage(`{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"description": {"type": "string"},
			"tasks": {"type": "array", "items": {"type": "string"}, "minItems": 3, "maxItems": 5}
		},
		"required": ["title", "description", "tasks"],
		"additionalProperties": false
	}`),
}

// GenerateScenario creates a simulation scenario for the domain with 3-5
// actionable tasks.
func (c *Client) GenerateScenario(ctx context.Context, domain string) (ScenarioResponse, error) {
	system := "You design immersive practice simulations. Set the scene with a vivid description " +
		"and give the user specific, actionable tasks to complete."
	user := fmt.Sprintf("Generate a simulation scenario for the %q domain.", domain)

	var response ScenarioResponse
	if err := c.generate(ctx, system, user, scenarioSchema, &response); err != nil {
		return ScenarioResponse{}, errors.Wrap(err, "generate scenario")
	}
	return response, nil
}
