package ai

import (
	"context"
	"encoding/json"

	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
)

type SuggestAchievementsRequest struct {
	Progress             models.ProgressCounters `json:"progress"`
	UnlockedAchievements []string                `json:"unlockedAchievements"`
}

type SuggestedAchievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
}

type SuggestAchievementsResponse struct {
	Achievements []SuggestedAchievement `json:"achievements"`
}

var suggestAchievementsSchema = &Schema{
	Name: "achievement_suggestions",
	Definition: json.RawMessage(`{
		"type": "object",
		"properties": {
			"achievements": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"title": {"type": "string"},
						"description": {"type": "string"},
						"progress": {"type": "integer", "minimum": 0, "maximum": 100},
						"unlocked": {"type": "boolean"}
					},
					"required": ["title", "description", "progress", "unlocked"],
					"additionalProperties": false
				}
			}
		},
		"required": ["achievements"],
		"additionalProperties": false
	}`),
}

// SuggestAchievements asks the model for additional achievements, locked and
// unlocked, tailored to the user's progress. The predefined catalogue stays
// the source of truth for persisted unlocks; these are display-only extras.
func (c *Client) SuggestAchievements(
	ctx context.Context,
	req SuggestAchievementsRequest,
) (SuggestAchievementsResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return SuggestAchievementsResponse{}, errors.Wrap(err, "marshal achievement suggestion request")
	}

	system := "You design motivating gamification achievements for a learning platform. " +
		"Given the user's progress counters and already unlocked titles, suggest new achievements " +
		"with an estimated progress percentage. Do not repeat unlocked titles."

	var response SuggestAchievementsResponse
	if err = c.generate(ctx, system, string(payload), suggestAchievementsSchema, &response); err != nil {
		return SuggestAchievementsResponse{}, errors.Wrap(err, "suggest achievements")
	}
	return response, nil
}
