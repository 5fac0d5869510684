package ai

import (
	"context"
	"encoding/json"

	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
)

type ReportRequest struct {
	Domain          string                  `json:"domain"`
	LearningHistory models.ProgressCounters `json:"learningHistory"`
	ActivityLog     []models.HistoryItem    `json:"activityLog"`
	Goals           string                  `json:"goals"`
	Preferences     string                  `json:"preferences"`
}

type ReportResponse struct {
	Strengths       string `json:"strengths"`
	Weaknesses      string `json:"weaknesses"`
	GrowthAreas     string `json:"growthAreas"`
	OverallFeedback string `json:"overallFeedback"`
}

var reportSchema = &Schema{
	Name: "performance_report",
	Definition: json.RawMessage(`{
		"type": "object",
		"properties": {
			"strengths": {"type": "string"},
			"weaknesses": {"type": "string"},
			"growthAreas": {"type": "string"},
			"overallFeedback": {"type": "string"}
		},
		"required": ["strengths", "weaknesses", "growthAreas", "overallFeedback"],
		"additionalProperties": false
	}`),
}

// GenerateReport produces an encouraging, constructive performance report
// from the user's progress metrics and activity log.
func (c *Client) GenerateReport(ctx context.Context, req ReportRequest) (ReportResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return ReportResponse{}, errors.Wrap(err, "marshal report request")
	}

	system := "You are an AI learning assistant that specializes in personalized feedback. " +
		"Analyze the activity log for patterns: repeated low quiz scores are a weakness, " +
		"consistent completions are a strength. Be encouraging and constructive."

	var response ReportResponse
	if err = c.generate(ctx, system, string(payload), reportSchema, &response); err != nil {
		return ReportResponse{}, errors.Wrap(err, "generate report")
	}
	return response, nil
}
