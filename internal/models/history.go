package models

import (
	"encoding/json"
	"time"

	"github.com/myrjola/adaptlearn/internal/errors"
)

// ActivityType discriminates the detail payload of a history item.
type ActivityType string

const (
	ActivityQuiz       ActivityType = "quiz"
	ActivitySimulation ActivityType = "simulation"
	ActivityRolePlay   ActivityType = "role-play"
)

var ErrUnknownActivityType = errors.NewSentinel("unknown activity type")

// Counter returns the progress counter incremented when an activity of this
// type completes.
func (t ActivityType) Counter() (CounterName, error) {
	switch t {
	case ActivityQuiz:
		return CounterQuizzesTaken, nil
	case ActivitySimulation:
		return CounterSimulationsRun, nil
	case ActivityRolePlay:
		return CounterRolePlaysCompleted, nil
	}
	return "", ErrUnknownActivityType
}

// HistoryItem is one completed activity in the user's append-only log.
// Items are immutable once created.
type HistoryItem struct {
	ID        string
	Type      ActivityType
	Title     string
	Timestamp time.Time
	Details   HistoryDetails
}

// HistoryDetails is the per-type payload of a history item. Exactly one
// concrete type exists per ActivityType.
type HistoryDetails interface {
	activityType() ActivityType
}

// QuizDetails records the questions, the user's answers, and the score of a
// completed quiz.
type QuizDetails struct {
	Topic      string               `json:"topic"`
	Difficulty string               `json:"difficulty"`
	Questions  []QuizQuestionResult `json:"questions"`
	Score      int                  `json:"score"`
}

func (QuizDetails) activityType() ActivityType { return ActivityQuiz }

// ComputeScore counts the questions where the selected answer matches the
// correct one.
func (d QuizDetails) ComputeScore() int {
	score := 0
	for _, q := range d.Questions {
		if q.SelectedAnswerIndex == q.CorrectAnswerIndex {
			score++
		}
	}
	return score
}

type QuizQuestionResult struct {
	Question            string   `json:"question"`
	Options             []string `json:"options"`
	CorrectAnswerIndex  int      `json:"correctAnswerIndex"`
	SelectedAnswerIndex int      `json:"selectedAnswerIndex"`
	Explanation         string   `json:"explanation,omitempty"`
}

// SimulationDetails records a completed simulation scenario.
type SimulationDetails struct {
	Description string   `json:"description"`
	Tasks       []string `json:"tasks"`
}

func (SimulationDetails) activityType() ActivityType { return ActivitySimulation }

// RolePlayDetails records the full transcript and role assignments of a
// completed role-play session.
type RolePlayDetails struct {
	ScenarioDescription string        `json:"scenarioDescription"`
	UserRole            string        `json:"userRole"`
	AIRole              string        `json:"aiRole"`
	Messages            []ChatMessage `json:"messages"`
}

func (RolePlayDetails) activityType() ActivityType { return ActivityRolePlay }

// historyItemJSON is the wire/storage representation of a HistoryItem with
// the details payload kept raw until the type is known.
type historyItemJSON struct {
	ID        string          `json:"id"`
	Type      ActivityType    `json:"type"`
	Title     string          `json:"title"`
	Timestamp time.Time       `json:"timestamp"`
	Details   json.RawMessage `json:"details,omitempty"`
}

func (i HistoryItem) MarshalJSON() ([]byte, error) {
	var (
		details json.RawMessage
		err     error
	)
	if i.Details != nil {
		if details, err = json.Marshal(i.Details); err != nil {
			return nil, errors.Wrap(err, "marshal history details")
		}
	}
	return json.Marshal(historyItemJSON{
		ID:        i.ID,
		Type:      i.Type,
		Title:     i.Title,
		Timestamp: i.Timestamp,
		Details:   details,
	})
}

func (i *HistoryItem) UnmarshalJSON(data []byte) error {
	var raw historyItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "unmarshal history item")
	}
	i.ID = raw.ID
	i.Type = raw.Type
	i.Title = raw.Title
	i.Timestamp = raw.Timestamp
	i.Details = nil
	if raw.Details == nil {
		return nil
	}
	switch raw.Type {
	case ActivityQuiz:
		var details QuizDetails
		if err := json.Unmarshal(raw.Details, &details); err != nil {
			return errors.Wrap(err, "unmarshal quiz details")
		}
		i.Details = details
	case ActivitySimulation:
		var details SimulationDetails
		if err := json.Unmarshal(raw.Details, &details); err != nil {
			return errors.Wrap(err, "unmarshal simulation details")
		}
		i.Details = details
	case ActivityRolePlay:
		var details RolePlayDetails
		if err := json.Unmarshal(raw.Details, &details); err != nil {
			return errors.Wrap(err, "unmarshal role-play details")
		}
		i.Details = details
	default:
		return errors.Wrap(ErrUnknownActivityType, "unmarshal history item")
	}
	return nil
}
