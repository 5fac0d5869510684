package achievements

import "github.com/myrjola/adaptlearn/internal/models"

// Definitions is the predefined achievement catalogue. IDs are stable and
// referenced by persisted unlock snapshots, so they must never be reused.
var Definitions = []models.AchievementDefinition{
	{
		ID:          "first-quiz",
		Title:       "Quiz Rookie",
		Description: "Complete your first quiz",
		Criteria:    map[models.CounterName]int{models.CounterQuizzesTaken: 1},
	},
	{
		ID:          "quiz-master",
		Title:       "Quiz Master",
		Description: "Complete 5 quizzes",
		Criteria:    map[models.CounterName]int{models.CounterQuizzesTaken: 5},
	},
	{
		ID:          "quiz-legend",
		Title:       "Quiz Legend",
		Description: "Complete 20 quizzes",
		Criteria:    map[models.CounterName]int{models.CounterQuizzesTaken: 20},
	},
	{
		ID:          "first-simulation",
		Title:       "Scenario Starter",
		Description: "Run your first simulation",
		Criteria:    map[models.CounterName]int{models.CounterSimulationsRun: 1},
	},
	{
		ID:          "simulation-strategist",
		Title:       "Simulation Strategist",
		Description: "Run 5 simulations",
		Criteria:    map[models.CounterName]int{models.CounterSimulationsRun: 5},
	},
	{
		ID:          "first-role-play",
		Title:       "Method Actor",
		Description: "Complete your first role-play session",
		Criteria:    map[models.CounterName]int{models.CounterRolePlaysCompleted: 1},
	},
	{
		ID:          "conversationalist",
		Title:       "Conversationalist",
		Description: "Complete 5 role-play sessions",
		Criteria:    map[models.CounterName]int{models.CounterRolePlaysCompleted: 5},
	},
	{
		ID:          "well-rounded",
		Title:       "Well-Rounded Learner",
		Description: "Complete 3 quizzes, 3 simulations, and 3 role-plays",
		Criteria: map[models.CounterName]int{
			models.CounterQuizzesTaken:       3,
			models.CounterSimulationsRun:     3,
			models.CounterRolePlaysCompleted: 3,
		},
	},
	{
		ID:          "dedicated-learner",
		Title:       "Dedicated Learner",
		Description: "Complete 10 quizzes and 10 simulations",
		Criteria: map[models.CounterName]int{
			models.CounterQuizzesTaken:   10,
			models.CounterSimulationsRun: 10,
		},
	},
}
