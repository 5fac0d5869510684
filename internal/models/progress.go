package models

// CounterName identifies one of the tracked activity counters.
type CounterName string

const (
	CounterQuizzesTaken       CounterName = "quizzesTaken"
	CounterSimulationsRun     CounterName = "simulationsRun"
	CounterRolePlaysCompleted CounterName = "rolePlaysCompleted"
)

// ProgressCounters tracks completed activities for one user. Counters are
// monotonically non-decreasing: they are mutated only by completion events
// and never decremented.
type ProgressCounters struct {
	QuizzesTaken       int `json:"quizzesTaken"`
	SimulationsRun     int `json:"simulationsRun"`
	RolePlaysCompleted int `json:"rolePlaysCompleted"`
}

// Get returns the value of the named counter. Unknown names return zero.
func (p ProgressCounters) Get(name CounterName) int {
	switch name {
	case CounterQuizzesTaken:
		return p.QuizzesTaken
	case CounterSimulationsRun:
		return p.SimulationsRun
	case CounterRolePlaysCompleted:
		return p.RolePlaysCompleted
	}
	return 0
}

// Increment bumps the named counter by one and returns the updated snapshot.
func (p ProgressCounters) Increment(name CounterName) ProgressCounters {
	switch name {
	case CounterQuizzesTaken:
		p.QuizzesTaken++
	case CounterSimulationsRun:
		p.SimulationsRun++
	case CounterRolePlaysCompleted:
		p.RolePlaysCompleted++
	}
	return p
}
