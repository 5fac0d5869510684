package models

import "time"

// AchievementDefinition declares a named achievement and the counter
// thresholds that gate it.
type AchievementDefinition struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Criteria    map[CounterName]int `json:"criteria"`
}

// Achievement is the derived unlock state of a definition against a progress
// snapshot. Progress and UnlockedAt are recomputed, never stored as source of
// truth beyond the unlock moment, which is sticky.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Criteria    map[CounterName]int `json:"criteria"`
	// UnlockedAt is nil until the achievement unlocks and never changes afterwards.
	UnlockedAt *time.Time `json:"unlockedAt"`
	// Progress is the completion percentage in the range 0-100.
	Progress int `json:"progress"`
}

// Unlocked reports whether the achievement has been unlocked.
func (a Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}
