package model

import (
	"strings"
	"time"
)

// Session is one recorded robot interaction for a child. The owner id is
// denormalized from the child so ownership checks never need a second read.
type Session struct {
	ID          string    `json:"id"`
	ChildID     string    `json:"child_id"`
	OwnerUserID string    `json:"owner_user_id"`
	Mood        string    `json:"mood,omitempty"`
	Environment string    `json:"environment,omitempty"`
	Context     string    `json:"context"`
	Prompt      string    `json:"prompt"`
	CreatedAt   time.Time `json:"created_at"`
}

var moods = []string{"calm", "happy", "anxious", "uncomfortable", "angry", "tired"}

var (
	environmentLocations = []string{"loc_indoor", "loc_outdoor"}
	environmentNoises    = []string{"noise_quiet", "noise_moderate", "noise_noisy"}
	environmentCrowds    = []string{"crowd_alone", "crowd_few", "crowd_many"}
)

func ValidMood(mood string) bool {
	return containsToken(moods, mood)
}

// ValidEnvironment checks the three comma-separated scene tokens in order:
// location, noise level, crowding.
func ValidEnvironment(raw string) bool {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return false
	}
	return containsToken(environmentLocations, strings.TrimSpace(parts[0])) &&
		containsToken(environmentNoises, strings.TrimSpace(parts[1])) &&
		containsToken(environmentCrowds, strings.TrimSpace(parts[2]))
}
