package model

import "time"

// Child is a child profile owned by exactly one user. Profiles are
// append-only: every field, keywords included, is fixed at creation.
type Child struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Nickname    string    `json:"nickname"`
	Age         int       `json:"age"`
	CommLevel   string    `json:"comm_level,omitempty"`
	Personality string    `json:"personality,omitempty"`
	Notes       string    `json:"notes"`
	Preferences string    `json:"preferences,omitempty"`
	Keywords    []string  `json:"keywords"`
	CreatedAt   time.Time `json:"created_at"`
}

var commLevels = []string{"low", "medium", "high"}

var personalities = []string{"shy", "active", "calm", "curious"}

func ValidCommLevel(level string) bool {
	return containsToken(commLevels, level)
}

func ValidPersonality(personality string) bool {
	return containsToken(personalities, personality)
}

func containsToken(tokens []string, value string) bool {
	for _, token := range tokens {
		if token == value {
			return true
		}
	}
	return false
}
