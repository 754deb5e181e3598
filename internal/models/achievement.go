package models

import (
	"time"
)

type Achievement struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Title             string
	Description       string
	DateAchieved      time.Time
	TimeOfAchievement string
	Category          *string
	Tags              []string
	ProjectID         *int64 // set to nil when the owning project is deleted
	ProofURL          *string

	// Filled only when the listing asked for the project
	Project *Project
}

// AchievementFilter narrows and orders achievement listings.
// Zero values mean "not filtered".
type AchievementFilter struct {
	Search    string
	Category  string
	ProjectID *int64
	StartDate *time.Time
	EndDate   *time.Time

	SortBy    string
	SortOrder string

	IncludeProject bool
}
