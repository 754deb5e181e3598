package models

import (
	"time"
)

type Project struct {
	ID               int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Title            string
	Company          *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	TeamSize         *int32
	Role             *string
	Responsibilities []string
	Technologies     []string

	// Filled only when the listing asked for achievements
	Achievements []Achievement
}

// ProjectFilter narrows and orders project listings.
// Zero values mean "not filtered".
type ProjectFilter struct {
	Search     string
	Company    string
	Technology string
	StartDate  *time.Time
	EndDate    *time.Time

	SortBy    string
	SortOrder string

	IncludeAchievements bool
}
