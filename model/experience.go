package model

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresentSentinel marks an ongoing position in a period field.
const PresentSentinel = "Present"

// Experience represents a work experience entry. StartDate and EndDate are
// free-text periods such as "Jan 2024"; EndDate may be "Present".
type Experience struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Company     string             `json:"company" bson:"company"`
	Location    string             `json:"location" bson:"location"`
	StartDate   string             `json:"start_date" bson:"start_date"`
	EndDate     string             `json:"end_date" bson:"end_date"`
	Description []string           `json:"description" bson:"description"`
}

// ExperienceResponse is an Experience with its identifier rendered as a hex string.
type ExperienceResponse struct {
	ID string `json:"id"`
	Experience
}

// NewExperienceResponse converts a stored experience for the API surface.
func NewExperienceResponse(e Experience) ExperienceResponse {
	return ExperienceResponse{ID: e.ID.Hex(), Experience: e}
}

var periodLayouts = []string{"Jan 2006", "January 2006", "2006"}

// ParsePeriod parses a free-text period. "Present" sorts ahead of any real
// date. The second return value is false when the period is unparsable.
func ParsePeriod(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, PresentSentinel) {
		// Far-future sentinel so ongoing entries sort first.
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortExperiences orders entries for display: parsed end period descending,
// then start period descending. Entries with unparsable end periods sort last.
func SortExperiences(experiences []Experience) {
	sort.SliceStable(experiences, func(i, j int) bool {
		endI, okI := ParsePeriod(experiences[i].EndDate)
		endJ, okJ := ParsePeriod(experiences[j].EndDate)
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		if !endI.Equal(endJ) {
			return endI.After(endJ)
		}
		startI, okI := ParsePeriod(experiences[i].StartDate)
		startJ, okJ := ParsePeriod(experiences[j].StartDate)
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return startI.After(startJ)
	})
}
