package models

import "time"

// Bounds of the performance scale.
const (
	MinRating = 1
	MaxRating = 5
)

// EmployeeDetail is an employee enriched with the content shown on the detail view.
type EmployeeDetail struct {
	Employee

	Bio                string              `json:"bio"`
	PerformanceHistory []PerformanceReview `json:"performanceHistory"`
	Projects           []Project           `json:"projects"`
	Feedback           []Feedback          `json:"feedback"`
}

type PerformanceReview struct {
	Period   string `json:"period"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

type Project struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Role       string    `json:"role"`
	Completion int       `json:"completion"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

type Feedback struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Date      time.Time `json:"date"`
	From      string    `json:"from"`
	FromEmail string    `json:"fromEmail"`
}

// PerformanceLevel is a human label for a rating plus the badge style used to render it.
type PerformanceLevel struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// PerformanceLevelFor maps a rating onto its label.
func PerformanceLevelFor(rating int) PerformanceLevel {
	switch {
	case rating <= 2: //nolint:mnd // scale boundaries
		return PerformanceLevel{Label: "Needs Improvement", Type: "danger"}
	case rating <= 3: //nolint:mnd // scale boundaries
		return PerformanceLevel{Label: "Satisfactory", Type: "warning"}
	case rating <= 4: //nolint:mnd // scale boundaries
		return PerformanceLevel{Label: "Good", Type: "info"}
	default:
		return PerformanceLevel{Label: "Excellent", Type: "success"}
	}
}
