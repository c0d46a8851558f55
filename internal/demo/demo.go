// Package demo fabricates the bio, review history, projects and feedback shown on the
// employee detail view. The upstream API has none of this; content is seeded by employee
// ID so the same employee always reads the same.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/tamathecxder/randomail"
)

const (
	projectCount  = 3
	feedbackCount = 5
	minExperience = 1
)

//nolint:gochecknoglobals // static demo vocabularies
var (
	historyPeriods = []string{"Q1 2023", "Q2 2023", "Q3 2023", "Q4 2023", "Q1 2024", "Q2 2024"}

	reviewNotes = []string{
		"Consistently meets deadlines and delivers quality work.",
		"Excellent team player with strong communication skills.",
		"Needs improvement in documentation and knowledge sharing.",
		"Exceeds expectations in problem-solving and innovation.",
		"Shows great potential but needs more focus on details.",
		"Outstanding performance in client-facing activities.",
		"Demonstrates leadership qualities and mentors junior staff.",
		"Technical skills are strong but could improve soft skills.",
		"Highly adaptable and quick to learn new technologies.",
		"Valuable contributor to team success and morale.",
	}

	backgrounds = []string{
		"finance", "marketing", "software development", "data analysis",
		"project management", "customer relations", "operations", "research",
		"design", "consulting", "education", "healthcare",
	}

	skills = []string{
		"strategic planning", "team leadership", "data analysis", "project management",
		"communication", "problem-solving", "innovation", "client relations",
		"technical expertise", "process optimization", "cross-functional collaboration",
		"mentoring", "research", "presentation skills", "negotiation",
	}

	projectNames = []string{
		"Website Redesign", "Mobile App Development", "Data Migration",
		"Cloud Infrastructure", "Security Audit", "Performance Optimization",
		"Customer Portal", "Internal Dashboard", "API Integration",
		"Automation System", "Analytics Platform", "Training Program",
	}

	projectStatuses = []string{"Not Started", "In Progress", "On Hold", "Completed"}
	projectRoles    = []string{"Lead", "Member", "Consultant", "Manager"}

	feedbackTypes = []string{"Peer Review", "Manager Review", "Self Assessment", "Client Feedback"}

	feedbackContent = []string{
		"Consistently delivers high-quality work and meets deadlines.",
		"Excellent team player who collaborates effectively with others.",
		"Strong problem-solving skills and attention to detail.",
		"Takes initiative and goes above and beyond expectations.",
		"Communicates clearly and effectively with team members and stakeholders.",
		"Demonstrates leadership qualities and mentors junior team members.",
		"Adapts quickly to changing priorities and requirements.",
		"Could improve documentation and knowledge sharing practices.",
		"Needs to work on time management and prioritization skills.",
		"Technical skills are strong but could improve soft skills.",
	}

	reviewers = []string{"John Doe", "Jane Smith", "Robert Johnson", "Emily Davis", "Michael Wilson"}

	epoch   = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	horizon = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
)

// Enrich attaches demo content to employee. Dates are drawn between 2023-01-01 and 2024-07-01
// and capped at until, so a given employee reads the same on every request.
// The employee's own Performance is copied through untouched.
func Enrich(employee models.Employee, until time.Time) models.EmployeeDetail {
	rng := rand.New(rand.NewPCG(uint64(employee.ID), 0x9e3779b97f4a7c15)) //nolint:gosec // demo data

	return models.EmployeeDetail{
		Employee:           employee,
		Bio:                bio(rng, employee),
		PerformanceHistory: history(rng),
		Projects:           projects(rng, until),
		Feedback:           feedback(rng, until),
	}
}

func bio(rng *rand.Rand, employee models.Employee) string {
	department := func(fallback string) string {
		if employee.Department == "" {
			return fallback
		}
		return employee.Department
	}
	experience := max(employee.Age-20, minExperience) //nolint:mnd // career start age

	switch rng.IntN(4) { //nolint:mnd // number of templates
	case 0:
		return fmt.Sprintf("%s is a dedicated professional with %d years of experience in the %s. "+
			"Known for attention to detail and problem-solving skills.",
			employee.FirstName, experience, department("industry"))
	case 1:
		return fmt.Sprintf("A results-driven %s with expertise in strategic planning and team leadership. "+
			"%s consistently exceeds expectations and drives innovation.",
			department("professional"), employee.FirstName)
	case 2: //nolint:mnd // template index
		return fmt.Sprintf("%s brings a unique perspective to the %s with a background in %s. "+
			"Passionate about delivering high-quality results and mentoring junior team members.",
			employee.FirstName, department("team"), pick(rng, backgrounds))
	default:
		return fmt.Sprintf("With a focus on %s and %s, %s has contributed significantly to key projects "+
			"and initiatives. Known for collaborative approach and analytical thinking.",
			pick(rng, skills), pick(rng, skills), employee.FirstName)
	}
}

func history(rng *rand.Rand) []models.PerformanceReview {
	reviews := make([]models.PerformanceReview, 0, len(historyPeriods))
	for _, period := range historyPeriods {
		reviews = append(reviews, models.PerformanceReview{
			Period:   period,
			Rating:   rating(rng),
			Feedback: pick(rng, reviewNotes),
		})
	}
	return reviews
}

func projects(rng *rand.Rand, until time.Time) []models.Project {
	out := make([]models.Project, 0, projectCount)
	for range projectCount {
		start := date(rng, until)
		out = append(out, models.Project{
			ID:         rng.IntN(1000) + 1, //nolint:mnd // demo id range
			Name:       pick(rng, projectNames),
			Status:     pick(rng, projectStatuses),
			Role:       pick(rng, projectRoles),
			Completion: rng.IntN(100), //nolint:mnd // percent
			StartDate:  start,
			EndDate:    start.AddDate(0, rng.IntN(12)+1, 0), //nolint:mnd // project length in months
		})
	}
	return out
}

func feedback(rng *rand.Rand, until time.Time) []models.Feedback {
	out := make([]models.Feedback, 0, feedbackCount)
	for range feedbackCount {
		out = append(out, models.Feedback{
			ID:        rng.IntN(1000) + 1, //nolint:mnd // demo id range
			Type:      pick(rng, feedbackTypes),
			Content:   pick(rng, feedbackContent),
			Rating:    rating(rng),
			Date:      date(rng, until),
			From:      pick(rng, reviewers),
			FromEmail: randomail.GenerateRandomEmail(),
		})
	}
	return out
}

func rating(rng *rand.Rand) int {
	return rng.IntN(models.MaxRating) + models.MinRating
}

// date always consumes one draw so later fields do not depend on until.
func date(rng *rand.Rand, until time.Time) time.Time {
	drawn := epoch.Add(time.Duration(rng.Int64N(int64(horizon.Sub(epoch))))).Truncate(time.Hour)

	switch {
	case until.Before(epoch):
		return epoch
	case drawn.After(until):
		return until.Truncate(time.Hour)
	default:
		return drawn
	}
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
