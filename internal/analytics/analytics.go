// Package analytics computes summary statistics over an employee roster.
package analytics

import (
	"slices"

	"github.com/UnknownOlympus/athena/internal/models"
)

const (
	// TopPerformersLimit caps Summary.TopPerformers.
	TopPerformersLimit = 5
	// TopPerformerThreshold is the minimum rating of a top performer.
	TopPerformerThreshold = 4
	// OtherDepartment buckets employees without a department.
	OtherDepartment = "Other"
	// NoDepartment is reported as the top department of an empty roster.
	NoDepartment = "N/A"
)

// Summary is recomputed from scratch for every roster; it is never updated in place.
type Summary struct {
	TotalEmployees     int                `json:"totalEmployees"`
	AverageRating      float64            `json:"averageRating"`
	DepartmentAverages map[string]float64 `json:"departmentAverages"`
	DepartmentCounts   map[string]int     `json:"departmentCounts"`
	Departments        []string           `json:"departments"`
	TopDepartment      string             `json:"topDepartment"`
	RatingDistribution [5]int             `json:"ratingDistribution"`
	TopPerformers      []models.Employee  `json:"topPerformers"`
}

// Aggregate builds the Summary of employees.
//
// Ratings outside the scale are clamped into it before they are counted, so the
// distribution always accounts for every employee included in the averages.
func Aggregate(employees []models.Employee) Summary {
	summary := Summary{
		DepartmentAverages: make(map[string]float64),
		DepartmentCounts:   make(map[string]int),
		Departments:        []string{},
		TopDepartment:      NoDepartment,
		TopPerformers:      []models.Employee{},
	}

	if len(employees) == 0 {
		return summary
	}

	var total int
	sums := make(map[string]int)

	for _, employee := range employees {
		rating := Clamp(employee.Performance)
		department := employee.Department
		if department == "" {
			department = OtherDepartment
		}

		total += rating
		summary.RatingDistribution[rating-1]++

		if _, ok := summary.DepartmentCounts[department]; !ok {
			summary.Departments = append(summary.Departments, department)
		}
		sums[department] += rating
		summary.DepartmentCounts[department]++
	}

	summary.TotalEmployees = len(employees)
	summary.AverageRating = float64(total) / float64(len(employees))

	var highest float64
	for _, department := range summary.Departments {
		avg := float64(sums[department]) / float64(summary.DepartmentCounts[department])
		summary.DepartmentAverages[department] = avg

		// strictly greater: the first department reaching the maximum keeps it
		if avg > highest {
			highest = avg
			summary.TopDepartment = department
		}
	}

	summary.TopPerformers = TopPerformers(employees, TopPerformersLimit)

	return summary
}

// TopPerformers returns at most limit employees rated at or above TopPerformerThreshold,
// best first. Ratings are clamped before they are compared, and employees with equal ratings keep
// their input order.
func TopPerformers(employees []models.Employee, limit int) []models.Employee {
	top := make([]models.Employee, 0, limit)
	for _, employee := range employees {
		if Clamp(employee.Performance) >= TopPerformerThreshold {
			top = append(top, employee)
		}
	}

	slices.SortStableFunc(top, func(a, b models.Employee) int {
		return Clamp(b.Performance) - Clamp(a.Performance)
	})

	if len(top) > limit {
		top = top[:limit]
	}

	return top
}

// Clamp forces rating into the rating scale.
func Clamp(rating int) int {
	return min(max(rating, models.MinRating), models.MaxRating)
}
