// Package filter derives the visible employee subset from a free-text query and
// department/rating facets.
package filter

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/athena/internal/models"
)

// Query parameter names understood by ParseQuery.
const (
	ParamSearch     = "q"
	ParamDepartment = "department"
	ParamRating     = "rating"
)

// Ratings lists the rating facet values offered to the user.
var Ratings = []int{1, 2, 3, 4, 5} //nolint:gochecknoglobals // fixed facet values

// State is the active search text and facet selection. Empty fields match everything.
type State struct {
	SearchText  string
	Departments []string
	Ratings     []int
}

// ToggleDepartment removes department when selected, otherwise appends it.
func (s *State) ToggleDepartment(department string) {
	s.Departments = toggle(s.Departments, department)
}

// ToggleRating removes rating when selected, otherwise appends it.
func (s *State) ToggleRating(rating int) {
	s.Ratings = toggle(s.Ratings, rating)
}

// ToggledDepartment returns a copy of s with department toggled.
func (s State) ToggledDepartment(department string) State {
	c := s.clone()
	c.ToggleDepartment(department)
	return c
}

// ToggledRating returns a copy of s with rating toggled.
func (s State) ToggledRating(rating int) State {
	c := s.clone()
	c.ToggleRating(rating)
	return c
}

// HasDepartment reports whether department is selected.
func (s State) HasDepartment(department string) bool {
	return slices.Contains(s.Departments, department)
}

// HasRating reports whether rating is selected.
func (s State) HasRating(rating int) bool {
	return slices.Contains(s.Ratings, rating)
}

// IsEmpty reports whether no criterion is active.
func (s State) IsEmpty() bool {
	return s.SearchText == "" && len(s.Departments) == 0 && len(s.Ratings) == 0
}

// Query encodes s as URL query values, the inverse of ParseQuery.
func (s State) Query() url.Values {
	values := url.Values{}
	if s.SearchText != "" {
		values.Set(ParamSearch, s.SearchText)
	}
	for _, department := range s.Departments {
		values.Add(ParamDepartment, department)
	}
	for _, rating := range s.Ratings {
		values.Add(ParamRating, strconv.Itoa(rating))
	}
	return values
}

// ParseQuery reads a State from URL query values. Repeated values are collapsed and
// ratings that are not integers in the rating scale are dropped.
func ParseQuery(values url.Values) State {
	state := State{SearchText: strings.TrimSpace(values.Get(ParamSearch))}

	for _, department := range values[ParamDepartment] {
		department = strings.TrimSpace(department)
		if department != "" && !state.HasDepartment(department) {
			state.Departments = append(state.Departments, department)
		}
	}

	for _, raw := range values[ParamRating] {
		rating, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || rating < models.MinRating || rating > models.MaxRating {
			continue
		}
		if !state.HasRating(rating) {
			state.Ratings = append(state.Ratings, rating)
		}
	}

	return state
}

// Apply returns the employees matching every active criterion of state, in input order.
// The input slice is never modified.
func Apply(employees []models.Employee, state State) []models.Employee {
	needle := strings.ToLower(state.SearchText)
	filtered := make([]models.Employee, 0, len(employees))

	for _, employee := range employees {
		if matchesSearch(employee, needle) &&
			matchesDepartment(employee, state.Departments) &&
			matchesRating(employee, state.Ratings) {
			filtered = append(filtered, employee)
		}
	}

	return filtered
}

// Departments returns the distinct non-empty departments in order of first appearance.
func Departments(employees []models.Employee) []string {
	seen := make(map[string]struct{})
	departments := make([]string, 0)

	for _, employee := range employees {
		if employee.Department == "" {
			continue
		}
		if _, ok := seen[employee.Department]; ok {
			continue
		}
		seen[employee.Department] = struct{}{}
		departments = append(departments, employee.Department)
	}

	return departments
}

func matchesSearch(employee models.Employee, needle string) bool {
	if needle == "" {
		return true
	}

	return strings.Contains(strings.ToLower(employee.FullName()), needle) ||
		strings.Contains(strings.ToLower(employee.Email), needle) ||
		strings.Contains(strings.ToLower(employee.Department), needle)
}

// An employee without a department never matches a non-empty selection.
func matchesDepartment(employee models.Employee, departments []string) bool {
	if len(departments) == 0 {
		return true
	}

	return employee.Department != "" && slices.Contains(departments, employee.Department)
}

func matchesRating(employee models.Employee, ratings []int) bool {
	return len(ratings) == 0 || slices.Contains(ratings, employee.Performance)
}

func toggle[T comparable](values []T, value T) []T {
	if idx := slices.Index(values, value); idx >= 0 {
		return slices.Delete(slices.Clone(values), idx, idx+1)
	}

	return append(slices.Clone(values), value)
}

func (s State) clone() State {
	return State{
		SearchText:  s.SearchText,
		Departments: slices.Clone(s.Departments),
		Ratings:     slices.Clone(s.Ratings),
	}
}
