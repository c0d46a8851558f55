package filter_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/UnknownOlympus/athena/internal/filter"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEmployees() []models.Employee {
	return []models.Employee{
		{ID: 1, FirstName: "Emily", LastName: "Johnson", Email: "emily.johnson@x.com", Department: "Engineering", Performance: 5},
		{ID: 2, FirstName: "Michael", LastName: "Williams", Email: "michael.w@x.com", Department: "Sales", Performance: 3},
		{ID: 3, FirstName: "Sophia", LastName: "Brown", Email: "sophia.brown@x.com", Department: "Marketing", Performance: 4},
		{ID: 4, FirstName: "James", LastName: "Davis", Email: "", Department: "", Performance: 2},
		{ID: 5, FirstName: "Emma", LastName: "Miller", Email: "emma.miller@x.com", Department: "Engineering", Performance: 1},
	}
}

func ids(employees []models.Employee) []int {
	out := make([]int, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}

func TestApply_IdentityFilter(t *testing.T) {
	t.Parallel()

	employees := sampleEmployees()

	got := filter.Apply(employees, filter.State{})

	assert.Equal(t, employees, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	employees := sampleEmployees()
	before := sampleEmployees()

	_ = filter.Apply(employees, filter.State{SearchText: "emily", Ratings: []int{5}})

	assert.Equal(t, before, employees)
}

func TestApply_NilInput(t *testing.T) {
	t.Parallel()

	got := filter.Apply(nil, filter.State{SearchText: "x"})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		search string
		want   []int
	}{
		{"first name, case insensitive", "EMILY", []int{1}},
		{"across first and last name", "emily john", []int{1}},
		{"email", "michael.w@", []int{2}},
		{"department", "engineer", []int{1, 5}},
		{"no match", "zzz", []int{}},
		{"substring shared by several fields", "em", []int{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := filter.Apply(sampleEmployees(), filter.State{SearchText: tt.search})

			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_SearchResultsContainNeedle(t *testing.T) {
	t.Parallel()

	for _, needle := range []string{"e", "Mi", "x.com", "sales", "o"} {
		for _, e := range filter.Apply(sampleEmployees(), filter.State{SearchText: needle}) {
			lower := strings.ToLower(needle)
			matched := strings.Contains(strings.ToLower(e.FullName()), lower) ||
				strings.Contains(strings.ToLower(e.Email), lower) ||
				strings.Contains(strings.ToLower(e.Department), lower)
			assert.True(t, matched, "employee %d does not contain %q", e.ID, needle)
		}
	}
}

func TestApply_Departments(t *testing.T) {
	t.Parallel()

	got := filter.Apply(sampleEmployees(), filter.State{Departments: []string{"Sales", "Engineering"}})
	assert.Equal(t, []int{1, 2, 5}, ids(got), "output keeps input order, not selection order")

	got = filter.Apply(sampleEmployees(), filter.State{Departments: []string{""}})
	assert.Empty(t, got, "employees without department never match a department filter")
}

func TestApply_Ratings(t *testing.T) {
	t.Parallel()

	got := filter.Apply(sampleEmployees(), filter.State{Ratings: []int{1, 4}})

	assert.Equal(t, []int{3, 5}, ids(got))
}

func TestApply_AllCriteria(t *testing.T) {
	t.Parallel()

	state := filter.State{SearchText: "e", Departments: []string{"Engineering"}, Ratings: []int{5}}

	got := filter.Apply(sampleEmployees(), state)

	assert.Equal(t, []int{1}, ids(got))
}

func TestToggle_TwiceRestoresResult(t *testing.T) {
	t.Parallel()

	state := filter.State{Ratings: []int{4, 5}}
	original := filter.Apply(sampleEmployees(), state)

	state.ToggleDepartment("Marketing")
	assert.Equal(t, []int{3}, ids(filter.Apply(sampleEmployees(), state)))

	state.ToggleDepartment("Marketing")
	assert.Equal(t, original, filter.Apply(sampleEmployees(), state))
	assert.Empty(t, state.Departments)

	state.ToggleRating(4)
	state.ToggleRating(4)
	assert.Equal(t, []int{5, 4}, state.Ratings, "re-toggled value is appended once, never duplicated")
}

func TestToggled_ReturnsCopy(t *testing.T) {
	t.Parallel()

	state := filter.State{Departments: []string{"Sales"}, Ratings: []int{3}}

	next := state.ToggledDepartment("Engineering").ToggledRating(3)

	assert.Equal(t, []string{"Sales"}, state.Departments)
	assert.Equal(t, []int{3}, state.Ratings)
	assert.Equal(t, []string{"Sales", "Engineering"}, next.Departments)
	assert.Empty(t, next.Ratings)
	assert.True(t, next.HasDepartment("Engineering"))
	assert.False(t, next.HasRating(3))
}

func TestDepartments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Engineering", "Sales", "Marketing"}, filter.Departments(sampleEmployees()))
	assert.Empty(t, filter.Departments(nil))
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"q":          {"  emily "},
		"department": {"Sales", "", "Sales", "Engineering"},
		"rating":     {"5", "0", "6", "abc", "5", "2"},
	}

	state := filter.ParseQuery(values)

	assert.Equal(t, "emily", state.SearchText)
	assert.Equal(t, []string{"Sales", "Engineering"}, state.Departments)
	assert.Equal(t, []int{5, 2}, state.Ratings)
}

func TestQuery_RoundTrip(t *testing.T) {
	t.Parallel()

	state := filter.State{SearchText: "ann", Departments: []string{"HR", "Legal"}, Ratings: []int{3, 1}}

	parsed := filter.ParseQuery(state.Query())

	require.False(t, parsed.IsEmpty())
	assert.Equal(t, state, parsed)
	assert.True(t, filter.State{}.IsEmpty())
	assert.Empty(t, filter.State{}.Query().Encode())
}
