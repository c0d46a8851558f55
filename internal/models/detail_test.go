package models_test

import (
	"testing"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPerformanceLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating int
		want   models.PerformanceLevel
	}{
		{1, models.PerformanceLevel{Label: "Needs Improvement", Type: "danger"}},
		{2, models.PerformanceLevel{Label: "Needs Improvement", Type: "danger"}},
		{3, models.PerformanceLevel{Label: "Satisfactory", Type: "warning"}},
		{4, models.PerformanceLevel{Label: "Good", Type: "info"}},
		{5, models.PerformanceLevel{Label: "Excellent", Type: "success"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.PerformanceLevelFor(tt.rating), "rating %d", tt.rating)
	}
}

func TestEmployeeFullName(t *testing.T) {
	t.Parallel()

	e := models.Employee{FirstName: "Emily", LastName: "Johnson"}

	assert.Equal(t, "Emily Johnson", e.FullName())
}
