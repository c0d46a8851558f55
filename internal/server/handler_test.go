package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/UnknownOlympus/athena/internal/bookmarks"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/parser"
	"github.com/UnknownOlympus/athena/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	roster []models.Employee
	err    error
}

func (f *fakeDirectory) Employees() ([]models.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func (f *fakeDirectory) Employee(_ context.Context, identifier int) (models.EmployeeDetail, error) {
	if f.err != nil {
		return models.EmployeeDetail{}, f.err
	}
	for _, employee := range f.roster {
		if employee.ID == identifier {
			return models.EmployeeDetail{
				Employee: employee,
				Bio:      employee.FirstName + " has a background in operations.",
				PerformanceHistory: []models.PerformanceReview{
					{Period: "Q1 2023", Rating: 4, Feedback: "Valuable contributor."},
				},
				Projects: []models.Project{
					{ID: 1, Name: "Website Redesign", Status: "In Progress", Role: "Lead", Completion: 40},
				},
				Feedback: []models.Feedback{
					{
						ID:      1,
						Type:    "Peer Review",
						Content: "Great work.",
						Rating:  5,
						Date:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
						From:    "Alex Smith",
					},
				},
			}, nil
		}
	}
	return models.EmployeeDetail{}, fmt.Errorf("failed to fetch employee %d: %w", identifier, parser.ErrEmployeeNotFound)
}

type testEnv struct {
	handler   http.Handler
	bookmarks *bookmarks.Store
	metrics   *metrics.Metrics
}

func sampleRoster() []models.Employee {
	return []models.Employee{
		{ID: 1, FirstName: "Emily", LastName: "Johnson", Email: "emily.johnson@x.dummyjson.com", Department: "Engineering", Performance: 5},
		{ID: 2, FirstName: "Michael", LastName: "Williams", Email: "michael.williams@x.dummyjson.com", Department: "Sales", Performance: 3},
		{ID: 3, FirstName: "Sophia", LastName: "Brown", Email: "sophia.brown@x.dummyjson.com", Department: "Engineering", Performance: 4},
	}
}

func newTestEnv(t *testing.T, directory server.Directory) testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	persister := bookmarks.NewFilePersister(filepath.Join(t.TempDir(), "bookmarks.json"), "test-bookmarks")
	store := bookmarks.NewStore(logger, persister, appMetrics)

	return testEnv{
		handler:   server.NewHandler(logger, directory, store, appMetrics).Router(),
		bookmarks: store,
		metrics:   appMetrics,
	}
}

func (e testEnv) do(t *testing.T, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)

	return rr
}

func (e testEnv) document(t *testing.T, target string) (*goquery.Document, int) {
	t.Helper()

	rr := e.do(t, http.MethodGet, target, nil)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)

	return doc, rr.Code
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

type employeesBody struct {
	Employees   []models.Employee `json:"employees"`
	Departments []string          `json:"departments"`
	Ratings     []int             `json:"ratings"`
	Total       int               `json:"total"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestAPIEmployees(t *testing.T) {
	t.Run("applies filters from the query", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

		rr := env.do(t, http.MethodGet, "/api/employees?department=Engineering&rating=5", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		body := decode[employeesBody](t, rr)
		require.Len(t, body.Employees, 1)
		assert.Equal(t, "Emily", body.Employees[0].FirstName)
		assert.Equal(t, []string{"Engineering", "Sales"}, body.Departments)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, body.Ratings)
		assert.Equal(t, 3, body.Total)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

		body := decode[employeesBody](t, env.do(t, http.MethodGet, "/api/employees?q=SALES", nil))

		require.Len(t, body.Employees, 1)
		assert.Equal(t, 2, body.Employees[0].ID)
	})

	t.Run("upstream failure is a bad gateway", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{err: parser.ErrFetchEmployees})

		rr := env.do(t, http.MethodGet, "/api/employees", nil)

		require.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "upstream_unavailable", decode[errorBody](t, rr).Code)
	})
}

func TestAPIEmployee(t *testing.T) {
	env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

	t.Run("returns the detail", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/employees/3", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		body := decode[map[string]any](t, rr)
		assert.InDelta(t, 3, body["id"], 0)
		assert.Equal(t, "Sophia", body["firstName"])
		assert.Equal(t, map[string]any{"label": "Good", "type": "info"}, body["performanceLevel"])
		assert.Equal(t, false, body["bookmarked"])
		assert.Len(t, body["projects"], 1)
	})

	t.Run("unknown employee", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/employees/99", nil)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "not_found", decode[errorBody](t, rr).Code)
	})

	for _, raw := range []string{"abc", "0", "-4"} {
		t.Run("invalid id "+raw, func(t *testing.T) {
			rr := env.do(t, http.MethodGet, "/api/employees/"+raw, nil)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "invalid_id", decode[errorBody](t, rr).Code)
		})
	}
}

func TestAPIAnalytics(t *testing.T) {
	env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

	rr := env.do(t, http.MethodGet, "/api/analytics", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[map[string]any](t, rr)
	assert.InDelta(t, 3, body["totalEmployees"], 0)
	assert.InDelta(t, 4.0, body["averageRating"], 0.0001)
	assert.Equal(t, "Engineering", body["topDepartment"])
	assert.Equal(t, []any{0.0, 0.0, 1.0, 1.0, 1.0}, body["ratingDistribution"])
}

func TestAPIBookmarks(t *testing.T) {
	env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

	rr := env.do(t, http.MethodPut, "/api/bookmarks/2", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Michael", decode[models.Employee](t, rr).FirstName)

	rr = env.do(t, http.MethodPut, "/api/bookmarks/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/bookmarks", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	listed := decode[struct {
		Bookmarks []models.Employee `json:"bookmarks"`
		Total     int               `json:"total"`
	}](t, rr)
	require.Equal(t, 1, listed.Total)
	assert.Equal(t, 2, listed.Bookmarks[0].ID)

	rr = env.do(t, http.MethodDelete, "/api/bookmarks/2", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.False(t, env.bookmarks.Contains(2))

	rr = env.do(t, http.MethodDelete, "/api/bookmarks/2", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodPut, "/api/bookmarks/42", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, env.bookmarks.List())
}

func TestDashboardView(t *testing.T) {
	t.Run("renders every employee and the facets", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

		doc, code := env.document(t, "/")

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 3, doc.Find(".employee").Length())
		assert.Equal(t, "Showing 3 of 3 employees", strings.TrimSpace(doc.Find(".count").Text()))

		engineering := doc.Find("a.facet.department").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.Text() == "Engineering"
		})
		href, _ := engineering.Attr("href")
		assert.Equal(t, "/?department=Engineering", href)
		assert.False(t, engineering.HasClass("active"))
		assert.Equal(t, 5, doc.Find("a.facet.rating").Length())
		assert.Equal(t, 0, doc.Find("a.clear").Length())
	})

	t.Run("active facet links toggle back off", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

		doc, code := env.document(t, "/?department=Engineering")

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 2, doc.Find(".employee").Length())
		active := doc.Find("a.facet.department.active")
		require.Equal(t, 1, active.Length())
		href, _ := active.Attr("href")
		assert.Equal(t, "/", href)

		five := doc.Find("a.facet.rating").Last()
		href, _ = five.Attr("href")
		assert.Equal(t, "/?department=Engineering&rating=5", href)
		assert.Equal(t, 1, doc.Find("a.clear").Length())
	})

	t.Run("no matches shows the empty state", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

		doc, _ := env.document(t, "/?q=nobody")

		assert.Equal(t, 0, doc.Find(".employee").Length())
		assert.Equal(t, 1, doc.Find("p.empty").Length())
	})

	t.Run("upstream failure renders the error state", func(t *testing.T) {
		env := newTestEnv(t, &fakeDirectory{err: errors.New("connection refused")})

		doc, code := env.document(t, "/")

		require.Equal(t, http.StatusBadGateway, code)
		assert.Contains(t, doc.Find("[role=alert]").Text(), "Could not load employees")
		assert.Equal(t, 0, doc.Find(".employee").Length())
	})
}

func TestEmployeeView(t *testing.T) {
	env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

	t.Run("overview is the default tab", func(t *testing.T) {
		doc, code := env.document(t, "/employees/1")

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Emily Johnson", doc.Find(".profile h2").Text())
		assert.Equal(t, "Overview", doc.Find("a.tab.active").Text())
		assert.Contains(t, doc.Find("p.bio").Text(), "background in operations")
		assert.Equal(t, 1, doc.Find("#history tr").Length())
	})

	t.Run("projects tab", func(t *testing.T) {
		doc, _ := env.document(t, "/employees/1?tab=projects")

		assert.Equal(t, "Projects", doc.Find("a.tab.active").Text())
		assert.Contains(t, doc.Find("#projects").Text(), "Website Redesign")
		assert.Equal(t, 0, doc.Find("p.bio").Length())
	})

	t.Run("feedback tab", func(t *testing.T) {
		doc, _ := env.document(t, "/employees/1?tab=feedback")

		assert.Contains(t, doc.Find("#feedback").Text(), "Alex Smith (Mar 1, 2024)")
	})

	t.Run("unknown tab falls back to overview", func(t *testing.T) {
		doc, _ := env.document(t, "/employees/1?tab=salary")

		assert.Equal(t, "Overview", doc.Find("a.tab.active").Text())
	})

	t.Run("unknown employee", func(t *testing.T) {
		doc, code := env.document(t, "/employees/77")

		require.Equal(t, http.StatusNotFound, code)
		assert.Contains(t, doc.Find("[role=alert]").Text(), "Employee not found")
	})
}

func TestToggleBookmark(t *testing.T) {
	env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})
	referer := http.Header{"Referer": []string{"http://localhost:8080/?q=em&rating=5"}}

	rr := env.do(t, http.MethodPost, "/bookmarks/1", referer)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?q=em&rating=5", rr.Header().Get("Location"))
	assert.True(t, env.bookmarks.Contains(1))

	doc, _ := env.document(t, "/bookmarks")
	assert.Equal(t, 1, doc.Find(".employee").Length())
	assert.Equal(t, "Bookmarks (1)", doc.Find("nav a.active").Text())
	assert.Equal(t, "Remove bookmark", doc.Find(".employee button.bookmark").Text())

	rr = env.do(t, http.MethodPost, "/bookmarks/1", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.False(t, env.bookmarks.Contains(1))

	doc, _ = env.document(t, "/bookmarks")
	assert.Equal(t, 1, doc.Find("p.empty").Length())

	rr = env.do(t, http.MethodPost, "/bookmarks/2", http.Header{"Referer": []string{"https://evil.example/steal"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/steal", rr.Header().Get("Location"))

	rr = env.do(t, http.MethodPost, "/bookmarks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/bookmarks/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAnalyticsView(t *testing.T) {
	env := newTestEnv(t, &fakeDirectory{roster: sampleRoster()})

	doc, code := env.document(t, "/analytics")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "3", doc.Find("#total").Text())
	assert.Equal(t, "4.00", doc.Find("#average").Text())
	assert.Equal(t, "Engineering", doc.Find("#top-department").Text())
	assert.Equal(t, 3, doc.Find("#departments tr").Length())
	assert.Equal(t, 5, doc.Find("#distribution tr").Length())
	assert.Equal(t, 2, doc.Find("#top-performers li").Length())
}
