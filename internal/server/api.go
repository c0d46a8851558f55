package server

import (
	"encoding/json"
	"net/http"

	"github.com/UnknownOlympus/athena/internal/analytics"
	"github.com/UnknownOlympus/athena/internal/filter"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type employeesResponse struct {
	Employees   []models.Employee `json:"employees"`
	Departments []string          `json:"departments"`
	Ratings     []int             `json:"ratings"`
	Total       int               `json:"total"`
}

type employeeResponse struct {
	models.EmployeeDetail

	PerformanceLevel models.PerformanceLevel `json:"performanceLevel"`
	Bookmarked       bool                    `json:"bookmarked"`
}

type bookmarksResponse struct {
	Bookmarks []models.Employee `json:"bookmarks"`
	Total     int               `json:"total"`
}

// apiEmployees returns the filtered roster together with the facet values of the whole roster.
func (h *Handler) apiEmployees(w http.ResponseWriter, r *http.Request) {
	roster, err := h.directory.Employees()
	if err != nil {
		h.writeError(w, r, "server.apiEmployees", err)
		return
	}

	state := filter.ParseQuery(r.URL.Query())
	h.writeJSON(w, r, http.StatusOK, employeesResponse{
		Employees:   filter.Apply(roster, state),
		Departments: filter.Departments(roster),
		Ratings:     filter.Ratings,
		Total:       len(roster),
	})
}

func (h *Handler) apiEmployee(w http.ResponseWriter, r *http.Request) {
	identifier, err := employeeID(r)
	if err != nil {
		h.writeError(w, r, "server.apiEmployee", err)
		return
	}

	detail, err := h.directory.Employee(r.Context(), identifier)
	if err != nil {
		h.writeError(w, r, "server.apiEmployee", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employeeResponse{
		EmployeeDetail:   detail,
		PerformanceLevel: models.PerformanceLevelFor(detail.Performance),
		Bookmarked:       h.bookmarks.Contains(identifier),
	})
}

func (h *Handler) apiAnalytics(w http.ResponseWriter, r *http.Request) {
	roster, err := h.directory.Employees()
	if err != nil {
		h.writeError(w, r, "server.apiAnalytics", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, analytics.Aggregate(roster))
}

func (h *Handler) apiBookmarks(w http.ResponseWriter, r *http.Request) {
	list := h.bookmarks.List()
	h.writeJSON(w, r, http.StatusOK, bookmarksResponse{Bookmarks: list, Total: len(list)})
}

// apiAddBookmark answers 201 when the employee was added and 200 when it was already bookmarked.
func (h *Handler) apiAddBookmark(w http.ResponseWriter, r *http.Request) {
	identifier, err := employeeID(r)
	if err != nil {
		h.writeError(w, r, "server.apiAddBookmark", err)
		return
	}

	employee, err := h.lookup(r.Context(), identifier)
	if err != nil {
		h.writeError(w, r, "server.apiAddBookmark", err)
		return
	}

	status := http.StatusOK
	if h.bookmarks.Add(r.Context(), employee) {
		status = http.StatusCreated
	}
	h.writeJSON(w, r, status, employee)
}

// apiRemoveBookmark is idempotent: removing an absent bookmark still answers 204.
func (h *Handler) apiRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	identifier, err := employeeID(r)
	if err != nil {
		h.writeError(w, r, "server.apiRemoveBookmark", err)
		return
	}

	h.bookmarks.Remove(r.Context(), identifier)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.requestLogger(r, "server.writeJSON").ErrorContext(r.Context(), "Failed to write response", sl.Err(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, opn string, err error) {
	apiErr := classify(err)
	log := h.requestLogger(r, opn)
	if apiErr.status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "Request failed", sl.Err(err))
	} else {
		log.DebugContext(r.Context(), "Request rejected", sl.Err(err))
	}

	h.writeJSON(w, r, apiErr.status, errorResponse{Code: apiErr.code, Message: apiErr.message})
}
