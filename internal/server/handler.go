package server

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/parser"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var errInvalidID = errors.New("employee id must be a positive integer")

// Directory is the read side of the employee roster.
type Directory interface {
	Employees() ([]models.Employee, error)
	Employee(ctx context.Context, identifier int) (models.EmployeeDetail, error)
}

// Bookmarks is the favourites set shared by every page.
type Bookmarks interface {
	Add(ctx context.Context, employee models.Employee) bool
	Remove(ctx context.Context, identifier int) bool
	Toggle(ctx context.Context, employee models.Employee) bool
	Contains(identifier int) bool
	IDs() map[int]bool
	List() []models.Employee
}

type Handler struct {
	log       *slog.Logger
	directory Directory
	bookmarks Bookmarks
	metrics   *metrics.Metrics
	pages     map[View]*template.Template
	renderers map[View]renderFunc
}

func NewHandler(log *slog.Logger, directory Directory, bookmarks Bookmarks, metrics *metrics.Metrics) *Handler {
	h := &Handler{
		log:       log.With(slog.String("division", "http")),
		directory: directory,
		bookmarks: bookmarks,
		metrics:   metrics,
		pages:     mustParsePages(),
	}
	h.renderers = map[View]renderFunc{
		ViewDashboard: h.dashboard,
		ViewBookmarks: h.bookmarkList,
		ViewAnalytics: h.analytics,
		ViewEmployee:  h.employee,
	}

	return h
}

// Router mounts the pages and the JSON API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(observe(h.log, h.metrics))
	r.Use(middleware.Recoverer)

	r.Get("/", h.page(ViewDashboard))
	r.Get("/bookmarks", h.page(ViewBookmarks))
	r.Get("/analytics", h.page(ViewAnalytics))
	r.Get("/employees/{id}", h.page(ViewEmployee))
	r.Post("/bookmarks/{id}", h.toggleBookmark)

	r.Route("/api", func(r chi.Router) {
		r.Get("/employees", h.apiEmployees)
		r.Get("/employees/{id}", h.apiEmployee)
		r.Get("/analytics", h.apiAnalytics)
		r.Get("/bookmarks", h.apiBookmarks)
		r.Put("/bookmarks/{id}", h.apiAddBookmark)
		r.Delete("/bookmarks/{id}", h.apiRemoveBookmark)
	})

	return r
}

func (h *Handler) requestLogger(r *http.Request, opn string) *slog.Logger {
	return h.log.With(slog.String("op", opn), slog.String("request_id", RequestID(r.Context())))
}

// lookup resolves an employee for bookmarking: the stored snapshot when it is already
// bookmarked, the directory otherwise.
func (h *Handler) lookup(ctx context.Context, identifier int) (models.Employee, error) {
	for _, employee := range h.bookmarks.List() {
		if employee.ID == identifier {
			return employee, nil
		}
	}

	detail, err := h.directory.Employee(ctx, identifier)
	if err != nil {
		return models.Employee{}, err
	}

	return detail.Employee, nil
}

func employeeID(r *http.Request) (int, error) {
	identifier, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || identifier <= 0 {
		return 0, errInvalidID
	}
	return identifier, nil
}

type apiError struct {
	status  int
	code    string
	message string
}

// classify maps a domain error onto what the client is told.
func classify(err error) apiError {
	switch {
	case errors.Is(err, errInvalidID):
		return apiError{http.StatusBadRequest, "invalid_id", "Employee id must be a positive integer."}
	case errors.Is(err, parser.ErrEmployeeNotFound):
		return apiError{http.StatusNotFound, "not_found", "Employee not found."}
	default:
		return apiError{
			http.StatusBadGateway,
			"upstream_unavailable",
			"Could not load employees from the directory. Please try again later.",
		}
	}
}
