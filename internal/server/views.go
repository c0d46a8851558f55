package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/athena/internal/analytics"
	"github.com/UnknownOlympus/athena/internal/filter"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// View tags the page being rendered. Each tag has exactly one renderer and one template.
type View int

const (
	ViewDashboard View = iota
	ViewBookmarks
	ViewAnalytics
	ViewEmployee
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewBookmarks:
		return "bookmarks"
	case ViewAnalytics:
		return "analytics"
	case ViewEmployee:
		return "employee"
	default:
		return "view(" + strconv.Itoa(int(v)) + ")"
	}
}

// Tab is the section shown on the employee view.
type Tab int

const (
	TabOverview Tab = iota
	TabProjects
	TabFeedback
)

//nolint:gochecknoglobals // fixed tab order
var tabs = []Tab{TabOverview, TabProjects, TabFeedback}

func (t Tab) String() string {
	switch t {
	case TabProjects:
		return "projects"
	case TabFeedback:
		return "feedback"
	default:
		return "overview"
	}
}

func (t Tab) label() string {
	switch t {
	case TabProjects:
		return "Projects"
	case TabFeedback:
		return "Feedback"
	default:
		return "Overview"
	}
}

// ParseTab falls back to the overview for unknown names.
func ParseTab(name string) Tab {
	for _, tab := range tabs {
		if tab.String() == name {
			return tab
		}
	}
	return TabOverview
}

type renderFunc func(r *http.Request) (string, any, error)

type link struct {
	Label  string
	Href   string
	Active bool
}

type page struct {
	Title string
	Nav   []link
	Error string
	Data  any
}

type card struct {
	models.Employee

	Level      models.PerformanceLevel
	Bookmarked bool
}

type dashboardData struct {
	Filter      filter.State
	Departments []link
	Ratings     []link
	Employees   []card
	Total       int
}

type departmentRow struct {
	Name    string
	Count   int
	Average float64
}

type ratingBucket struct {
	Rating  int
	Count   int
	Percent int
}

type analyticsData struct {
	Summary       analytics.Summary
	Departments   []departmentRow
	Distribution  []ratingBucket
	TopPerformers []models.Employee
	Bookmarked    int
}

type employeeData struct {
	Detail     models.EmployeeDetail
	Level      models.PerformanceLevel
	Bookmarked bool
	Tab        Tab
	Tabs       []link
	TabContent template.HTML
}

func mustParsePages() map[View]*template.Template {
	pages := make(map[View]*template.Template)
	for _, view := range []View{ViewDashboard, ViewBookmarks, ViewAnalytics, ViewEmployee} {
		pages[view] = template.Must(template.New(view.String()).ParseFS(
			templateFS, "templates/layout.html", "templates/"+view.String()+".html"))
	}
	return pages
}

// page renders view through its renderer. Renderer errors become an error state inside the
// layout with the matching status code.
func (h *Handler) page(view View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := h.requestLogger(r, "server.page."+view.String())

		title, data, err := h.renderers[view](r)
		status := http.StatusOK
		content := page{Title: title, Nav: h.nav(view), Data: data}
		if err != nil {
			apiErr := classify(err)
			status = apiErr.status
			content.Error = apiErr.message
			if content.Title == "" {
				content.Title = "Something went wrong"
			}
			log.WarnContext(r.Context(), "Rendering error state", "status", status, sl.Err(err))
		}

		var buf bytes.Buffer
		if err = h.pages[view].ExecuteTemplate(&buf, "layout", content); err != nil {
			log.ErrorContext(r.Context(), "Failed to render page", sl.Err(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if _, err = buf.WriteTo(w); err != nil {
			log.ErrorContext(r.Context(), "Failed to write page", sl.Err(err))
		}
	}
}

func (h *Handler) nav(active View) []link {
	return []link{
		{Label: "Dashboard", Href: "/", Active: active == ViewDashboard},
		{
			Label:  fmt.Sprintf("Bookmarks (%d)", len(h.bookmarks.IDs())),
			Href:   "/bookmarks",
			Active: active == ViewBookmarks,
		},
		{Label: "Analytics", Href: "/analytics", Active: active == ViewAnalytics},
	}
}

func (h *Handler) dashboard(r *http.Request) (string, any, error) {
	roster, err := h.directory.Employees()
	if err != nil {
		return "Employees", nil, err
	}

	state := filter.ParseQuery(r.URL.Query())
	data := dashboardData{
		Filter:    state,
		Employees: h.cards(filter.Apply(roster, state)),
		Total:     len(roster),
	}
	for _, department := range filter.Departments(roster) {
		data.Departments = append(data.Departments, link{
			Label:  department,
			Href:   dashboardHref(state.ToggledDepartment(department)),
			Active: state.HasDepartment(department),
		})
	}
	for _, rating := range filter.Ratings {
		data.Ratings = append(data.Ratings, link{
			Label:  strconv.Itoa(rating) + "★",
			Href:   dashboardHref(state.ToggledRating(rating)),
			Active: state.HasRating(rating),
		})
	}

	return "Employees", data, nil
}

func (h *Handler) bookmarkList(_ *http.Request) (string, any, error) {
	return "Bookmarks", h.cards(h.bookmarks.List()), nil
}

func (h *Handler) analytics(_ *http.Request) (string, any, error) {
	roster, err := h.directory.Employees()
	if err != nil {
		return "Analytics", nil, err
	}

	summary := analytics.Aggregate(roster)
	data := analyticsData{
		Summary:       summary,
		TopPerformers: summary.TopPerformers,
		Bookmarked:    len(h.bookmarks.IDs()),
	}
	for _, name := range summary.Departments {
		data.Departments = append(data.Departments, departmentRow{
			Name:    name,
			Count:   summary.DepartmentCounts[name],
			Average: summary.DepartmentAverages[name],
		})
	}
	for i, count := range summary.RatingDistribution {
		bucket := ratingBucket{Rating: i + models.MinRating, Count: count}
		if summary.TotalEmployees > 0 {
			bucket.Percent = count * 100 / summary.TotalEmployees //nolint:mnd // percent
		}
		data.Distribution = append(data.Distribution, bucket)
	}

	return "Analytics", data, nil
}

func (h *Handler) employee(r *http.Request) (string, any, error) {
	identifier, err := employeeID(r)
	if err != nil {
		return "", nil, err
	}

	detail, err := h.directory.Employee(r.Context(), identifier)
	if err != nil {
		return "", nil, err
	}

	active := ParseTab(r.URL.Query().Get("tab"))
	data := employeeData{
		Detail:     detail,
		Level:      models.PerformanceLevelFor(detail.Performance),
		Bookmarked: h.bookmarks.Contains(identifier),
		Tab:        active,
	}
	for _, tab := range tabs {
		data.Tabs = append(data.Tabs, link{
			Label:  tab.label(),
			Href:   fmt.Sprintf("/employees/%d?tab=%s", identifier, tab),
			Active: tab == active,
		})
	}

	var buf bytes.Buffer
	if err = h.pages[ViewEmployee].ExecuteTemplate(&buf, "tab-"+active.String(), data); err != nil {
		return "", nil, fmt.Errorf("failed to render %s tab: %w", active, err)
	}
	data.TabContent = template.HTML(buf.String()) //nolint:gosec // produced by html/template

	return detail.FullName(), data, nil
}

// toggleBookmark flips the bookmark of one employee and sends the browser back where it came from.
func (h *Handler) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r, "server.toggleBookmark")

	identifier, err := employeeID(r)
	if err != nil {
		http.Error(w, classify(err).message, http.StatusBadRequest)
		return
	}

	employee, err := h.lookup(r.Context(), identifier)
	if err != nil {
		apiErr := classify(err)
		log.WarnContext(r.Context(), "Failed to resolve employee for bookmark", sl.Err(err))
		http.Error(w, apiErr.message, apiErr.status)
		return
	}

	bookmarked := h.bookmarks.Toggle(r.Context(), employee)
	log.DebugContext(r.Context(), "Bookmark toggled", "employee_id", identifier, "bookmarked", bookmarked)

	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

func (h *Handler) cards(employees []models.Employee) []card {
	marked := h.bookmarks.IDs()
	cards := make([]card, 0, len(employees))
	for _, employee := range employees {
		cards = append(cards, card{
			Employee:   employee,
			Level:      models.PerformanceLevelFor(employee.Performance),
			Bookmarked: marked[employee.ID],
		})
	}
	return cards
}

func dashboardHref(state filter.State) string {
	query := state.Query().Encode()
	if query == "" {
		return "/"
	}
	return "/?" + query
}

// backTo keeps only the path and query of the Referer so the redirect never leaves this host.
func backTo(r *http.Request) string {
	referer, err := url.Parse(r.Referer())
	if err != nil || referer.Path == "" || referer.Path[0] != '/' {
		return "/"
	}
	if len(referer.Path) > 1 && referer.Path[1] == '/' {
		return "/"
	}

	target := url.URL{Path: referer.Path, RawQuery: referer.RawQuery}
	return target.String()
}
