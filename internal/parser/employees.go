package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
)

var (
	ErrFetchEmployees   = errors.New("failed to fetch employees")
	ErrEmployeeNotFound = errors.New("employee not found")
)

type apiAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type apiCompany struct {
	Department string `json:"department"`
}

type apiUser struct {
	ID        int        `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Age       int        `json:"age"`
	Gender    string     `json:"gender"`
	Phone     string     `json:"phone"`
	Image     string     `json:"image"`
	BirthDate string     `json:"birthDate"`
	Address   apiAddress `json:"address"`
	Company   apiCompany `json:"company"`
}

type apiUsersPage struct {
	Users []apiUser `json:"users"`
	Total int       `json:"total"`
}

type EmployeeParser struct {
	client  *http.Client
	baseURL string
	metrics *metrics.Metrics
}

type EmployeeParserIface interface {
	ParseEmployees(ctx context.Context, limit int) ([]models.Employee, error)
	ParseEmployee(ctx context.Context, identifier int) (models.Employee, error)
}

func NewEmployeeParser(client *http.Client, metrics *metrics.Metrics, baseURL string) EmployeeParserIface {
	return &EmployeeParser{client: client, baseURL: strings.TrimRight(baseURL, "/"), metrics: metrics}
}

// ParseEmployees requests one page of at most limit users. Performance is left unset.
func (ep *EmployeeParser) ParseEmployees(ctx context.Context, limit int) ([]models.Employee, error) {
	data := url.Values{}
	data.Set("limit", strconv.Itoa(limit))

	resp, err := getJSONResponse(ctx, ep.client, &data, ep.baseURL+"/users")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return ParseEmployeesFromBody(resp.Body, ep.metrics)
}

// ParseEmployee requests a single user by its identifier.
func (ep *EmployeeParser) ParseEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	resp, err := getJSONResponse(ctx, ep.client, &url.Values{}, ep.baseURL+"/users/"+strconv.Itoa(identifier))
	if err != nil {
		return models.Employee{}, err
	}
	defer resp.Body.Close()

	var user apiUser
	if err = json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return models.Employee{}, fmt.Errorf("failed to decode user %d: %w", identifier, err)
	}
	ep.metrics.ItemsFetched.WithLabelValues("employee_detail").Inc()

	return user.toEmployee(), nil
}

// ParseEmployeesFromBody decodes a users page. An empty body yields no employees.
func ParseEmployeesFromBody(in io.Reader, metric *metrics.Metrics) ([]models.Employee, error) {
	var page apiUsersPage

	if err := json.NewDecoder(in).Decode(&page); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Employee{}, nil
		}
		return nil, fmt.Errorf("failed to decode users page: %w", err)
	}

	employees := make([]models.Employee, 0, len(page.Users))
	for _, user := range page.Users {
		employees = append(employees, user.toEmployee())
		metric.ItemsFetched.WithLabelValues("employee").Inc()
	}

	return employees, nil
}

func (u apiUser) toEmployee() models.Employee {
	return models.Employee{
		ID:         u.ID,
		FirstName:  strings.TrimSpace(u.FirstName),
		LastName:   strings.TrimSpace(u.LastName),
		Email:      strings.TrimSpace(u.Email),
		Age:        u.Age,
		Gender:     u.Gender,
		Phone:      strings.TrimSpace(u.Phone),
		Image:      u.Image,
		Department: strings.TrimSpace(u.Company.Department),
		BirthDate:  u.BirthDate,
		Address: models.Address{
			Address:    u.Address.Address,
			City:       u.Address.City,
			State:      u.Address.State,
			PostalCode: u.Address.PostalCode,
			Country:    u.Address.Country,
		},
	}
}

func getJSONResponse(ctx context.Context, client *http.Client, data *url.Values, destURL string) (*http.Response, error) {
	reqURL, err := url.Parse(destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination URL %s: %w", destURL, err)
	}

	reqURL.RawQuery = data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", destURL, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, reqURL.Path)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("%w, received status code: %d", ErrFetchEmployees, resp.StatusCode)
	}
}
