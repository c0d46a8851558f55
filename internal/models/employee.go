package models

// UserAgent is sent with every request to the upstream user API.
const UserAgent = "athena-hr-dashboard/1.0 (+https://github.com/UnknownOlympus/athena)"

// Employee represents one person's profile together with the performance rating
// assigned to it when it was first loaded.
type Employee struct {
	ID          int     `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Phone       string  `json:"phone"`
	Image       string  `json:"image,omitempty"`
	Department  string  `json:"department,omitempty"`
	Performance int     `json:"performance"`
	BirthDate   string  `json:"birthDate,omitempty"`
	Address     Address `json:"address"`
}

// Address is presentation-only data.
type Address struct {
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// FullName returns "FirstName LastName".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
