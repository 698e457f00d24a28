package resource

// Package resource defines the managed record types and the schema
// descriptors that parameterize the generic resource client and screen
// controller. Field names follow the HR API wire format.

// Status values shared by most collections.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// Competency is a soft or technical skill tracked by recruiters.
type Competency struct {
	ID          int64  `json:"competence_id,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Language is a spoken language in the reference catalog.
type Language struct {
	ID     int64  `json:"language_id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Training is a course or certification in the reference catalog.
type Training struct {
	ID          int64  `json:"training_id,omitempty"`
	Description string `json:"description"`
	Level       string `json:"level"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Institution string `json:"institution"`
	Status      string `json:"status"`
}

// Position is an open job position.
type Position struct {
	ID        int64    `json:"position_id,omitempty"`
	Name      string   `json:"name"`
	RiskLevel string   `json:"risk_level"`
	MinSalary *float64 `json:"min_salary"`
	MaxSalary *float64 `json:"max_salary"`
	Status    string   `json:"status"`
}

// Candidate is an applicant record.
type Candidate struct {
	ID               int64  `json:"candidate_id,omitempty"`
	Name             string `json:"name"`
	IDNumber         string `json:"id_number"`
	IDType           string `json:"id_type"`
	DesiredPosition  string `json:"desired_position"`
	Department       string `json:"department"`
	DesiredSalary    string `json:"desired_salary"`
	MainCompetencies string `json:"main_competencies"`
	MainTrainings    string `json:"main_trainings"`
	RecommendedBy    string `json:"recommended_by"`
	Status           string `json:"status"`
}

// Employee is a hired candidate.
type Employee struct {
	ID             int64  `json:"employee_id,omitempty"`
	DocumentNumber string `json:"document_number"`
	DocumentType   string `json:"document_type"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	Salary         string `json:"salary"`
	Status         string `json:"status"`
}

// WorkExperience is one entry of a person's employment history.
type WorkExperience struct {
	ID          int64  `json:"experience_id,omitempty"`
	UserType    string `json:"user_type"`
	UserName    string `json:"user_name"`
	Institution string `json:"institution"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Salary      string `json:"salary"`
}
