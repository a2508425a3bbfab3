package models

// JobRecord is one open job row fetched from the primary store, with the
// enterprise, address and category columns already aggregated into strings.
// Optional fields default to empty strings, never nil.
type JobRecord struct {
	JobID           string `json:"job_id"`
	Title           string `json:"job_title"`
	Description     string `json:"job_description"`
	Requirements    string `json:"job_requirements"`
	Benefits        string `json:"benefits"`
	JobType         string `json:"job_type"`
	YearsExperience string `json:"years_experience"`
	CareerLevel     string `json:"career_level"`
	CompanyName     string `json:"company_name"`
	CompanyOverview string `json:"company_overview"`
	CompanySize     string `json:"company_size"`
	CompanyAddress  string `json:"company_address"`
	JobAddress      string `json:"job_address"`
	Industry        string `json:"industry"`
}
