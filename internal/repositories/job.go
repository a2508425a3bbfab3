package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"jobcompass/related-jobs/internal/models"
)

type JobRepository interface {
	FetchOpenJobs() ([]models.JobRecord, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// jobRow mirrors the columns of the aggregate fetch query.
type jobRow struct {
	JobID           string `gorm:"column:job_id"`
	JobTitle        string `gorm:"column:job_title"`
	JobDescription  string `gorm:"column:job_description"`
	JobRequirements string `gorm:"column:job_requirements"`
	Benefits        string `gorm:"column:benefits"`
	JobType         string `gorm:"column:job_type"`
	YearsExperience string `gorm:"column:years_experience"`
	CareerLevel     string `gorm:"column:career_level"`
	NameCompany     string `gorm:"column:name_company"`
	CompanyOverview string `gorm:"column:company_overview"`
	CompanySize     string `gorm:"column:company_size"`
	CompanyAddress  string `gorm:"column:company_address"`
	JobAddress      string `gorm:"column:job_address"`
	Categories      string `gorm:"column:categories"`
	Specializations string `gorm:"column:specializations"`
}

const fetchOpenJobsQuery = `
SELECT
    j.job_id,
    j.name AS job_title,
    COALESCE(j.description, '') AS job_description,
    COALESCE(j.requirement, '') AS job_requirements,
    COALESCE(j.enterprise_benefits, '') AS benefits,
    COALESCE(j.type, '') AS job_type,
    COALESCE(j.experience, '') AS years_experience,
    COALESCE(j.education, '') AS career_level,
    e.name AS name_company,
    COALESCE(e.description, '') AS company_overview,
    COALESCE(e.team_size, '') AS company_size,
    COALESCE((
        SELECT STRING_AGG(a.city || ', ' || a.country, '; ')
        FROM addresses a
        JOIN enterprise_addresses ea ON a.address_id = ea.address_id
        WHERE ea.enterprise_id = e.enterprise_id
    ), 'Not specified') AS company_address,
    COALESCE((
        SELECT STRING_AGG(a.city || ', ' || a.country, '; ')
        FROM addresses a
        JOIN job_addresses ja ON a.address_id = ja.address_id
        WHERE ja.job_id = j.job_id
    ), 'Not specified') AS job_address,
    COALESCE((
        SELECT STRING_AGG(c.category_name, ', ')
        FROM categories c
        JOIN job_categories jc ON c.category_id = jc.category_id
        WHERE jc.job_id = j.job_id
    ), '') AS categories,
    COALESCE((
        SELECT STRING_AGG(c.category_name, ', ')
        FROM categories c
        JOIN job_specializations js ON c.category_id = js.category_id
        WHERE js.job_id = j.job_id
    ), '') AS specializations
FROM jobs j
JOIN enterprises e ON j.enterprise_id = e.enterprise_id
WHERE j.status = 'OPEN'
`

// FetchOpenJobs implements JobRepository.
func (r *jobRepository) FetchOpenJobs() ([]models.JobRecord, error) {
	var rows []jobRow
	if err := r.db.Raw(fetchOpenJobsQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch open jobs: %w", err)
	}

	jobs := make([]models.JobRecord, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, models.JobRecord{
			JobID:           row.JobID,
			Title:           row.JobTitle,
			Description:     row.JobDescription,
			Requirements:    row.JobRequirements,
			Benefits:        row.Benefits,
			JobType:         row.JobType,
			YearsExperience: row.YearsExperience,
			CareerLevel:     row.CareerLevel,
			CompanyName:     row.NameCompany,
			CompanyOverview: row.CompanyOverview,
			CompanySize:     row.CompanySize,
			CompanyAddress:  row.CompanyAddress,
			JobAddress:      row.JobAddress,
			Industry:        combineIndustry(row.Categories, row.Specializations),
		})
	}

	return jobs, nil
}

// combineIndustry merges category and specialization names into the single
// Industry label used for categorical matching.
func combineIndustry(categories, specializations string) string {
	parts := make([]string, 0, 2)
	if categories != "" {
		parts = append(parts, categories)
	}
	if specializations != "" {
		parts = append(parts, specializations)
	}
	if len(parts) == 0 {
		return "Not specified"
	}
	return strings.Join(parts, ", ")
}
