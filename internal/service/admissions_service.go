package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

// Admissions categories shown as tabs on the public page.
const (
	CategoryNewScholar           = "new-scholar"
	CategoryNewNonScholar        = "new-non-scholar"
	CategoryContinuingScholar    = "continuing-scholar"
	CategoryContinuingNonScholar = "continuing-non-scholar"
	CategoryTransferee           = "transferee"

	SourceContentAPI = "content-api"
	SourceFallback   = "fallback"

	admissionsCacheKey = "admissions:info"
)

var admissionsCategories = []models.AdmissionsCategory{
	{Key: CategoryNewScholar, Label: "New Student (Scholar)"},
	{Key: CategoryNewNonScholar, Label: "New Student (Non-Scholar)"},
	{Key: CategoryContinuingScholar, Label: "Continuing Student (Scholar)"},
	{Key: CategoryContinuingNonScholar, Label: "Continuing Student (Non-Scholar)"},
}

type institutionalInfoAPI interface {
	InstitutionalInfo(ctx context.Context) (*models.AdmissionsInfo, error)
}

// AdmissionsService renders the public admissions page from the institutional info
// endpoint, falling back to the built-in content when the endpoint is unavailable.
type AdmissionsService struct {
	api    institutionalInfoAPI
	cache  *CacheService
	logger *zap.Logger
}

// NewAdmissionsService constructs the service. cache may be nil.
func NewAdmissionsService(api institutionalInfoAPI, cache *CacheService, logger *zap.Logger) *AdmissionsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionsService{api: api, cache: cache, logger: logger}
}

// Page renders the admissions view for category; blank selects new-scholar.
func (s *AdmissionsService) Page(ctx context.Context, category string) (models.AdmissionsPage, error) {
	if category == "" {
		category = CategoryNewScholar
	}
	if !knownCategory(category) {
		return models.AdmissionsPage{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown admissions category: %s", category))
	}

	info, source := s.info(ctx)
	fallback := fallbackAdmissions()

	requirements, ok := info.Requirements[category]
	if !ok {
		requirements = fallback.Requirements[category]
	}
	page := models.AdmissionsPage{
		Selected:     category,
		Requirements: requirements,
		ProcessSteps: info.ProcessSteps,
		Notes:        info.Notes,
		Source:       source,
	}
	if transferees, ok := info.Requirements[CategoryTransferee]; ok {
		page.Transferees = &transferees
	}
	for _, c := range admissionsCategories {
		c.Selected = c.Key == category
		page.Categories = append(page.Categories, c)
	}
	if len(page.ProcessSteps) == 0 {
		page.ProcessSteps = fallback.ProcessSteps
	}
	if page.Notes == nil {
		page.Notes = []string{}
	}
	return page, nil
}

func (s *AdmissionsService) info(ctx context.Context) (models.AdmissionsInfo, string) {
	var cached models.AdmissionsInfo
	if s.cache.Get(ctx, admissionsCacheKey, &cached) {
		return cached, SourceContentAPI
	}
	info, err := s.api.InstitutionalInfo(ctx)
	if err != nil || info == nil {
		s.logger.Warn("institutional info unavailable, using built-in admissions content", zap.Error(err))
		return fallbackAdmissions(), SourceFallback
	}
	if info.Requirements == nil {
		info.Requirements = map[string]models.RequirementGroup{}
	}
	s.cache.Set(ctx, admissionsCacheKey, info)
	return *info, SourceContentAPI
}

func knownCategory(key string) bool {
	for _, c := range admissionsCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}

func fallbackAdmissions() models.AdmissionsInfo {
	const (
		insurance   = "Accident Insurance with One (1) Year Coverage (Original and Photocopy)"
		reportCard  = "Form 138- SHS Report Card (Original copy)"
		goodMoral   = "Certificate of GOOD MORAL CHARACTER (Original copy)"
		birthCert   = "PSA Birth Certificate (Photocopy)"
		idPicture   = "CLEAR COPY of 2x2 ID Picture with Name Tag & on a White Background (2pcs)"
		envelope    = "One (1) Long-size Brown Expanded Envelope"
		receipt     = "Official Receipt for Tuition and Fees"
		prevGrades  = "Previous Semester Grades/Report Card"
		registrar   = "Registrar`s Office"
		programHead = "Respective program head offices."
	)
	return models.AdmissionsInfo{
		Requirements: map[string]models.RequirementGroup{
			CategoryNewScholar: {
				Title: "REQUIREMENTS FOR ENROLLMENT OF NEW STUDENTS (Scholarship)",
				Items: []string{insurance, reportCard, goodMoral, birthCert, idPicture, envelope},
			},
			CategoryNewNonScholar: {
				Title: "REQUIREMENTS FOR ENROLLMENT OF NEW STUDENTS (Non-Scholarship)",
				Items: []string{insurance, reportCard, goodMoral, birthCert, idPicture, envelope, receipt},
			},
			CategoryContinuingScholar: {
				Title: "REQUIREMENTS FOR ENROLLMENT OF CONTINUING STUDENTS (Scholarship)",
				Items: []string{insurance, goodMoral, birthCert, idPicture, envelope, prevGrades},
			},
			CategoryContinuingNonScholar: {
				Title: "REQUIREMENTS FOR ENROLLMENT OF CONTINUING STUDENTS (Non-Scholarship)",
				Items: []string{insurance, goodMoral, birthCert, idPicture, envelope, prevGrades, receipt},
			},
			CategoryTransferee: {
				Title: "REQUIREMENTS FOR ENROLLMENT OF TRANSFEREES",
				Items: []string{
					insurance,
					"Transcript of Records (TOR) (Original copy)",
					"Honorable Dismissal/Certificate of Transfer Credential (Original copy)",
					goodMoral,
					birthCert,
					idPicture,
					"Accreditation of Subjects Form (Original copy)",
					envelope,
				},
			},
		},
		ProcessSteps: []models.ProcessStep{
			{Order: 1, Title: "Secure & Accomplish Enrollment Form", Description: programHead},
			{Order: 2, Title: "Subject Advising", Description: programHead},
			{
				Order:       3,
				Title:       "Payment of School Fees (Non-Scholar)",
				Description: "Proceed to Treasurer's Office (Note: Photocopy your OFFICIAL RECEIPT and submit together with the original copy for encoding.)",
				Note:        "Verification of Scholarship (Paglambo Scholar): " + registrar,
			},
			{Order: 4, Title: "Submit Enrollment Load Form for Encoding of Subjects", Description: registrar},
			{Order: 5, Title: "Releasing of Enrollment Load Slip", Description: registrar, Note: "Load Slip will be released during enrollment time only."},
		},
		Notes: []string{
			"All documents must be original or certified true copies",
			"Foreign documents must be authenticated by the Philippine Embassy",
			"Application deadline: March 31, 2026 for Academic Year 2026-2027",
			"Incomplete applications will not be processed",
			"Entrance examination fee: ₱500.00 (non-refundable)",
		},
	}
}
