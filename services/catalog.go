package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"exam-data-api/models"
)

// conductingBodyMap maps exam codes to the body that conducts them.
// Unmapped codes fall back to "Not Specified".
var conductingBodyMap = map[string]string{
	"SSC":               "Staff Selection Commission",
	"Banking":           "Institute of Banking Personnel Selection (IBPS)",
	"Civil Services":    "Union Public Service Commission (UPSC)",
	"Railway":           "Railway Recruitment Board (RRB)",
	"Defence":           "Ministry of Defence",
	"Insurance":         "National Insurance Academy",
	"Nursing":           "National Board of Examinations",
	"PG":                "National Testing Agency (NTA)",
	"Campus Placement":  "Various Organizations",
	"MBA":               "National Testing Agency (NTA)",
	"Accounting":        "Institute of Chartered Accountants of India (ICAI)",
	"Judiciary":         "High Court / Supreme Court",
	"Banking & Finance": "Institute of Banking Personnel Selection (IBPS)",
	"UG Entrance":       "National Testing Agency (NTA)",
}

// examSectorMap maps exam codes to human-readable sector names.
// Unmapped codes fall back to "Other".
var examSectorMap = map[string]string{
	"SSC":               "Government - Staff Selection Commission",
	"Banking":           "Banking & Financial Services",
	"Civil Services":    "Civil Services",
	"Railway":           "Railway Services",
	"Defence":           "Defence Services",
	"Insurance":         "Insurance Sector",
	"Nursing":           "Healthcare - Nursing",
	"PG":                "Post Graduate Entrance",
	"Campus Placement":  "Campus Recruitment",
	"MBA":               "Management Entrance",
	"Accounting":        "Accounting & Finance",
	"Judiciary":         "Judicial Services",
	"Banking & Finance": "Banking & Financial Services",
	"UG Entrance":       "Under Graduate Entrance",
}

// ConductingBodyFor resolves the conducting body for an exam code.
func ConductingBodyFor(code string) string {
	if body, ok := conductingBodyMap[code]; ok {
		return body
	}
	return "Not Specified"
}

// ExamSectorFor resolves the sector label for an exam code.
func ExamSectorFor(code string) string {
	if sector, ok := examSectorMap[code]; ok {
		return sector
	}
	return "Other"
}

// CatalogService holds the immutable exam reference catalog loaded once
// at startup.
type CatalogService struct {
	mu      sync.RWMutex
	catalog *models.ExamCatalog
}

// NewCatalogService wraps an already-decoded catalog.
func NewCatalogService(catalog *models.ExamCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// LoadCatalog reads and decodes the exam catalog JSON file.
func LoadCatalog(path string) (*models.ExamCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam catalog %s: %w", path, err)
	}
	var catalog models.ExamCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse exam catalog %s: %w", path, err)
	}
	return &catalog, nil
}

// Catalog returns the loaded catalog (possibly nil).
func (s *CatalogService) Catalog() *models.ExamCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// MainExam looks up a main exam by numeric id; nil when absent.
func (s *CatalogService) MainExam(id int) *models.MainExam {
	return s.Catalog().FindMainExam(id)
}

// ExamOption is a catalog entry reduced for dropdown listings.
type ExamOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ExamOptions lists available exams, sectors and conducting bodies for
// selection UIs.
type ExamOptions struct {
	MainExams        []ExamOption `json:"mainExams"`
	ExamSectors      []string     `json:"examSectors"`
	ConductingBodies []string     `json:"conductingBodies"`
}

// AvailableExamOptions summarizes the catalog for selection UIs.
func (s *CatalogService) AvailableExamOptions() ExamOptions {
	catalog := s.Catalog()
	options := ExamOptions{}
	if catalog != nil {
		for _, exam := range catalog.Exams {
			options.MainExams = append(options.MainExams, ExamOption{ID: exam.ID, Name: exam.Name, Code: exam.Code})
		}
	}
	seenSectors := map[string]bool{}
	for _, sector := range examSectorMap {
		if !seenSectors[sector] {
			seenSectors[sector] = true
			options.ExamSectors = append(options.ExamSectors, sector)
		}
	}
	seenBodies := map[string]bool{}
	for _, body := range conductingBodyMap {
		if !seenBodies[body] {
			seenBodies[body] = true
			options.ConductingBodies = append(options.ConductingBodies, body)
		}
	}
	sort.Strings(options.ExamSectors)
	sort.Strings(options.ConductingBodies)
	return options
}
