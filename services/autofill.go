package services

import (
	"log"
	"strconv"
)

// SubExamFill is one pre-filled sub-exam entry. Dependent eligibility
// fields are always schema defaults, never copied from the catalog.
type SubExamFill struct {
	SubExamName string `json:"sub_exam_name"`
	ShortCode   string `json:"short_code"`
}

// ExamAutoFillData is the initial form field data derived from the
// catalog for an assignment.
type ExamAutoFillData struct {
	MainExamName   string        `json:"main_exam_name"`
	ExamCode       string        `json:"exam_code"`
	ConductingBody string        `json:"conducting_body"`
	ExamSector     string        `json:"exam_sector"`
	SubExams       []SubExamFill `json:"subExams"`
	MainExamID     int           `json:"main_exam_id"`
	SubExamID      *int          `json:"sub_exam_id,omitempty"`
}

// AutoFillService builds initial form values from the exam catalog.
type AutoFillService struct {
	catalog *CatalogService
}

// NewAutoFillService returns a builder over the given catalog.
func NewAutoFillService(catalog *CatalogService) *AutoFillService {
	return &AutoFillService{catalog: catalog}
}

// ExamAutoFillData looks up auto-fill data for a main exam and optional
// sub-exam. A malformed or unknown id yields nil without an error; the
// caller treats "no auto-fill data" as a valid outcome that leaves the
// form fully manual.
func (s *AutoFillService) ExamAutoFillData(mainExamID, subExamID string) *ExamAutoFillData {
	examID, err := strconv.Atoi(mainExamID)
	if err != nil {
		log.Printf("Warning: main exam id %q is not numeric, skipping auto-fill", mainExamID)
		return nil
	}

	mainExam := s.catalog.MainExam(examID)
	if mainExam == nil {
		log.Printf("Warning: main exam with id %d not found in catalog", examID)
		return nil
	}

	data := &ExamAutoFillData{
		MainExamName:   mainExam.Name,
		ExamCode:       mainExam.Code,
		ConductingBody: ConductingBodyFor(mainExam.Code),
		ExamSector:     ExamSectorFor(mainExam.Code),
		MainExamID:     mainExam.ID,
		SubExams:       []SubExamFill{},
	}

	// Only the specifically assigned sub-exam is pre-filled; when no
	// sub-exam is assigned the list stays empty for manual selection.
	if subExamID != "" {
		subID, err := strconv.Atoi(subExamID)
		if err != nil {
			log.Printf("Warning: sub exam id %q is not numeric, leaving sub-exams empty", subExamID)
			return data
		}
		if subExam := mainExam.FindSubExam(subID); subExam != nil {
			data.SubExams = []SubExamFill{{SubExamName: subExam.Name, ShortCode: subExam.Code}}
			id := subExam.ID
			data.SubExamID = &id
		}
	}

	return data
}

// AutoFilledFormValues maps auto-fill data into the initial form state.
// Each pre-filled sub-exam entry carries its dependent fields reset to
// schema defaults. Returns nil when no auto-fill data is available.
func (s *AutoFillService) AutoFilledFormValues(examID, subExamID string) map[string]interface{} {
	strategy := GetAutoFillStrategy(examID)
	if !strategy.ShouldFillMainExam {
		return nil
	}

	parsed := ParseExamAssignment(examID)
	mainExamID := parsed.MainExamID
	subID := subExamID
	if strategy.SubExamID != "" {
		subID = strategy.SubExamID
	}

	// A sub-exam id may itself arrive in "mainId-subId" form.
	if nested := ParseExamAssignment(subID); nested.AssignmentType == AssignmentTypeSpecificSubExam {
		mainExamID = nested.MainExamID
		subID = nested.SubExamID
	}

	data := s.ExamAutoFillData(mainExamID, subID)
	if data == nil {
		return nil
	}

	subExams := make([]interface{}, 0, len(data.SubExams))
	for _, sub := range data.SubExams {
		subExams = append(subExams, map[string]interface{}{
			"sub_exam_name":         sub.SubExamName,
			"short_code":            sub.ShortCode,
			"gender":                "",
			"marital_status":        "",
			"pwd_eligible":          false,
			"has_age_limit":         false,
			"educationRequirements": []interface{}{},
		})
	}

	return map[string]interface{}{
		"main_exam_name":  data.MainExamName,
		"exam_code":       data.ExamCode,
		"conducting_body": data.ConductingBody,
		"exam_sector":     data.ExamSector,
		"subExams":        subExams,
	}
}
